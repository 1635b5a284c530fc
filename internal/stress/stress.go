// Package stress defines the ordinal stress severity signal reported per turn.
package stress

import "strings"

// Level is the server-reported stress ordinal. Ultra exists only in client
// display state and is never emitted by the server.
type Level int

const (
	Low Level = iota
	Mid
	High
	VeryHigh

	// Ultra is a client-only display tier layered on top of VeryHigh.
	Ultra
)

func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Mid:
		return "mid"
	case High:
		return "high"
	case VeryHigh:
		return "very high"
	case Ultra:
		return "ultra"
	}
	return "low"
}

// ParseDescriptor maps a free-text stress descriptor to a Level.
//
// The checks are priority-ordered, most specific first: "very high" must be
// tested before "high", otherwise every "very high" descriptor would be
// misread as High. Unrecognized descriptors map to Low.
func ParseDescriptor(s string) Level {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "very high"):
		return VeryHigh
	case strings.Contains(s, "high"):
		return High
	case strings.Contains(s, "mid"):
		return Mid
	}
	return Low
}

// FromInt converts a wire integer to a Level, clamping out-of-range values.
// The wire contract only carries 0..3.
func FromInt(n int) Level {
	if n < int(Low) {
		return Low
	}
	if n > int(VeryHigh) {
		return VeryHigh
	}
	return Level(n)
}
