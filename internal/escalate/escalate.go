// Package escalate implements the session-scoped severity display state that
// consumes the chat endpoint.
//
// Two overlapping triggers are kept deliberately: a derived Ultra display
// (repeated death mentions layered on a maximal server level) and a forced
// override applied at send time before any response arrives. They overlap in
// effect but fire at different moments, so both are kept.
package escalate

import (
	"strings"
	"sync"

	"github.com/theimaginaryfoundation/support-o-bot/internal/stress"
)

// deathKeywords is the client-local trigger list. It is broader than, and
// intentionally divergent from, the server-side crisis list.
var deathKeywords = []string{
	"die",
	"death",
	"dying",
	"dead",
	"suicide",
	"kill myself",
	"end it all",
	"disappear forever",
	"self harm",
	"self-harm",
	"hurt myself",
	"no point in living",
	"better off without me",
}

// ultraThreshold is the death-mention count at which Ultra layers on a
// maximal server level.
const ultraThreshold = 3

// forceThreshold is the death-mention count at which a matching send forces
// the display to Ultra immediately.
const forceThreshold = 2

// Machine tracks one session's escalation state. It has no terminal state and
// lives for the lifetime of the session.
type Machine struct {
	mu            sync.Mutex
	deathMentions int
	serverLevel   *stress.Level
	forced        bool
}

// MatchesDeathKeyword reports whether the message trips the client-local
// list, case-insensitively.
func MatchesDeathKeyword(message string) bool {
	m := strings.ToLower(message)
	for _, kw := range deathKeywords {
		if strings.Contains(m, kw) {
			return true
		}
	}
	return false
}

// NoteSend scans an outgoing message. A keyword match increments the mention
// counter (never decremented) and, once the counter has reached the force
// threshold, arms the forced override so Display reports Ultra before any
// server response comes back.
func (m *Machine) NoteSend(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if MatchesDeathKeyword(message) {
		m.deathMentions++
		if m.deathMentions >= forceThreshold {
			m.forced = true
		}
	}
}

// NoteResponse records a server-reported level. A nil level (fallback path)
// is "no update", not Low. Receiving any response lowers the forced override;
// the derived Ultra rule takes over from here if it applies.
func (m *Machine) NoteResponse(level *stress.Level) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.forced = false
	if level != nil {
		l := *level
		m.serverLevel = &l
	}
}

// Display derives the severity tier to show. Forced override wins; otherwise
// Ultra shows iff the mention count reached its threshold and the last server
// level was maximal; otherwise the last known server level, Low when none has
// been reported yet.
func (m *Machine) Display() stress.Level {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.forced {
		return stress.Ultra
	}
	if m.deathMentions >= ultraThreshold && m.serverLevel != nil && *m.serverLevel == stress.VeryHigh {
		return stress.Ultra
	}
	if m.serverLevel != nil {
		return *m.serverLevel
	}
	return stress.Low
}

// DeathMentions reports the monotonic mention counter.
func (m *Machine) DeathMentions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deathMentions
}
