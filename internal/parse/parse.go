// Package parse extracts the reply body and stress ordinal from raw
// generative-service output.
package parse

import (
	"strings"

	"github.com/theimaginaryfoundation/support-o-bot/internal/crisis"
	"github.com/theimaginaryfoundation/support-o-bot/internal/prompt"
	"github.com/theimaginaryfoundation/support-o-bot/internal/stress"
)

// Reply splits raw output at the first sentinel occurrence: text before is the
// reply body, text after is the stress descriptor. A missing sentinel is not
// an error; the whole text becomes the body and the level defaults to Low.
// When the level comes back VeryHigh the helpline reminder is appended to the
// body.
func Reply(raw string) (string, stress.Level) {
	body := raw
	level := stress.Low

	if idx := strings.Index(raw, prompt.Sentinel); idx >= 0 {
		body = raw[:idx]
		level = stress.ParseDescriptor(raw[idx+len(prompt.Sentinel):])
	}

	body = strings.TrimSpace(body)
	if level == stress.VeryHigh {
		body += crisis.ReminderSuffix
	}
	return body, level
}
