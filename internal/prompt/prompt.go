// Package prompt builds the instruction payload sent to the generative
// service.
//
// The payload layout is deterministic: persona directive, an emotion-selected
// behavior template, the recent-context block, the user message, and the
// output-format contract. The contract line must be emitted identically every
// time because the response parser splits on the exact sentinel.
package prompt

import (
	"fmt"
	"strings"

	"github.com/theimaginaryfoundation/support-o-bot/internal/emotion"
	"github.com/theimaginaryfoundation/support-o-bot/internal/fileutils"
)

// Sentinel is the marker the generative service is instructed to emit before
// its stress estimate. Parsing rule v1: the first occurrence splits reply body
// from descriptor; the descriptor vocabulary is low|mid|high|very high.
const Sentinel = "STRESS_LEVEL:"

// maxMessageChars bounds the user message embedded in the prompt.
const maxMessageChars = 2000

const persona = `You are a warm, attentive emotional support companion. You listen first,
validate feelings without judgment, and answer in 2-4 short sentences of plain,
caring language. You never diagnose, never lecture, and never dismiss what the
person is going through.`

// behaviorTemplates selects a response stance by classified emotion. Neutral
// and anything unmapped fall through to defaultTemplate.
var behaviorTemplates = map[emotion.Label]string{
	emotion.Sadness: `The person sounds sad. Acknowledge the sadness explicitly, let them know
it is okay to feel this way, and gently invite them to share more.`,
	emotion.Happiness: `The person sounds upbeat. Share in their good mood, reflect their energy
back, and encourage them to tell you what went well.`,
	emotion.Anger: `The person sounds frustrated or angry. Stay calm, do not argue or take
sides, name the frustration, and help them unpack what triggered it.`,
	emotion.Fear: `The person sounds anxious or afraid. Be steady and reassuring, ground them
in the present, and avoid anything that could heighten the worry.`,
}

const defaultTemplate = `Respond with warmth and genuine curiosity about how the person is doing.`

// Compose renders the full instruction payload for one turn.
func Compose(message string, label emotion.Label, contextBlock string) string {
	tmpl, ok := behaviorTemplates[label]
	if !ok {
		tmpl = defaultTemplate
	}

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")
	b.WriteString(tmpl)
	b.WriteString("\n\nRecent conversation:\n")
	b.WriteString(contextBlock)
	b.WriteString("\n\nUser message:\n")
	b.WriteString(fileutils.Truncate(fileutils.SanitizeNewlines(message), maxMessageChars))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, `After your reply, on its own final line, append exactly:
%s <estimate>
where <estimate> is your read of the user's current stress, chosen from:
low, mid, high, very high`, Sentinel)
	return b.String()
}
