// Package crisis implements the keyword short-circuit that bypasses AI
// generation entirely for self-harm-indicative input.
//
// Matching is deliberately blunt: case-insensitive substring checks against a
// fixed, reviewable phrase list. The highest-risk class of input gets a
// bounded, deterministic reply instead of whatever an external model would
// produce.
package crisis

import "strings"

// keywords is the server-side crisis phrase list. It is narrower than the
// client display heuristics and changes only under review.
var keywords = []string{
	"suicide",
	"suicidal",
	"kill myself",
	"killing myself",
	"end my life",
	"ending my life",
	"take my own life",
	"want to die",
	"wanna die",
	"self harm",
	"self-harm",
	"hurt myself",
	"no reason to live",
}

const (
	// HelplineNumber and HelplineURL are embedded verbatim in every crisis
	// and high-stress reply.
	HelplineNumber = "988"
	HelplineURL    = "https://988lifeline.org"
)

// SafetyMessage is the fixed reply for intercepted turns. It embeds the
// helpline number and URL and is never model-generated.
const SafetyMessage = "I'm really concerned about what you just shared, and I want you to know you don't have to face this alone. " +
	"Please reach out right now to people who are trained to help: call or text " + HelplineNumber +
	" (Suicide & Crisis Lifeline), or visit " + HelplineURL + ". " +
	"If you are in immediate danger, please call your local emergency number. I'm still here, and I care about what happens to you."

// ReminderSuffix is appended to generated replies whenever the parsed stress
// level reaches its maximum.
const ReminderSuffix = "\n\nIf things ever feel like too much, remember you can call or text " + HelplineNumber +
	" (Suicide & Crisis Lifeline, " + HelplineURL + ") at any time."

// Match reports whether the message contains any crisis phrase. A match
// terminates the pipeline for the turn: classifier and generator are never
// invoked.
func Match(message string) bool {
	m := strings.ToLower(message)
	for _, kw := range keywords {
		if strings.Contains(m, kw) {
			return true
		}
	}
	return false
}
