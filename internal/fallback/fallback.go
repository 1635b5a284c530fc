// Package fallback provides deterministic-random canned replies for turns
// where the generative service failed. Fallback replies never carry a stress
// level; the caller must treat the missing level as "no update".
package fallback

import (
	"math/rand"
	"strings"
)

var greetingKeywords = []string{
	"hi", "hello", "hey",
	"good morning", "good afternoon", "good evening",
	"sup", "yo",
}

// GreetingPool answers greeting-shaped messages.
var GreetingPool = []string{
	"Hey there! It's really good to hear from you. How are you feeling today?",
	"Hi! I'm glad you stopped by. What's on your mind?",
	"Hello! I'm here and listening. How has your day been treating you?",
	"Hey! Always nice to see you. Want to tell me how things are going?",
}

// GeneralPool answers everything else when generation is unavailable.
var GeneralPool = []string{
	"I'm here for you. Tell me a bit more about what's on your mind.",
	"That sounds like a lot to carry. I'm listening, take your time.",
	"Thank you for sharing that with me. How are you feeling about it right now?",
	"I may not have the perfect words, but I'm right here with you. What would help most?",
	"Whatever you're going through, you don't have to sort it out alone. Keep talking to me.",
}

// IsGreeting reports whether the message reads as a greeting, by
// case-insensitive substring membership in the greeting keyword set.
func IsGreeting(message string) bool {
	m := strings.ToLower(message)
	for _, kw := range greetingKeywords {
		if strings.Contains(m, kw) {
			return true
		}
	}
	return false
}

// Reply selects uniformly at random from the greeting or general pool. The
// random source is injected so callers can pin selection in tests.
func Reply(message string, rng *rand.Rand) string {
	pool := GeneralPool
	if IsGreeting(message) {
		pool = GreetingPool
	}
	return pool[rng.Intn(len(pool))]
}
