// Package generate calls the external generative service: prompt in, free
// text out. The call is single-attempt with no retry or backoff inside the
// request path; the fallback responder guarantees a reply regardless, so
// retry latency buys nothing.
package generate

import "context"

// Generator produces reply text for a fully composed prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Func adapts a function to the Generator interface, mainly for tests.
type Func func(ctx context.Context, prompt string) (string, error)

func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
