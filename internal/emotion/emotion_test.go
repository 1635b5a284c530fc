package emotion

import (
	"context"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Label
	}{
		{"sadness", Sadness},
		{"happiness", Happiness},
		{"joy", Happiness},
		{"ANGER", Anger},
		{" fear ", Fear},
		{"neutral", Neutral},
		{"disgust", Neutral},
		{"surprise", Neutral},
		{"trust", Neutral},
		{"anticipation", Neutral},
		{"", Neutral},
		{"garbage", Neutral},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCommandClassifier(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("valid output", func(t *testing.T) {
		t.Parallel()
		c := CommandClassifier{Command: []string{"sh", "-c", `echo '{"top_emotion": "sadness", "scores": {"sadness": 2}}'`}}
		got, err := c.Classify(ctx, "i feel down")
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if got != Sadness {
			t.Fatalf("got %q, want sadness", got)
		}
	})

	t.Run("nonzero exit degrades to neutral", func(t *testing.T) {
		t.Parallel()
		c := CommandClassifier{Command: []string{"sh", "-c", "exit 3"}}
		got, err := c.Classify(ctx, "hello")
		if err == nil {
			t.Fatalf("want error for nonzero exit")
		}
		if got != Neutral {
			t.Fatalf("got %q, want neutral", got)
		}
	})

	t.Run("malformed output degrades to neutral", func(t *testing.T) {
		t.Parallel()
		c := CommandClassifier{Command: []string{"sh", "-c", "echo not-json"}}
		got, err := c.Classify(ctx, "hello")
		if err == nil {
			t.Fatalf("want error for malformed output")
		}
		if got != Neutral {
			t.Fatalf("got %q, want neutral", got)
		}
	})

	t.Run("timeout degrades to neutral", func(t *testing.T) {
		t.Parallel()
		c := CommandClassifier{
			Command: []string{"sh", "-c", "sleep 5"},
			Timeout: 50 * time.Millisecond,
		}
		got, err := c.Classify(ctx, "hello")
		if err == nil {
			t.Fatalf("want error for timeout")
		}
		if got != Neutral {
			t.Fatalf("got %q, want neutral", got)
		}
	})

	t.Run("no command configured", func(t *testing.T) {
		t.Parallel()
		c := CommandClassifier{}
		got, err := c.Classify(ctx, "hello")
		if err == nil {
			t.Fatalf("want error for missing command")
		}
		if got != Neutral {
			t.Fatalf("got %q, want neutral", got)
		}
	})
}
