package prompt

import (
	"strings"
	"testing"

	"github.com/theimaginaryfoundation/support-o-bot/internal/emotion"
)

func TestComposeIsDeterministic(t *testing.T) {
	t.Parallel()

	a := Compose("rough day", emotion.Sadness, "User: hi\nBot: hello")
	b := Compose("rough day", emotion.Sadness, "User: hi\nBot: hello")
	if a != b {
		t.Fatalf("Compose is not deterministic")
	}
}

func TestComposeContainsSections(t *testing.T) {
	t.Parallel()

	got := Compose("I failed my exam", emotion.Sadness, "User: hi\nBot: hello")

	for _, want := range []string{
		"emotional support companion",
		"sounds sad",
		"Recent conversation:\nUser: hi\nBot: hello",
		"User message:\nI failed my exam",
		Sentinel + " <estimate>",
		"low, mid, high, very high",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestComposeTemplateSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label emotion.Label
		want  string
	}{
		{emotion.Sadness, "sounds sad"},
		{emotion.Happiness, "sounds upbeat"},
		{emotion.Anger, "frustrated or angry"},
		{emotion.Fear, "anxious or afraid"},
		{emotion.Neutral, "warmth and genuine curiosity"},
		{emotion.Label("unmapped"), "warmth and genuine curiosity"},
	}
	for _, tc := range cases {
		got := Compose("msg", tc.label, "ctx")
		if !strings.Contains(got, tc.want) {
			t.Errorf("label %q: prompt missing %q", tc.label, tc.want)
		}
	}
}

func TestComposeFlattensMessageNewlines(t *testing.T) {
	t.Parallel()

	got := Compose("line one\nline two", emotion.Neutral, "ctx")
	if !strings.Contains(got, `line one\nline two`) {
		t.Fatalf("message newlines not flattened:\n%s", got)
	}
}
