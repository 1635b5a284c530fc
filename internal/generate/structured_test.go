package generate

import (
	"testing"

	"github.com/theimaginaryfoundation/support-o-bot/internal/parse"
	"github.com/theimaginaryfoundation/support-o-bot/internal/stress"
)

func TestRenderSentinelFeedsSharedParser(t *testing.T) {
	t.Parallel()

	// Structured mode must observe identical levels through the common
	// parsing path.
	cases := []struct {
		stressText string
		want       stress.Level
	}{
		{"very high", stress.VeryHigh},
		{"high", stress.High},
		{"mid", stress.Mid},
		{"low", stress.Low},
	}
	for _, tc := range cases {
		body, level := parse.Reply(RenderSentinel("I'm here for you.", tc.stressText))
		if level != tc.want {
			t.Errorf("stress %q: level=%v, want %v", tc.stressText, level, tc.want)
		}
		if body == "" {
			t.Errorf("stress %q: empty body", tc.stressText)
		}
	}
}

func TestStructuredReplySchemaShape(t *testing.T) {
	t.Parallel()

	props, ok := structuredReplySchema["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("schema has no properties: %v", structuredReplySchema)
	}
	for _, field := range []string{"reply", "stress"} {
		if _, ok := props[field]; !ok {
			t.Errorf("schema missing %q property", field)
		}
	}
	if ap, ok := structuredReplySchema["additionalProperties"].(bool); !ok || ap {
		t.Errorf("additionalProperties=%v, want false", structuredReplySchema["additionalProperties"])
	}
}
