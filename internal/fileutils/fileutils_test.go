package fileutils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteJSONFileAtomicRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "doc.json")

	in := map[string]any{"a": "b"}
	if err := WriteJSONFileAtomic(path, in, true); err != nil {
		t.Fatalf("WriteJSONFileAtomic: %v", err)
	}

	var out map[string]any
	if err := ReadJSONFile(path, &out); err != nil {
		t.Fatalf("ReadJSONFile: %v", err)
	}
	if out["a"] != "b" {
		t.Fatalf("round trip: got %v", out)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp_") {
			t.Fatalf("leftover temp file: %s", e.Name())
		}
	}
}

func TestReadJSONFileMissing(t *testing.T) {
	t.Parallel()

	var v map[string]any
	err := ReadJSONFile(filepath.Join(t.TempDir(), "absent.json"), &v)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want fs.ErrNotExist, got %v", err)
	}
}

func TestDecodeModelJSON(t *testing.T) {
	t.Parallel()

	type out struct {
		TopEmotion string `json:"top_emotion"`
	}

	var v out
	if err := DecodeModelJSON(`{"top_emotion":"sadness"}`, &v); err != nil {
		t.Fatalf("plain JSON: %v", err)
	}
	if v.TopEmotion != "sadness" {
		t.Fatalf("TopEmotion=%q", v.TopEmotion)
	}

	v = out{}
	if err := DecodeModelJSON("noise before {\"top_emotion\":\"fear\"} noise after", &v); err != nil {
		t.Fatalf("wrapped JSON: %v", err)
	}
	if v.TopEmotion != "fear" {
		t.Fatalf("TopEmotion=%q", v.TopEmotion)
	}

	if err := DecodeModelJSON("no json here", &v); err == nil {
		t.Fatalf("want error for non-JSON input")
	}
	if err := DecodeModelJSON("   ", &v); err == nil {
		t.Fatalf("want error for empty input")
	}
}

func TestSanitizeNewlinesAndTruncate(t *testing.T) {
	t.Parallel()

	if got := SanitizeNewlines("a\r\nb\rc\nd"); got != `a\nb\nc\nd` {
		t.Fatalf("SanitizeNewlines=%q", got)
	}
	if got := Truncate("  hello  ", 0); got != "hello" {
		t.Fatalf("Truncate no-limit=%q", got)
	}
	if got := Truncate("abcdef", 3); got != "abc…" {
		t.Fatalf("Truncate=%q", got)
	}
}
