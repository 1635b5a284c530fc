// Package emotion adapts an external best-effort sentiment classifier.
//
// The classifier is an out-of-process collaborator: message text in, one JSON
// line with a top_emotion field out. Every failure mode (nonzero exit, bad
// output, timeout, unknown label) degrades to Neutral at the call site; a
// classifier problem must never surface as a pipeline error.
package emotion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/theimaginaryfoundation/support-o-bot/internal/fileutils"
)

// Label is the simplified emotion vocabulary used for prompt selection.
type Label string

const (
	Neutral   Label = "neutral"
	Sadness   Label = "sadness"
	Happiness Label = "happiness"
	Anger     Label = "anger"
	Fear      Label = "fear"
)

// Classifier labels a message with a best-effort emotion.
type Classifier interface {
	Classify(ctx context.Context, text string) (Label, error)
}

// CommandClassifier shells out to an analyzer process (NRCLex-backed in the
// stock deployment) that reads text on stdin and prints a single JSON object
// containing top_emotion.
type CommandClassifier struct {
	// Command is the argv of the analyzer, e.g. ["python3", "emotion_analyzer.py"].
	Command []string

	// Timeout bounds a single invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

const DefaultTimeout = 5 * time.Second

type analyzerOutput struct {
	TopEmotion string             `json:"top_emotion"`
	Scores     map[string]float64 `json:"scores"`
}

// Classify runs the analyzer once under the configured time bound.
func (c CommandClassifier) Classify(ctx context.Context, text string) (Label, error) {
	if len(c.Command) == 0 {
		return Neutral, errors.New("emotion: no classifier command configured")
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Command[0], c.Command[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return Neutral, fmt.Errorf("emotion: run classifier: %w", err)
	}

	var out analyzerOutput
	if err := fileutils.DecodeModelJSON(stdout.String(), &out); err != nil {
		return Neutral, fmt.Errorf("emotion: decode classifier output: %w", err)
	}
	return Normalize(out.TopEmotion), nil
}

// Normalize collapses the analyzer's wider vocabulary onto the prompt labels.
// The analyzer reports NRC categories; joy maps to happiness and anything
// outside the simplified set maps to neutral.
func Normalize(raw string) Label {
	switch Label(strings.ToLower(strings.TrimSpace(raw))) {
	case Sadness:
		return Sadness
	case Happiness, Label("joy"):
		return Happiness
	case Anger:
		return Anger
	case Fear:
		return Fear
	}
	return Neutral
}
