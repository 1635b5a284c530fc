package main

import (
	"errors"
	"flag"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the service configuration. Environment variables provide the
// defaults; flags override them.
type Config struct {
	HTTPAddr string `env:"SUPPORT_O_BOT_HTTP_ADDR" envDefault:":8080"`

	APIKey           string `env:"OPENAI_API_KEY"`
	Model            string `env:"SUPPORT_O_BOT_MODEL" envDefault:"gpt-5-mini"`
	StructuredOutput bool   `env:"SUPPORT_O_BOT_STRUCTURED_OUTPUT"`

	// ClassifierCommand is the emotion analyzer argv, whitespace-separated
	// (no shell quoting), e.g. "python3 emotion_analyzer.py". Empty disables
	// classification; every turn is then treated as neutral.
	ClassifierCommand string        `env:"SUPPORT_O_BOT_CLASSIFIER_CMD"`
	ClassifierTimeout time.Duration `env:"SUPPORT_O_BOT_CLASSIFIER_TIMEOUT" envDefault:"5s"`

	GenerateTimeout time.Duration `env:"SUPPORT_O_BOT_GENERATE_TIMEOUT" envDefault:"30s"`

	// MemoryPath is the conversation memory document. Empty keeps memory
	// in-process only.
	MemoryPath string `env:"SUPPORT_O_BOT_MEMORY_PATH" envDefault:"memory.json"`

	Verbose bool `env:"SUPPORT_O_BOT_VERBOSE"`
}

func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("missing -http-addr")
	}
	if c.APIKey == "" {
		return errors.New("missing OPENAI_API_KEY (or pass -api-key)")
	}
	if c.Model == "" {
		return errors.New("missing -model")
	}
	if c.ClassifierTimeout < 0 {
		return errors.New("classifier-timeout must be >= 0")
	}
	if c.GenerateTimeout <= 0 {
		return errors.New("generate-timeout must be > 0")
	}
	return nil
}

// ClassifierArgv splits the classifier command into argv form. Empty when
// classification is disabled.
func (c Config) ClassifierArgv() []string {
	return strings.Fields(c.ClassifierCommand)
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "OpenAI API key (overrides OPENAI_API_KEY env var)")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model to use (e.g. gpt-5-mini)")
	fs.BoolVar(&cfg.StructuredOutput, "structured-output", cfg.StructuredOutput, "Request strict JSON from the model instead of sentinel-tagged text")
	fs.StringVar(&cfg.ClassifierCommand, "classifier-cmd", cfg.ClassifierCommand, "Emotion analyzer command, whitespace-separated argv (empty disables)")
	fs.DurationVar(&cfg.ClassifierTimeout, "classifier-timeout", cfg.ClassifierTimeout, "Time bound for one classifier invocation")
	fs.DurationVar(&cfg.GenerateTimeout, "generate-timeout", cfg.GenerateTimeout, "Time bound for the single generation attempt")
	fs.StringVar(&cfg.MemoryPath, "memory", cfg.MemoryPath, "Path to the conversation memory document (empty keeps memory in-process)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
