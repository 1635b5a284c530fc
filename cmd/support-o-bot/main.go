// Command support-o-bot serves the supportive-chat endpoint: POST /chat turns
// a free-text message into a reply with a stress estimate, with a keyword
// safety override that bypasses generation entirely.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/theimaginaryfoundation/support-o-bot/internal/emotion"
	"github.com/theimaginaryfoundation/support-o-bot/internal/generate"
	"github.com/theimaginaryfoundation/support-o-bot/internal/memory"
	"github.com/theimaginaryfoundation/support-o-bot/internal/server"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	logCfg := zap.NewProductionConfig()
	if cfg.Verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := logCfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("build logger: %w", err).Error())
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := memory.Open(cfg.MemoryPath)
	if err != nil {
		// A corrupt or unreadable document degrades to empty memory.
		log.Warn("memory load failed, starting empty", zap.Error(err))
	}

	var classifier emotion.Classifier
	if argv := cfg.ClassifierArgv(); len(argv) > 0 {
		classifier = emotion.CommandClassifier{Command: argv, Timeout: cfg.ClassifierTimeout}
	}

	var gen generate.Generator
	if cfg.StructuredOutput {
		gen = generate.NewStructuredOpenAI(cfg.APIKey, cfg.Model)
	} else {
		gen = generate.NewOpenAI(cfg.APIKey, cfg.Model)
	}

	handler := server.New(server.Options{
		Store:           store,
		Classifier:      classifier,
		Generator:       gen,
		Logger:          log,
		GenerateTimeout: cfg.GenerateTimeout,
	})

	if err := server.Run(ctx, cfg.HTTPAddr, handler, log); err != nil {
		log.Error("serve failed", zap.Error(err))
		os.Exit(1)
	}
}
