// Package server exposes the chat pipeline over HTTP.
//
// POST /chat runs: crisis interception, emotion classification, context
// lookup, prompt composition, generation, response parsing, memory write.
// Nothing downstream of input validation is fatal or user-visible as an
// error; the worst case is a canned supportive reply instead of a
// personalized one.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theimaginaryfoundation/support-o-bot/internal/crisis"
	"github.com/theimaginaryfoundation/support-o-bot/internal/emotion"
	"github.com/theimaginaryfoundation/support-o-bot/internal/fallback"
	"github.com/theimaginaryfoundation/support-o-bot/internal/generate"
	"github.com/theimaginaryfoundation/support-o-bot/internal/memory"
	"github.com/theimaginaryfoundation/support-o-bot/internal/parse"
	"github.com/theimaginaryfoundation/support-o-bot/internal/prompt"
	"github.com/theimaginaryfoundation/support-o-bot/internal/stress"
)

// ContextWindow is how many recent exchanges enrich each prompt.
const ContextWindow = 3

// Options wires the pipeline collaborators into a Handler.
type Options struct {
	Store      *memory.Store
	Classifier emotion.Classifier
	Generator  generate.Generator
	Logger     *zap.Logger

	// GenerateTimeout bounds the single generation attempt. Zero means
	// DefaultGenerateTimeout.
	GenerateTimeout time.Duration

	// Rand seeds fallback selection. Nil gets a time-seeded source.
	Rand *rand.Rand
}

const DefaultGenerateTimeout = 30 * time.Second

// Handler serves the chat endpoint.
type Handler struct {
	store      *memory.Store
	classifier emotion.Classifier
	generator  generate.Generator
	log        *zap.Logger
	genTimeout time.Duration

	randMu sync.Mutex
	rng    *rand.Rand
}

// New builds the HTTP handler with all routes registered.
func New(opts Options) http.Handler {
	h := &Handler{
		store:      opts.Store,
		classifier: opts.Classifier,
		generator:  opts.Generator,
		log:        opts.Logger,
		genTimeout: opts.GenerateTimeout,
		rng:        opts.Rand,
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.genTimeout <= 0 {
		h.genTimeout = DefaultGenerateTimeout
	}
	if h.rng == nil {
		h.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("POST /chat", h.handleChat)
	return mux
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`

	// StressLevel is absent, not zero, when the fallback path was taken.
	StressLevel *int `json:"stressLevel,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(zap.String("request_id", uuid.NewString()))

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	// Crisis interception short-circuits everything else: bounded,
	// deterministic, reviewable content for the highest-risk input.
	if crisis.Match(message) {
		log.Info("crisis intercept", zap.Int("stress_level", int(stress.VeryHigh)))
		h.persist(log, message, crisis.SafetyMessage)
		writeJSON(w, http.StatusOK, chatResponse{
			Response:    crisis.SafetyMessage,
			StressLevel: levelPtr(stress.VeryHigh),
		})
		return
	}

	label := h.classify(r.Context(), log, message)
	contextBlock := h.store.RecentContext(ContextWindow)
	composed := prompt.Compose(message, label, contextBlock)

	genCtx, cancel := context.WithTimeout(r.Context(), h.genTimeout)
	defer cancel()
	raw, err := h.generator.Generate(genCtx, composed)
	if err != nil {
		// Raw error is logged, never surfaced; the caller still gets a
		// success status with a canned reply and no stress level.
		log.Warn("generation failed, using fallback", zap.Error(err))
		reply := h.fallbackReply(message)
		h.persist(log, message, reply)
		writeJSON(w, http.StatusOK, chatResponse{Response: reply})
		return
	}

	body, level := parse.Reply(raw)
	if body == "" {
		body = h.fallbackReply(message)
	}
	h.persist(log, message, body)
	log.Info("turn complete",
		zap.String("emotion", string(label)),
		zap.Int("stress_level", int(level)),
	)
	writeJSON(w, http.StatusOK, chatResponse{Response: body, StressLevel: levelPtr(level)})
}

// classify degrades every classifier failure to neutral.
func (h *Handler) classify(ctx context.Context, log *zap.Logger, message string) emotion.Label {
	if h.classifier == nil {
		return emotion.Neutral
	}
	label, err := h.classifier.Classify(ctx, message)
	if err != nil {
		log.Warn("emotion classification failed", zap.Error(err))
		return emotion.Neutral
	}
	return label
}

// persist appends the exchange; persistence failures are swallowed so
// pipeline availability never depends on storage durability.
func (h *Handler) persist(log *zap.Logger, user, bot string) {
	ex := memory.Exchange{User: user, Bot: bot, Timestamp: time.Now().UTC()}
	if err := h.store.Append(ex); err != nil {
		log.Warn("memory persist failed", zap.Error(err))
	}
}

func (h *Handler) fallbackReply(message string) string {
	h.randMu.Lock()
	defer h.randMu.Unlock()
	return fallback.Reply(message, h.rng)
}

func levelPtr(l stress.Level) *int {
	n := int(l)
	return &n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Run serves the handler until ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info("listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
