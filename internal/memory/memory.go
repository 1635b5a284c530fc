// Package memory keeps the bounded recent-exchange log that enriches prompts.
//
// The log is a single JSON document of at most MaxItems exchanges, rewritten
// whole on every append. Durability is best-effort: the pipeline must keep
// answering even when the document cannot be written, so persistence failures
// are reported to the caller's logger and otherwise swallowed.
package memory

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/theimaginaryfoundation/support-o-bot/internal/fileutils"
)

// MaxItems bounds the exchange log; the oldest entries are evicted first.
const MaxItems = 10

// NoContext is returned by RecentContext when nothing has been recorded yet.
const NoContext = "(no earlier conversation)"

// Exchange is one recorded user-message/bot-reply pair. Immutable once
// appended.
type Exchange struct {
	User      string    `json:"user"`
	Bot       string    `json:"bot"`
	Timestamp time.Time `json:"timestamp"`
}

type document struct {
	Exchanges []Exchange `json:"exchanges"`
}

// Store is the single-writer conversation memory. All operations are
// serialized by an internal mutex so concurrent requests cannot lose updates
// on the read-modify-evict-write cycle.
type Store struct {
	mu        sync.Mutex
	path      string
	exchanges []Exchange
}

// Open loads the memory document at path. Absence or a read failure yields an
// empty store; the pipeline never fails because memory is unavailable.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}

	var doc document
	err := fileutils.ReadJSONFile(path, &doc)
	switch {
	case err == nil:
		s.exchanges = doc.Exchanges
		if len(s.exchanges) > MaxItems {
			s.exchanges = s.exchanges[len(s.exchanges)-MaxItems:]
		}
		return s, nil
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	default:
		return s, fmt.Errorf("memory: load %s: %w", path, err)
	}
}

// Append records a completed turn, evicting from the head once the log
// exceeds MaxItems, and rewrites the backing document. The returned error is
// a persistence failure only; the in-memory log is always updated.
func (s *Store) Append(ex Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.exchanges = append(s.exchanges, ex)
	for len(s.exchanges) > MaxItems {
		s.exchanges = s.exchanges[1:]
	}

	if s.path == "" {
		return nil
	}
	doc := document{Exchanges: s.exchanges}
	if err := fileutils.WriteJSONFileAtomic(s.path, doc, true); err != nil {
		return fmt.Errorf("memory: persist %s: %w", s.path, err)
	}
	return nil
}

// RecentContext renders the last k exchanges as alternating "User:" / "Bot:"
// lines for prompt enrichment. Fewer than k exchanges renders what exists;
// an empty store renders NoContext.
func (s *Store) RecentContext(k int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if k <= 0 || len(s.exchanges) == 0 {
		return NoContext
	}
	start := len(s.exchanges) - k
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for _, ex := range s.exchanges[start:] {
		fmt.Fprintf(&b, "User: %s\n", fileutils.SanitizeNewlines(ex.User))
		fmt.Fprintf(&b, "Bot: %s\n", fileutils.SanitizeNewlines(ex.Bot))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Len reports the number of stored exchanges.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.exchanges)
}

// Exchanges returns a copy of the log in append order.
func (s *Store) Exchanges() []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Exchange(nil), s.exchanges...)
}
