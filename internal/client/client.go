// Package client is the consuming side of the chat contract: it posts
// messages to the endpoint and owns the session's escalation display state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/theimaginaryfoundation/support-o-bot/internal/escalate"
	"github.com/theimaginaryfoundation/support-o-bot/internal/stress"
)

// ErrRequestInFlight is returned by Send while an earlier request is still
// outstanding. The session allows one in-flight request; the send control is
// disabled until the response lands.
var ErrRequestInFlight = errors.New("client: request already in flight")

// Turn is the observable outcome of one send.
type Turn struct {
	Response string

	// Display is the severity tier to show after the response was applied.
	Display stress.Level
}

// Client holds one session against the chat endpoint. The escalation machine
// lives for the client's lifetime and is reset only by creating a new client.
type Client struct {
	baseURL  string
	hc       *http.Client
	machine  escalate.Machine
	inFlight atomic.Bool
}

// New creates a session client for the endpoint at baseURL. A nil httpClient
// gets a default with a 60s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{baseURL: baseURL, hc: httpClient}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response    string `json:"response"`
	StressLevel *int   `json:"stressLevel"`
	Error       string `json:"error"`
}

// Display reports the current severity tier without sending anything. During
// an in-flight request this already reflects the forced override.
func (c *Client) Display() stress.Level {
	return c.machine.Display()
}

// DeathMentions exposes the session's monotonic keyword counter.
func (c *Client) DeathMentions() int {
	return c.machine.DeathMentions()
}

// Send posts one message and applies the escalation transitions in order:
// the outgoing scan (and possible forced override) before the network call,
// the server-level update after.
func (c *Client) Send(ctx context.Context, message string) (Turn, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Turn{}, ErrRequestInFlight
	}
	defer c.inFlight.Store(false)

	c.machine.NoteSend(message)

	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return Turn{}, fmt.Errorf("client: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return Turn{}, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return Turn{}, fmt.Errorf("client: post chat: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Turn{}, fmt.Errorf("client: read response: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return Turn{}, fmt.Errorf("client: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if cr.Error != "" {
			return Turn{}, fmt.Errorf("client: %s", cr.Error)
		}
		return Turn{}, fmt.Errorf("client: unexpected status %d", resp.StatusCode)
	}

	var level *stress.Level
	if cr.StressLevel != nil {
		l := stress.FromInt(*cr.StressLevel)
		level = &l
	}
	c.machine.NoteResponse(level)

	return Turn{Response: cr.Response, Display: c.machine.Display()}, nil
}
