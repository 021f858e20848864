// Package poller implements the client side of the chat transport: a
// fixed-rate pull loop against the messages API that stands in for a
// push-based delivery channel. Each open room view owns one Poller.
package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"example.com/guestchat/core"
)

// Config controls how the poller connects.
type Config struct {
	// BaseURL is the server address, e.g. "http://localhost:8080".
	BaseURL string
	// RoomID is the room this poller watches.
	RoomID string
	// Interval is the fixed polling interval.
	Interval time.Duration
	// HTTPClient overrides the client used for requests.
	HTTPClient *http.Client
	// Logger overrides the logger (optional).
	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 2 * time.Second,
	}
}

// Poller fetches a room's messages and participants on a fixed interval.
// Send and Delete trigger an extra out-of-cycle fetch so the caller sees
// the effect of its own writes without waiting for the next tick.
type Poller struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger

	onMessages func([]core.Message)
	onUsers    func([]string)

	// kick signals the loop to fetch ahead of the next tick.
	kick chan struct{}

	mu        sync.Mutex
	connected bool
	cancel    context.CancelFunc
}

// New constructs a poller with the provided config.
// Use DefaultConfig() as a starting point and modify as needed.
func New(cfg Config) (*Poller, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("empty base URL")
	}
	if cfg.RoomID == "" {
		return nil, errors.New("empty room id")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Poller{
		cfg:    cfg,
		client: client,
		logger: logger,
		kick:   make(chan struct{}, 1),
	}, nil
}

// OnMessages registers the callback invoked with the room's full message
// sequence after every fetch. Register callbacks before calling Start.
func (p *Poller) OnMessages(fn func([]core.Message)) { p.onMessages = fn }

// OnUsers registers the callback invoked with the room's participant set
// after every fetch. Register callbacks before calling Start.
func (p *Poller) OnUsers(fn func([]string)) { p.onUsers = fn }

// Start fetches once immediately, then keeps fetching on the configured
// interval until Stop is called or ctx is cancelled.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.connected {
		p.mu.Unlock()
		return errors.New("already started")
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.connected = true
	p.mu.Unlock()

	go p.loop(runCtx)
	return nil
}

// Connected reports whether the polling loop is running.
func (p *Poller) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// Stop cancels pending fires and suppresses further fetches.
// It is safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.connected = false
}

func (p *Poller) loop(ctx context.Context) {
	p.fetch(ctx)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetch(ctx)
		case <-p.kick:
			p.fetch(ctx)
		}
	}
}

// fetch pulls the room state and feeds the callbacks. Failures are logged
// and otherwise swallowed; the next tick simply tries again.
func (p *Poller) fetch(ctx context.Context) {
	u := fmt.Sprintf("%s/api/messages?roomId=%s", p.cfg.BaseURL, url.QueryEscape(p.cfg.RoomID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		p.logger.Error("fetch messages", slog.String("error", err.Error()))
		return
	}
	res, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("fetch messages", slog.String("error", err.Error()))
		return
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		p.logger.Error("fetch messages", slog.Int("status", res.StatusCode))
		return
	}

	var payload struct {
		Messages []core.Message `json:"messages"`
		Users    []string       `json:"users"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		p.logger.Error("decode messages", slog.String("error", err.Error()))
		return
	}

	if p.onMessages != nil {
		p.onMessages(payload.Messages)
	}
	if p.onUsers != nil {
		p.onUsers(payload.Users)
	}
}

// Send posts a user message to the room, then triggers an out-of-cycle
// fetch so the new message shows up without waiting for the next tick.
func (p *Poller) Send(ctx context.Context, text, sender string) error {
	body, err := json.Marshal(core.MessageCreateInput{
		Text:   text,
		Sender: sender,
		RoomID: p.cfg.RoomID,
		Type:   core.UserMessage,
	})
	if err != nil {
		return err
	}

	u := p.cfg.BaseURL + "/api/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if err := p.do(req, "send message"); err != nil {
		return err
	}

	p.requestFetch()
	return nil
}

// Delete removes a message from the room, then triggers an out-of-cycle fetch.
func (p *Poller) Delete(ctx context.Context, messageID string) error {
	u := fmt.Sprintf("%s/api/messages?roomId=%s&messageId=%s",
		p.cfg.BaseURL, url.QueryEscape(p.cfg.RoomID), url.QueryEscape(messageID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}

	if err := p.do(req, "delete message"); err != nil {
		return err
	}

	p.requestFetch()
	return nil
}

func (p *Poller) do(req *http.Request, op string) error {
	res, err := p.client.Do(req)
	if err != nil {
		p.logger.Error(op, slog.String("error", err.Error()))
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil || body.Error == "" {
			body.Error = http.StatusText(res.StatusCode)
		}
		p.logger.Error(op, slog.Int("status", res.StatusCode), slog.String("error", body.Error))
		return fmt.Errorf("%s: %s", op, body.Error)
	}
	return nil
}

func (p *Poller) requestFetch() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}
