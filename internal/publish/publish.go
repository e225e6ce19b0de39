package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/report"
)

// DefaultTimeout bounds both the connection and the wait for an
// acknowledgement.
const DefaultTimeout = 15 * time.Second

// DefaultEvent is emitted when Config.Event is empty.
const DefaultEvent = "frame_configuration"

// Config describes where the state goes.
type Config struct {
	URL       string
	Namespace string
	Event     string
	// AckEvent, when set, is the event the server answers with. Publish
	// waits for it before returning.
	AckEvent           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c Config) event() string {
	if c.Event == "" {
		return DefaultEvent
	}
	return c.Event
}

// Client is the part of a socket.io connection the publisher uses.
type Client interface {
	Emit(event string, payload any)
	Once(event string, fn func(...any))
	Close()
}

// Dialer opens a Client for cfg.
type Dialer func(ctx context.Context, cfg Config) (Client, error)

// Publisher emits configuration states.
type Publisher struct {
	cfg  Config
	dial Dialer
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithDialer replaces the socket.io dialer.
func WithDialer(d Dialer) Option {
	return func(p *Publisher) { p.dial = d }
}

// New returns a publisher for cfg.
func New(cfg Config, opts ...Option) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("publish URL is required")
	}
	p := &Publisher{cfg: cfg, dial: DialSocketIO}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Publish connects, emits st and disconnects.
func (p *Publisher) Publish(ctx context.Context, st *report.State) error {
	if st == nil {
		return errors.New("nothing to publish")
	}
	logger := ctxlog.FromContext(ctx).With("url", p.cfg.URL, "event", p.cfg.event())

	payload, raw, err := encode(st)
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(ctx, p.cfg.timeout())
	defer cancel()

	client, err := p.dial(opCtx, p.cfg)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", p.cfg.URL, err)
	}
	defer client.Close()

	var acked chan struct{}
	if p.cfg.AckEvent != "" {
		acked = make(chan struct{}, 1)
		client.Once(p.cfg.AckEvent, func(...any) {
			acked <- struct{}{}
		})
	}

	logger.Debug("Emitting configuration state", "data", string(raw))
	client.Emit(p.cfg.event(), payload)

	if acked == nil {
		logger.Info("Configuration state published")
		return nil
	}
	select {
	case <-acked:
		logger.Info("Configuration state acknowledged", "ack_event", p.cfg.AckEvent)
		return nil
	case <-opCtx.Done():
		return fmt.Errorf("timed out after %v waiting for event '%s'", p.cfg.timeout(), p.cfg.AckEvent)
	}
}

// encode turns st into the plain map the socket.io parser serializes, and
// returns the JSON text for logging.
func encode(st *report.State) (map[string]any, []byte, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding configuration state: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, fmt.Errorf("encoding configuration state: %w", err)
	}
	return payload, raw, nil
}
