package chat

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FailedSendText is the fixed error surfaced when message delivery fails.
const FailedSendText = "Failed to send message"

// Reply is the result of a successful send operation.
type Reply struct {
	Text string `json:"text"`
}

// SendFunc delivers a submitted message and produces the bot's reply. It is
// the single suspension point of a submission; the container treats it as
// opaque.
type SendFunc func(ctx context.Context, text string) (Reply, error)

// State is a consistent snapshot of the container, taken under one lock.
type State struct {
	Messages  []Message
	Loading   bool
	LastError string
	Version   uint64
}

// Container owns the message history and the loading/error state of a chat
// session. Submissions move it through idle -> submitting -> idle; exactly one
// outcome message (bot reply or error entry) is appended per accepted
// submission, strictly after the user's own entry.
//
// Overlapping submissions are not serialized: each runs independently and the
// history interleaving of concurrent pairs is whatever the send function's
// timing produces. Callers that need strict alternation disable input while a
// submission is outstanding.
type Container struct {
	send   SendFunc
	now    func() time.Time
	newID  func() string
	logger *slog.Logger

	mu        sync.Mutex
	messages  []Message
	loading   int
	lastError string
	version   uint64
}

// Option configures a Container.
type Option func(*Container)

// WithClock injects the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Container) { c.now = now }
}

// WithIDGen injects the message ID generator.
func WithIDGen(newID func() string) Option {
	return func(c *Container) { c.newID = newID }
}

// WithLogger sets the diagnostic logger for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) { c.logger = logger }
}

// WithInitialMessages seeds the history.
func WithInitialMessages(messages []Message) Option {
	return func(c *Container) { c.messages = slices.Clone(messages) }
}

// NewContainer creates a chat container delivering messages through send.
func NewContainer(send SendFunc, opts ...Option) *Container {
	c := &Container{
		send:   send,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit runs a full submission: guard, user entry, delivery, outcome entry.
// It blocks until the send function settles and returns the outcome message.
// Whitespace-only text is rejected before any state change; the send function
// is never invoked and the returned message is nil.
func (c *Container) Submit(ctx context.Context, text string) (*Message, error) {
	trimmed, ok := c.Begin(text)
	if !ok {
		return nil, nil
	}
	return c.Dispatch(ctx, trimmed)
}

// Begin accepts a submission: it trims the text, appends the user entry,
// raises the loading flag, and clears any previous error. It reports whether
// the submission was accepted. The guard mirrors the input layer's own, so
// the contract holds even when that layer is bypassed.
func (c *Container) Begin(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.appendLocked(Message{
		ID:        c.newID(),
		Text:      trimmed,
		Sender:    SenderUser,
		Timestamp: c.now().Format(time.RFC3339Nano),
	})
	c.loading++
	c.lastError = ""
	return trimmed, true
}

// Dispatch delivers an accepted submission and settles the outcome. The
// loading flag is lowered on every path, success or failure.
func (c *Container) Dispatch(ctx context.Context, text string) (*Message, error) {
	defer func() {
		c.mu.Lock()
		if c.loading > 0 {
			c.loading--
		}
		c.mu.Unlock()
	}()

	reply, err := c.send(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastError = FailedSendText
		outcome := Message{
			ID:        c.newID(),
			Text:      FailedSendText,
			Sender:    SenderBot,
			Timestamp: c.now().Format(time.RFC3339Nano),
			Type:      TypeError,
		}
		c.appendLocked(outcome)
		c.logger.Error("message delivery failed", "error", err)
		return &outcome, fmt.Errorf("send message: %w", err)
	}

	outcome := Message{
		ID:        c.newID(),
		Text:      reply.Text,
		Sender:    SenderBot,
		Timestamp: c.now().Format(time.RFC3339Nano),
	}
	c.appendLocked(outcome)
	return &outcome, nil
}

// History returns a copy of the message history, oldest first.
func (c *Container) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// Loading reports whether any submission is outstanding.
func (c *Container) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading > 0
}

// LastError returns the most recent delivery error message, or "" if the
// latest accepted submission has not failed.
func (c *Container) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// Version returns a counter that increments on every history change. It lets
// renderers perform follow-up effects (such as scrolling to the latest entry)
// exactly once per distinct history value.
func (c *Container) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Snapshot returns history, flags, and version under a single lock.
func (c *Container) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Messages:  slices.Clone(c.messages),
		Loading:   c.loading > 0,
		LastError: c.lastError,
		Version:   c.version,
	}
}

// Clear discards the session history and error state.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.lastError = ""
	c.version++
}

func (c *Container) appendLocked(m Message) {
	c.messages = append(c.messages, m)
	c.version++
}
