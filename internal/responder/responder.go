// Package responder generates bot replies for the chat backend.
package responder

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/chatbox-go/internal/chat"
	"github.com/raphaelgruber/chatbox-go/internal/config"
)

// Responder produces a reply to a chat message, given the session history so
// far (which already includes the message being answered).
type Responder interface {
	Reply(ctx context.Context, message string, history []chat.Message) (string, error)
}

// DefaultReplyText is the canned reply used when no LLM provider is
// configured.
const DefaultReplyText = "This is a response from the chatbot."

// Static replies with a fixed text. It is the default responder and the one
// used in tests.
type Static struct {
	Text string
}

// Reply returns the configured text, or DefaultReplyText if none is set.
func (s Static) Reply(ctx context.Context, message string, history []chat.Message) (string, error) {
	if s.Text != "" {
		return s.Text, nil
	}
	return DefaultReplyText, nil
}

// New creates the responder selected by the configuration.
func New(cfg config.Config) (Responder, error) {
	switch cfg.Provider {
	case config.ProviderStatic, "":
		return Static{}, nil
	case config.ProviderOllama, config.ProviderOpenAI, config.ProviderAnthropic:
		return NewLLM(cfg)
	default:
		return nil, fmt.Errorf("unsupported responder provider: %s", cfg.Provider)
	}
}
