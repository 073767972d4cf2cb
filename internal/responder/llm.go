package responder

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/chatbox-go/internal/chat"
	"github.com/raphaelgruber/chatbox-go/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const systemPrompt = `You are a helpful chat assistant embedded in a small chat widget.
Answer the user's latest message concisely. Use the prior conversation for context.`

// historyWindow bounds how many prior entries are replayed to the model.
const historyWindow = 20

// LLM generates replies through a langchaingo model.
type LLM struct {
	llm       llms.Model
	modelName string
}

// NewLLM creates an LLM responder based on configuration.
func NewLLM(cfg config.Config) (*LLM, error) {
	var model llms.Model
	var err error

	switch cfg.Provider {
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	return &LLM{
		llm:       model,
		modelName: cfg.LLMModel,
	}, nil
}

// Reply generates a reply to the message, replaying a window of recent
// history. Error-typed entries are skipped; they are presentation, not
// conversation.
func (l *LLM) Reply(ctx context.Context, message string, history []chat.Message) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
	}

	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}
	for _, entry := range history[start:] {
		if entry.Type == chat.TypeError {
			continue
		}
		role := llms.ChatMessageTypeHuman
		if entry.Sender == chat.SenderBot {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, entry.Text))
	}

	// The history already ends with the user's message when called through
	// the chat container; append it only when it does not.
	if len(history) == 0 || history[len(history)-1].Text != message {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, message))
	}

	response, err := l.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return response.Choices[0].Content, nil
}

// Model returns the LLM model name.
func (l *LLM) Model() string {
	return l.modelName
}
