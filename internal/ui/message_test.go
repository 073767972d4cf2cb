package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raphaelgruber/chatbox-go/internal/chat"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name string
		msg  chat.Message
		want Category
	}{
		{"user message", chat.Message{Sender: chat.SenderUser}, CategoryUser},
		{"bot message", chat.Message{Sender: chat.SenderBot}, CategoryBot},
		{"error overrides bot sender", chat.Message{Sender: chat.SenderBot, Type: chat.TypeError}, CategoryError},
		{"error overrides user sender", chat.Message{Sender: chat.SenderUser, Type: chat.TypeError}, CategoryError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryOf(tt.msg))
		})
	}
}

func TestClockTime(t *testing.T) {
	// Pin the local zone so the hour:minute label is predictable.
	restore := time.Local
	time.Local = time.UTC
	defer func() { time.Local = restore }()

	m := chat.Message{Timestamp: "2023-01-01T15:30:00.000Z"}
	assert.Equal(t, "15:30", ClockTime(m))
}

func TestClockTime_UnparseableTimestamp(t *testing.T) {
	for _, ts := range []string{"", "garbage", "2023-13-99"} {
		assert.Empty(t, ClockTime(chat.Message{Timestamp: ts}), "timestamp %q", ts)
	}
}

func TestRenderMessage_ShowsTextVerbatim(t *testing.T) {
	theme := DefaultTheme

	m := chat.Message{
		Text:      "Hello <world> & everyone",
		Sender:    chat.SenderUser,
		Timestamp: "2023-01-01T15:30:00Z",
	}
	rendered := theme.RenderMessage(m)
	assert.Contains(t, rendered, "Hello <world> & everyone")
}

func TestRenderMessage_SurvivesBadTimestamp(t *testing.T) {
	theme := DefaultTheme

	m := chat.Message{Text: "still here", Sender: chat.SenderBot, Timestamp: "not-a-time"}
	rendered := theme.RenderMessage(m)
	assert.Contains(t, rendered, "still here")
}

func TestRenderMessage_ErrorLabel(t *testing.T) {
	theme := DefaultTheme

	m := chat.Message{
		Text:      chat.FailedSendText,
		Sender:    chat.SenderBot,
		Type:      chat.TypeError,
		Timestamp: "2023-01-01T15:30:00Z",
	}
	rendered := theme.RenderMessage(m)
	label, _, found := strings.Cut(rendered, "  ")
	assert.True(t, found)
	assert.Contains(t, label, "error")
	assert.NotContains(t, label, "bot", "error entries must not use the bot label")
}
