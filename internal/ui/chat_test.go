package ui

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/chatbox-go/internal/chat"
)

// runCmds executes a command tree and collects every produced message,
// flattening batches the way the runtime would.
func runCmds(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	var msgs []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			msgs = append(msgs, runCmds(t, sub)...)
		}
	case nil:
	default:
		msgs = append(msgs, msg)
	}
	return msgs
}

// submitDraft types a draft into the model and presses enter, returning the
// updated model and the messages the resulting commands produced.
func submitDraft(t *testing.T, c Chat, draft string) (Chat, []tea.Msg) {
	t.Helper()
	c.input.SetValue(draft)
	model, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	updated, ok := model.(Chat)
	require.True(t, ok)
	return updated, runCmds(t, cmd)
}

// deliver feeds a message back into the model, as the runtime would after a
// command settles.
func deliver(t *testing.T, c Chat, msg tea.Msg) Chat {
	t.Helper()
	model, _ := c.Update(msg)
	updated, ok := model.(Chat)
	require.True(t, ok)
	return updated
}

func findSettled(msgs []tea.Msg) (settledMsg, bool) {
	for _, msg := range msgs {
		if settled, ok := msg.(settledMsg); ok {
			return settled, true
		}
	}
	return settledMsg{}, false
}

func TestChatSubmitRoundTrip(t *testing.T) {
	container := chat.NewContainer(func(ctx context.Context, text string) (chat.Reply, error) {
		return chat.Reply{Text: "echo: " + text}, nil
	})
	c := NewChat(container, DefaultTheme)

	c, msgs := submitDraft(t, c, "  hello  ")

	// While the send is in flight: user entry visible, input held back.
	assert.Len(t, container.History(), 1)
	assert.Equal(t, "hello", container.History()[0].Text)
	assert.True(t, c.input.Disabled)
	assert.True(t, c.input.Loading)
	assert.Empty(t, c.input.Value(), "draft should be cleared immediately")

	settled, ok := findSettled(msgs)
	require.True(t, ok, "submit must produce a settle message")
	require.NoError(t, settled.err)
	c = deliver(t, c, settled)

	history := container.History()
	require.Len(t, history, 2)
	assert.Equal(t, chat.SenderBot, history[1].Sender)
	assert.Equal(t, "echo: hello", history[1].Text)

	assert.False(t, c.input.Disabled, "input must be re-enabled after the send settles")
	assert.False(t, c.input.Loading)
	assert.NotContains(t, c.renderContent(), chat.FailedSendText)
	assert.Contains(t, c.renderContent(), "echo: hello")
}

func TestChatSubmitFailureShowsError(t *testing.T) {
	container := chat.NewContainer(func(ctx context.Context, text string) (chat.Reply, error) {
		return chat.Reply{}, errors.New("backend unreachable")
	})
	c := NewChat(container, DefaultTheme)

	c, msgs := submitDraft(t, c, "hello")
	settled, ok := findSettled(msgs)
	require.True(t, ok)
	require.Error(t, settled.err)
	c = deliver(t, c, settled)

	history := container.History()
	require.Len(t, history, 2)
	assert.Equal(t, chat.TypeError, history[1].Type)
	assert.Equal(t, chat.FailedSendText, history[1].Text)

	assert.False(t, c.input.Disabled, "input must recover after a failed send")
	assert.False(t, c.input.Loading)
	assert.Contains(t, c.renderContent(), chat.FailedSendText)
}

func TestChatErrorLineClearedByNextSubmit(t *testing.T) {
	var fail bool
	container := chat.NewContainer(func(ctx context.Context, text string) (chat.Reply, error) {
		if fail {
			return chat.Reply{}, errors.New("backend unreachable")
		}
		return chat.Reply{Text: "ok"}, nil
	})
	c := NewChat(container, DefaultTheme)

	fail = true
	c, msgs := submitDraft(t, c, "first")
	settled, ok := findSettled(msgs)
	require.True(t, ok)
	c = deliver(t, c, settled)
	require.Contains(t, c.renderContent(), chat.FailedSendText)

	fail = false
	c, msgs = submitDraft(t, c, "second")
	settled, ok = findSettled(msgs)
	require.True(t, ok)
	c = deliver(t, c, settled)

	assert.Empty(t, container.LastError())
	assert.Contains(t, c.renderContent(), "ok")
}

func TestChatEmptyDraftIsNoOp(t *testing.T) {
	container := chat.NewContainer(func(ctx context.Context, text string) (chat.Reply, error) {
		t.Fatal("send must not run for an empty draft")
		return chat.Reply{}, nil
	})
	c := NewChat(container, DefaultTheme)

	c, msgs := submitDraft(t, c, "   ")
	_, ok := findSettled(msgs)
	assert.False(t, ok)
	assert.Empty(t, container.History())
	assert.False(t, c.input.Disabled)
}
