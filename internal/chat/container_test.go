package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() []Option {
	var seq int
	now := time.Date(2023, 1, 1, 15, 30, 0, 0, time.UTC)
	return []Option{
		WithClock(func() time.Time { return now }),
		WithIDGen(func() string {
			seq++
			return fmt.Sprintf("msg-%d", seq)
		}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func TestSubmit_AppendsUserAndOutcomePair(t *testing.T) {
	send := func(ctx context.Context, text string) (Reply, error) {
		return Reply{Text: "This is a response from the chatbot."}, nil
	}
	c := NewContainer(send, testOptions()...)

	outcome, err := c.Submit(context.Background(), "Test message")
	require.NoError(t, err)
	require.NotNil(t, outcome)

	history := c.History()
	require.Len(t, history, 2)
	assert.Equal(t, SenderUser, history[0].Sender)
	assert.Equal(t, "Test message", history[0].Text)
	assert.Equal(t, SenderBot, history[1].Sender)
	assert.Equal(t, "This is a response from the chatbot.", history[1].Text)
	assert.Empty(t, history[1].Type)
	assert.Equal(t, *outcome, history[1])

	assert.False(t, c.Loading())
	assert.Empty(t, c.LastError())
}

func TestSubmit_WhitespaceOnlyIsNoOp(t *testing.T) {
	invoked := false
	send := func(ctx context.Context, text string) (Reply, error) {
		invoked = true
		return Reply{}, nil
	}
	c := NewContainer(send, testOptions()...)

	for _, text := range []string{"", "   ", "\t\n  "} {
		outcome, err := c.Submit(context.Background(), text)
		require.NoError(t, err)
		assert.Nil(t, outcome)
	}

	assert.False(t, invoked, "send must not be invoked for empty submissions")
	assert.Empty(t, c.History())
	assert.False(t, c.Loading())
	assert.Zero(t, c.Version())
}

func TestSubmit_TrimsDraftText(t *testing.T) {
	var sent string
	send := func(ctx context.Context, text string) (Reply, error) {
		sent = text
		return Reply{Text: "ok"}, nil
	}
	c := NewContainer(send, testOptions()...)

	_, err := c.Submit(context.Background(), "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", sent)
	assert.Equal(t, "hello", c.History()[0].Text)
}

func TestSubmit_FailureAppendsErrorEntry(t *testing.T) {
	send := func(ctx context.Context, text string) (Reply, error) {
		return Reply{}, errors.New("boom")
	}
	c := NewContainer(send, testOptions()...)

	outcome, err := c.Submit(context.Background(), "Test message")
	require.Error(t, err)
	require.NotNil(t, outcome)

	history := c.History()
	require.Len(t, history, 2)
	assert.Equal(t, SenderUser, history[0].Sender)
	assert.Equal(t, TypeError, history[1].Type)
	assert.Equal(t, FailedSendText, history[1].Text)
	// Error entries still carry the bot sender; the type wins for presentation.
	assert.Equal(t, SenderBot, history[1].Sender)

	assert.Equal(t, FailedSendText, c.LastError())
	assert.False(t, c.Loading(), "loading must clear even when send fails")
}

func TestSubmit_NextSubmissionClearsError(t *testing.T) {
	fail := true
	send := func(ctx context.Context, text string) (Reply, error) {
		if fail {
			return Reply{}, errors.New("boom")
		}
		return Reply{Text: "recovered"}, nil
	}
	c := NewContainer(send, testOptions()...)

	_, err := c.Submit(context.Background(), "first")
	require.Error(t, err)
	require.Equal(t, FailedSendText, c.LastError())

	fail = false
	_, err = c.Submit(context.Background(), "second")
	require.NoError(t, err)
	assert.Empty(t, c.LastError())
	assert.Len(t, c.History(), 4)
}

func TestBegin_RaisesLoadingBeforeDispatch(t *testing.T) {
	c := NewContainer(func(ctx context.Context, text string) (Reply, error) {
		return Reply{Text: "ok"}, nil
	}, testOptions()...)

	trimmed, ok := c.Begin("  hi  ")
	require.True(t, ok)
	assert.Equal(t, "hi", trimmed)
	assert.True(t, c.Loading())
	require.Len(t, c.History(), 1)
	assert.Equal(t, SenderUser, c.History()[0].Sender)

	_, err := c.Dispatch(context.Background(), trimmed)
	require.NoError(t, err)
	assert.False(t, c.Loading())
	assert.Len(t, c.History(), 2)
}

func TestBegin_RejectsEmptyDraft(t *testing.T) {
	c := NewContainer(nil, testOptions()...)
	_, ok := c.Begin("   ")
	assert.False(t, ok)
	assert.Empty(t, c.History())
	assert.False(t, c.Loading())
}

func TestVersion_IncrementsPerHistoryChange(t *testing.T) {
	c := NewContainer(func(ctx context.Context, text string) (Reply, error) {
		return Reply{Text: "ok"}, nil
	}, testOptions()...)

	require.Zero(t, c.Version())

	_, err := c.Submit(context.Background(), "one")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c.Version(), "user entry and outcome entry each bump the version")

	c.Clear()
	assert.Equal(t, uint64(3), c.Version())
	assert.Empty(t, c.History())
}

func TestWithInitialMessages_SeedsHistory(t *testing.T) {
	seed := []Message{
		{ID: "a", Text: "hello", Sender: SenderUser, Timestamp: "2023-01-01T15:30:00Z"},
		{ID: "b", Text: "hi there", Sender: SenderBot, Timestamp: "2023-01-01T15:30:01Z"},
	}
	c := NewContainer(nil, append(testOptions(), WithInitialMessages(seed))...)

	history := c.History()
	require.Len(t, history, 2)
	assert.Equal(t, seed, history)

	// The returned slice is a copy; mutating it must not affect the container.
	history[0].Text = "mutated"
	assert.Equal(t, "hello", c.History()[0].Text)
}

func TestSnapshot_IsConsistent(t *testing.T) {
	c := NewContainer(func(ctx context.Context, text string) (Reply, error) {
		return Reply{}, errors.New("down")
	}, testOptions()...)

	_, err := c.Submit(context.Background(), "hello")
	require.Error(t, err)

	st := c.Snapshot()
	assert.Len(t, st.Messages, 2)
	assert.False(t, st.Loading)
	assert.Equal(t, FailedSendText, st.LastError)
	assert.Equal(t, uint64(2), st.Version)
}

func TestMessage_TimeParsing(t *testing.T) {
	m := Message{Timestamp: "2023-01-01T15:30:00.000Z"}
	parsed, ok := m.Time()
	require.True(t, ok)
	assert.Equal(t, 15, parsed.UTC().Hour())
	assert.Equal(t, 30, parsed.UTC().Minute())

	_, ok = Message{Timestamp: "not-a-time"}.Time()
	assert.False(t, ok)
}
