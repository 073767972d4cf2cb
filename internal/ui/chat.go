package ui

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/raphaelgruber/chatbox-go/internal/chat"
)

// settledMsg reports that a submission's send operation finished. The
// container has already recorded the outcome by the time it arrives; the
// model only needs to re-sync.
type settledMsg struct {
	err error
}

// Chat is the interactive conversation view: a message list, an input line,
// and a status row. All conversation state lives in the container; the model
// mirrors it into the widgets after every update.
type Chat struct {
	container *chat.Container
	theme     Theme

	list  List
	input Input

	width    int
	height   int
	quitting bool
}

// NewChat creates the chat view over the given container.
func NewChat(container *chat.Container, theme Theme) Chat {
	c := Chat{
		container: container,
		theme:     theme,
	}
	c.list = NewList(theme, 78, 18)
	c.input = NewInput(theme, func(text string) tea.Cmd {
		trimmed, ok := container.Begin(text)
		if !ok {
			return nil
		}
		return func() tea.Msg {
			_, err := container.Dispatch(context.Background(), trimmed)
			return settledMsg{err: err}
		}
	})
	return c
}

func (c Chat) Init() tea.Cmd {
	return nil
}

func (c Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		listHeight := msg.Height - 7
		if listHeight < 3 {
			listHeight = 3
		}
		c.list = c.list.SetSize(msg.Width-2, listHeight)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			c.quitting = true
			return c, tea.Quit
		}

	case settledMsg:
		// Outcome is already in the container, sync below picks it up.
	}

	wasLoading := c.input.Loading

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	cmds = append(cmds, cmd)
	c.list, cmd = c.list.Update(msg)
	cmds = append(cmds, cmd)

	st := c.container.Snapshot()
	c.input.Disabled = st.Loading
	c.input.Loading = st.Loading
	c.list = c.list.SetMessages(st.Messages, st.Version)
	if st.Loading && !wasLoading {
		cmds = append(cmds, c.input.Tick())
	}

	return c, tea.Batch(cmds...)
}

func (c Chat) View() tea.View {
	if c.quitting {
		return tea.NewView("")
	}
	return tea.NewView(c.renderContent())
}

// renderContent builds the display string.
func (c Chat) renderContent() string {
	var b strings.Builder
	b.WriteString(c.theme.accentStyle().Bold(true).Render("chatbox"))
	b.WriteString("\n\n")
	b.WriteString(c.list.View())
	b.WriteString("\n")

	st := c.container.Snapshot()
	if st.LastError != "" {
		b.WriteString(c.theme.errorStyle().Render(st.LastError))
	}
	b.WriteString("\n")
	b.WriteString(c.input.View())
	b.WriteString("\n")
	b.WriteString(c.theme.hintStyle().Render("Enter: send • Esc: quit"))

	return b.String()
}

// RunChat runs the interactive chat UI until the user quits.
func RunChat(container *chat.Container, theme Theme) error {
	p := tea.NewProgram(NewChat(container, theme))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}
	return nil
}
