package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/raphaelgruber/chatbox-go/internal/upload"
)

const uploadPollInterval = 100 * time.Millisecond

// uploadTickMsg triggers polling the flow state while an upload runs.
type uploadTickMsg time.Time

// uploadDoneMsg carries the settled upload outcome.
type uploadDoneMsg struct {
	result *upload.Result
	err    error
}

// Upload is the upload view: a drop-zone box around a path field, a progress
// bar while a transfer runs, and the final outcome. With an initial path it
// runs one-shot and exits when the upload settles; without one it stays
// interactive so the user can retry after validation errors.
type Upload struct {
	flow     *upload.Flow
	path     textinput.Model
	progress progress.Model
	theme    Theme

	state    upload.FlowState
	result   *upload.Result
	active   bool
	oneShot  bool
	done     bool
	quitting bool
	err      error
}

// NewUpload creates the upload view. path may be empty for interactive use.
func NewUpload(flow *upload.Flow, path string, theme Theme) Upload {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	ti := textinput.New()
	ti.Placeholder = "path to a .pdf file"
	ti.SetValue(path)
	ti.Focus()

	return Upload{
		flow:     flow,
		path:     ti,
		progress: prog,
		theme:    theme,
		active:   true,
		oneShot:  path != "",
	}
}

func (m Upload) Init() tea.Cmd {
	cmds := []tea.Cmd{m.progress.Init()}
	if m.oneShot {
		cmds = append(cmds, m.startUpload(m.path.Value()), uploadTickCmd())
	}
	return tea.Batch(cmds...)
}

func (m Upload) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			// Mirrors the drop target gaining and losing hover; purely
			// presentational.
			m.active = !m.active
			return m, nil
		case "enter":
			m.done = false
			m.result = nil
			m.err = nil
			return m, tea.Batch(m.startUpload(m.path.Value()), uploadTickCmd())
		}
		var cmd tea.Cmd
		m.path, cmd = m.path.Update(msg)
		return m, cmd

	case uploadTickMsg:
		m.state = m.flow.State()
		if m.state.Uploading {
			return m, uploadTickCmd()
		}
		return m, nil

	case uploadDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		m.state = m.flow.State()
		if m.oneShot {
			return m, tea.Quit
		}
		return m, nil

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Upload) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m Upload) renderContent() string {
	var b strings.Builder
	b.WriteString(m.dropZone())
	b.WriteString("\n")

	switch {
	case m.state.Uploading:
		pct := float64(m.state.Progress) / 100
		b.WriteString(fmt.Sprintf("%s %d%%\n", m.progress.ViewAs(pct), m.state.Progress))
	case m.done:
		b.WriteString(m.finalView())
	}

	if !m.oneShot {
		b.WriteString(m.theme.hintStyle().Render("Enter: upload • Tab: toggle target • Esc: quit"))
		b.WriteString("\n")
	}
	return b.String()
}

// dropZone draws the bordered target around the path field. The border
// brightens while the target is active.
func (m Upload) dropZone() string {
	border := m.theme.Hint
	if m.active {
		border = m.theme.Accent
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(48)
	return box.Render("Drop a PDF here\n" + m.path.View())
}

func (m Upload) finalView() string {
	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("✗ %s", m.err)) + "\n"
	}
	if m.result != nil {
		var out string
		out += m.theme.successStyle().Render("✓ Uploaded") + "\n"
		out += fmt.Sprintf("  File:        %s\n", m.result.Filename)
		out += fmt.Sprintf("  Text length: %d\n", m.result.TextLength)
		out += fmt.Sprintf("  File size:   %d bytes\n", m.result.FileSize)
		return out
	}
	return m.theme.successStyle().Render("✓ Uploaded") + "\n"
}

// startUpload runs the drop handler as a command so Update never blocks.
func (m Upload) startUpload(path string) tea.Cmd {
	flow := m.flow
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		var result *upload.Result
		var err error
		if path == "" {
			result, err = flow.HandleDrop(ctx)
		} else {
			result, err = flow.HandleDrop(ctx, path)
		}
		return uploadDoneMsg{result: result, err: err}
	}
}

func uploadTickCmd() tea.Cmd {
	return tea.Tick(uploadPollInterval, func(t time.Time) tea.Msg {
		return uploadTickMsg(t)
	})
}

// RunUpload runs the upload UI for the given path. In one-shot mode it
// returns the upload error, if any; a user quit is not an error.
func RunUpload(flow *upload.Flow, path string, theme Theme) error {
	p := tea.NewProgram(NewUpload(flow, path, theme))

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("upload UI error: %w", err)
	}

	if m, ok := finalModel.(Upload); ok {
		if m.quitting {
			return nil
		}
		if m.err != nil {
			return m.err
		}
	}
	return nil
}
