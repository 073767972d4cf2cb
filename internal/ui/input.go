package ui

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// Input owns the draft text and emits it through the send callback when the
// confirm key is pressed. Capture-and-forward only: no network or history
// side effects live here.
//
// Disabled blocks submission and editing entirely. Loading only shows the
// sending indicator; blocking is the owner's job via Disabled.
type Input struct {
	theme  Theme
	text   textinput.Model
	spin   spinner.Model
	onSend func(text string) tea.Cmd

	Disabled bool
	Loading  bool
}

// NewInput creates an input line. onSend receives the trimmed draft when a
// submission is accepted.
func NewInput(theme Theme, onSend func(text string) tea.Cmd) Input {
	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Input{
		theme:  theme,
		text:   ti,
		spin:   sp,
		onSend: onSend,
	}
}

// Update handles key input. Enter with a non-empty trimmed draft, while not
// disabled, invokes the send callback and clears the draft; otherwise it is
// a no-op.
func (i Input) Update(msg tea.Msg) (Input, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			if i.Disabled {
				return i, nil
			}
			draft := strings.TrimSpace(i.text.Value())
			if draft == "" {
				return i, nil
			}
			i.text.SetValue("")
			if i.onSend == nil {
				return i, nil
			}
			return i, i.onSend(draft)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		i.spin, cmd = i.spin.Update(msg)
		if i.Loading {
			return i, cmd
		}
		return i, nil
	}

	if i.Disabled {
		return i, nil
	}
	var cmd tea.Cmd
	i.text, cmd = i.text.Update(msg)
	return i, cmd
}

// Tick starts the sending indicator animation.
func (i Input) Tick() tea.Cmd {
	return i.spin.Tick
}

// View renders the input line and, while loading, the sending indicator.
func (i Input) View() string {
	view := i.text.View()
	if i.Loading {
		view += "\n" + i.spin.View() + " " + i.theme.hintStyle().Render("sending...")
	}
	return view
}

// Value returns the current draft.
func (i Input) Value() string {
	return i.text.Value()
}

// SetValue replaces the current draft.
func (i *Input) SetValue(s string) {
	i.text.SetValue(s)
}
