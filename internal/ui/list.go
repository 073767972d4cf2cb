package ui

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/raphaelgruber/chatbox-go/internal/chat"
)

// List renders the conversation inside a scrollable viewport and keeps the
// most recent entry visible whenever the sequence changes.
type List struct {
	theme Theme
	vp    viewport.Model

	rendered    bool
	lastVersion uint64
	scrolls     int
}

// NewList creates a message list with the given dimensions.
func NewList(theme Theme, width, height int) List {
	vp := viewport.New(
		viewport.WithWidth(width),
		viewport.WithHeight(height),
	)
	return List{theme: theme, vp: vp}
}

// SetMessages replaces the rendered sequence. The scroll-to-latest side
// effect fires exactly once per distinct version, the first render included;
// re-renders of an unchanged version leave the scroll position alone so the
// user can read back through history.
func (l List) SetMessages(msgs []chat.Message, version uint64) List {
	if l.rendered && version == l.lastVersion {
		return l
	}

	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, l.theme.RenderMessage(m))
	}
	l.vp.SetContent(strings.Join(lines, "\n"))
	l.vp.GotoBottom()
	l.scrolls++
	l.rendered = true
	l.lastVersion = version
	return l
}

// SetSize resizes the viewport.
func (l List) SetSize(width, height int) List {
	l.vp.SetWidth(width)
	l.vp.SetHeight(height)
	return l
}

// Update forwards scroll keys and mouse wheel events to the viewport.
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	var cmd tea.Cmd
	l.vp, cmd = l.vp.Update(msg)
	return l, cmd
}

// View renders the viewport.
func (l List) View() string {
	return l.vp.View()
}
