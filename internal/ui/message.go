package ui

import (
	"fmt"

	"github.com/raphaelgruber/chatbox-go/internal/chat"
)

// Category classifies a message for presentation. Error entries win over the
// sender-based category.
type Category string

const (
	CategoryUser  Category = "user"
	CategoryBot   Category = "bot"
	CategoryError Category = "error"
)

// CategoryOf returns the visual category of a message.
func CategoryOf(m chat.Message) Category {
	if m.Type == chat.TypeError {
		return CategoryError
	}
	if m.Sender == chat.SenderUser {
		return CategoryUser
	}
	return CategoryBot
}

// ClockTime renders a message timestamp as a local hour:minute label. An
// unparseable timestamp yields an empty label; rendering never fails.
func ClockTime(m chat.Message) string {
	t, ok := m.Time()
	if !ok {
		return ""
	}
	return t.Local().Format("15:04")
}

// RenderMessage renders a single message as a display line. It is a pure
// function of the message and theme: the text appears verbatim, the time
// label comes from ClockTime, and the label style follows the category.
func (t Theme) RenderMessage(m chat.Message) string {
	var label string
	switch CategoryOf(m) {
	case CategoryError:
		label = t.errorStyle().Render("error")
	case CategoryUser:
		label = t.userStyle().Render("you")
	default:
		label = t.botStyle().Render("bot")
	}

	if clock := ClockTime(m); clock != "" {
		label += " " + t.timeStyle().Render(clock)
	}

	return fmt.Sprintf("%s  %s", label, m.Text)
}
