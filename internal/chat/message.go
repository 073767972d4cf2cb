// Package chat implements the chat session core: the message history and the
// submission state machine that coordinates input, delivery, and outcomes.
package chat

import "time"

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Type marks special message kinds. The zero value is a normal message.
type Type string

// TypeError marks an error notification entry. It overrides sender-based
// presentation.
const TypeError Type = "error"

// Message is a single immutable chat-history entry.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp string `json:"timestamp"`
	Type      Type   `json:"type,omitempty"`
}

// Time parses the message timestamp. The second return value is false when
// the timestamp is not parseable; callers must render the message regardless.
func (m Message) Time() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, m.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
