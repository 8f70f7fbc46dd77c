package reminder

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxMessageLength     = 2000
	DefaultPreviewLength = 100
	ListDisplayLength    = 200

	// AckEmoji is the reaction that acknowledges a delivered reminder.
	AckEmoji = "✅"

	noTextPreview = "[No text content]"
	ellipsis      = "..."
)

type Message struct {
	text string
}

func NewMessage(s string) (Message, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Message{}, ErrEmptyMessage
	}
	if utf8.RuneCountInString(t) > MaxMessageLength {
		return Message{}, ErrMessageTooLong
	}
	return Message{text: t}, nil
}

func (m Message) String() string { return m.text }

// Origin points a reminder back at the chat message it was created from.
type Origin struct {
	link    string
	preview string
}

func NewOrigin(link, preview string) (*Origin, error) {
	if link == "" || preview == "" {
		return nil, ErrInvalidOrigin
	}
	return &Origin{link: link, preview: preview}, nil
}

func (o *Origin) Link() string    { return o.link }
func (o *Origin) Preview() string { return o.preview }

// MessageLink builds a jump URL; direct messages use the @me scope.
func MessageLink(guildID, channelID, messageID string) string {
	scope := guildID
	if scope == "" {
		scope = "@me"
	}
	return "https://discord.com/channels/" + scope + "/" + channelID + "/" + messageID
}

func Preview(content string, maxLength int) string {
	t := strings.TrimSpace(content)
	if t == "" {
		return noTextPreview
	}
	if maxLength <= 0 {
		maxLength = DefaultPreviewLength
	}
	return Truncate(t, maxLength)
}

// Truncate cuts s to maxRunes runes and appends an ellipsis when it cut.
func Truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + ellipsis
}
