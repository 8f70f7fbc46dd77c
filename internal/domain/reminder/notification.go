package reminder

import (
	"fmt"
	"unicode/utf8"
)

// MaxContentLength is the chat platform's limit on a posted message.
const MaxContentLength = 2000

// DeliveryContent is the first direct message sent when a reminder fires.
func DeliveryContent(message, link, preview string) string {
	if link != "" && preview != "" {
		return fitContent("⏰ **Reminder about this message:**\n\n> ", preview, jumpLink(link))
	}
	return fitContent("⏰ **Reminder:** ", message, "")
}

// FollowUpContent is an escalation message. remaining counts the follow-ups
// still to come after this one; next is the wait before the next one.
func FollowUpContent(message, link, preview string, remaining int, next string) string {
	footer := fmt.Sprintf("\n\n_React with %s to acknowledge. Next reminder in %s (%d remaining)._", AckEmoji, next, remaining)
	if remaining <= 0 {
		footer = "\n\n_React with " + AckEmoji + " to acknowledge. This is the final reminder._"
	}

	if link != "" && preview != "" {
		return fitContent("🔔 **Follow-up reminder about this message:**\n\n> ", preview, jumpLink(link)+footer)
	}
	return fitContent("🔔 **Follow-up reminder:** ", message, footer)
}

func jumpLink(link string) string {
	return "\n\n[Jump to message](" + link + ")"
}

// fitContent truncates body so the whole message stays within
// MaxContentLength. The wrapper is measured in bytes, which bounds its
// character count from above.
func fitContent(prefix, body, suffix string) string {
	budget := MaxContentLength - len(prefix) - len(suffix)
	if utf8.RuneCountInString(body) > budget {
		body = Truncate(body, max(budget-len(ellipsis), 0))
	}
	return prefix + body + suffix
}
