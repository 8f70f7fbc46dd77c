//go:build unit

package reminder_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"forget-bot/internal/domain/reminder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReminder(t *testing.T) {
	sentAt := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	msg, err := reminder.NewMessage("take out the trash")
	require.NoError(t, err)

	testCases := []struct {
		name        string
		userID      string
		delay       time.Duration
		expectedErr error
	}{
		{name: "success: scheduled after delay", userID: "123", delay: 5 * time.Minute},
		{name: "error: empty user", userID: " ", delay: time.Minute, expectedErr: reminder.ErrEmptyUserID},
		{name: "error: zero delay", userID: "123", delay: 0, expectedErr: reminder.ErrNonPositiveDelay},
		{name: "error: negative delay", userID: "123", delay: -time.Second, expectedErr: reminder.ErrNonPositiveDelay},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := reminder.NewReminder(uuid.Nil, tc.userID, msg, nil, true, sentAt, tc.delay)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, sentAt.Add(tc.delay), r.ScheduledFor())
			assert.Equal(t, tc.delay, r.Delay())
			assert.Empty(t, r.Link())
			assert.Empty(t, r.Preview())
		})
	}
}

func TestNewMessage(t *testing.T) {
	_, err := reminder.NewMessage("   ")
	assert.ErrorIs(t, err, reminder.ErrEmptyMessage)

	_, err = reminder.NewMessage(strings.Repeat("a", reminder.MaxMessageLength+1))
	assert.ErrorIs(t, err, reminder.ErrMessageTooLong)

	m, err := reminder.NewMessage("  call mom  ")
	require.NoError(t, err)
	assert.Equal(t, "call mom", m.String())
}

func TestMessageLink(t *testing.T) {
	assert.Equal(t, "https://discord.com/channels/1/2/3", reminder.MessageLink("1", "2", "3"))
	assert.Equal(t, "https://discord.com/channels/@me/2/3", reminder.MessageLink("", "2", "3"))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "[No text content]", reminder.Preview("  ", 100))
	assert.Equal(t, "hello", reminder.Preview(" hello ", 100))
	assert.Equal(t, strings.Repeat("é", 100)+"...", reminder.Preview(strings.Repeat("é", 150), 100))
	assert.Equal(t, strings.Repeat("x", 100), reminder.Preview(strings.Repeat("x", 100), 100))
}

func TestDeliveryContent(t *testing.T) {
	assert.Equal(t, "⏰ **Reminder:** stretch", reminder.DeliveryContent("stretch", "", ""))
	assert.Equal(t,
		"⏰ **Reminder about this message:**\n\n> look at this\n\n[Jump to message](https://discord.com/channels/1/2/3)",
		reminder.DeliveryContent("look at this", "https://discord.com/channels/1/2/3", "look at this"),
	)
}

func TestFollowUpContent(t *testing.T) {
	assert.Equal(t,
		"🔔 **Follow-up reminder:** stretch\n\n_React with ✅ to acknowledge. Next reminder in 2 hours (4 remaining)._",
		reminder.FollowUpContent("stretch", "", "", 4, "2 hours"),
	)
	assert.Equal(t,
		"🔔 **Follow-up reminder about this message:**\n\n> p\n\n[Jump to message](l)\n\n_React with ✅ to acknowledge. This is the final reminder._",
		reminder.FollowUpContent("m", "l", "p", 0, ""),
	)
}

func TestComposedContentFitsPlatformLimit(t *testing.T) {
	msg, err := reminder.NewMessage(strings.Repeat("a", reminder.MaxMessageLength))
	require.NoError(t, err)
	long := msg.String()
	wide := strings.Repeat("é", reminder.MaxMessageLength)

	testCases := []struct {
		name    string
		content string
	}{
		{name: "success: delivery of a max length message", content: reminder.DeliveryContent(long, "", "")},
		{name: "success: follow-up with rounds remaining", content: reminder.FollowUpContent(long, "", "", 4, "2 hours")},
		{name: "success: final follow-up", content: reminder.FollowUpContent(long, "", "", 0, "")},
		{name: "success: multi-byte message", content: reminder.FollowUpContent(wide, "", "", 4, "12 hours")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.LessOrEqual(t, utf8.RuneCountInString(tc.content), reminder.MaxContentLength)
			assert.Contains(t, tc.content, "...")
		})
	}

	t.Run("success: ascii content fits in bytes too", func(t *testing.T) {
		assert.LessOrEqual(t, len(reminder.FollowUpContent(long, "", "", 4, "2 hours")), reminder.MaxContentLength)
	})

	t.Run("success: short message is left intact", func(t *testing.T) {
		assert.Equal(t, "⏰ **Reminder:** stretch", reminder.DeliveryContent("stretch", "", ""))
	})
}
