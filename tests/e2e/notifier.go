//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"sync"

	"forget-bot/internal/pkg/config"
	"forget-bot/internal/usecase/shared"
)

// Post is one message the bot sent.
type Post struct {
	ChannelID string
	MessageID string
	Content   string
}

// FakeNotifier stands in for the chat platform. Reactions from AckUserIDs
// are reported on every message.
type FakeNotifier struct {
	mu         sync.Mutex
	posts      []Post
	AckUserIDs []string
}

var (
	_ shared.Notifier         = (*FakeNotifier)(nil)
	_ shared.NotifierProvider = (*FakeNotifier)(nil)
)

func (f *FakeNotifier) For(config.Environment) (shared.Notifier, error) {
	return f, nil
}

func (f *FakeNotifier) OpenDirectChannel(_ context.Context, userID string) (string, error) {
	return "dm-" + userID, nil
}

func (f *FakeNotifier) PostMessage(_ context.Context, channelID, content string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("m%d", len(f.posts)+1)
	f.posts = append(f.posts, Post{ChannelID: channelID, MessageID: id, Content: content})
	return id, nil
}

func (f *FakeNotifier) AddOwnReaction(context.Context, string, string, string) error {
	return nil
}

func (f *FakeNotifier) ReactionUserIDs(context.Context, string, string, string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{"bot"}, f.AckUserIDs...), nil
}

func (f *FakeNotifier) Posts() []Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Post(nil), f.posts...)
}

func (f *FakeNotifier) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = nil
	f.AckUserIDs = nil
}
