// Package discord delivers reminders through the Discord REST API.
package discord

import (
	"context"
	"sync"

	"forget-bot/internal/pkg/config"
	"forget-bot/internal/pkg/errs"
	"forget-bot/internal/usecase/shared"

	"github.com/bwmarrin/discordgo"
)

const reactionPageSize = 100

var ErrNoCredentials = errs.New("no bot credentials configured for environment")

// RESTClient is the subset of *discordgo.Session the notifier calls.
type RESTClient interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	MessageReactions(channelID, messageID, emojiID string, limit int, beforeID, afterID string, options ...discordgo.RequestOption) ([]*discordgo.User, error)
}

type Notifier struct {
	client RESTClient
}

func NewNotifier(client RESTClient) *Notifier {
	return &Notifier{client: client}
}

var _ shared.Notifier = (*Notifier)(nil)

func (n *Notifier) OpenDirectChannel(ctx context.Context, userID string) (string, error) {
	ch, err := n.client.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", external(err, "create dm channel")
	}
	return ch.ID, nil
}

func (n *Notifier) PostMessage(ctx context.Context, channelID, content string) (string, error) {
	msg, err := n.client.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return "", external(err, "send message")
	}
	return msg.ID, nil
}

func (n *Notifier) AddOwnReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := n.client.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return external(err, "add reaction")
	}
	return nil
}

// ReactionUserIDs pages through every user who reacted with emoji.
func (n *Notifier) ReactionUserIDs(ctx context.Context, channelID, messageID, emoji string) ([]string, error) {
	var (
		ids   []string
		after string
	)
	for {
		users, err := n.client.MessageReactions(channelID, messageID, emoji, reactionPageSize, "", after, discordgo.WithContext(ctx))
		if err != nil {
			return nil, external(err, "list reactions")
		}
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		if len(users) < reactionPageSize {
			return ids, nil
		}
		after = users[len(users)-1].ID
	}
}

func external(err error, msg string) error {
	return errs.Wrap(errs.Mark(err, errs.ErrExternalServiceFailed), msg)
}

// ClientFactory opens a REST client for a bot token.
type ClientFactory func(token string) (RESTClient, error)

func sessionFactory(token string) (RESTClient, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Provider keeps one notifier per environment, created on first use.
type Provider struct {
	cfg       config.DiscordConfig
	newClient ClientFactory

	mu        sync.Mutex
	notifiers map[config.Environment]*Notifier
}

type ProviderOption func(*Provider)

func WithClientFactory(f ClientFactory) ProviderOption {
	return func(p *Provider) { p.newClient = f }
}

func NewProvider(cfg config.Config, opts ...ProviderOption) *Provider {
	p := &Provider{
		cfg:       cfg.Discord,
		newClient: sessionFactory,
		notifiers: make(map[config.Environment]*Notifier),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ shared.NotifierProvider = (*Provider)(nil)

func (p *Provider) For(env config.Environment) (shared.Notifier, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n, ok := p.notifiers[env]; ok {
		return n, nil
	}
	creds, ok := p.cfg.CredentialsFor(env)
	if !ok {
		return nil, errs.Wrapf(ErrNoCredentials, "environment %q", env)
	}
	client, err := p.newClient(creds.Token)
	if err != nil {
		return nil, errs.Wrapf(err, "open discord session for %s", env)
	}
	n := NewNotifier(client)
	p.notifiers[env] = n
	return n, nil
}
