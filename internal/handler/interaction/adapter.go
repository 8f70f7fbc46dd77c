package interaction

import (
	"strconv"

	"forget-bot/internal/pkg/errs"

	"github.com/bwmarrin/discordgo"
)

// FromDiscord normalizes a webhook interaction. Payloads that do not fit the
// canonical shape are rejected instead of probed.
func FromDiscord(i *discordgo.Interaction) (Invocation, error) {
	inv := Invocation{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		UserID:    invokingUserID(i),
		Strings:   map[string]string{},
		Bools:     map[string]bool{},
	}
	if ts, err := discordgo.SnowflakeTimestamp(i.ID); err == nil {
		inv.SentAt = ts
	}

	switch i.Type {
	case discordgo.InteractionPing:
		inv.Kind = KindPing
	case discordgo.InteractionApplicationCommand:
		inv.Kind = KindCommand
		if err := fromCommand(&inv, i); err != nil {
			return Invocation{}, err
		}
	case discordgo.InteractionMessageComponent:
		inv.Kind = KindComponent
		data := i.MessageComponentData()
		inv.Name = data.CustomID
		if len(data.Values) > 0 {
			inv.Strings["value"] = data.Values[0]
		}
	case discordgo.InteractionModalSubmit:
		inv.Kind = KindModal
		data := i.ModalSubmitData()
		inv.Name = data.CustomID
		collectFields(inv.Strings, data.Components)
	default:
		return Invocation{}, errs.Wrapf(ErrInvalidInvocation, "unsupported interaction type %d", int(i.Type))
	}

	if err := inv.Validate(); err != nil {
		return Invocation{}, err
	}
	return inv, nil
}

func fromCommand(inv *Invocation, i *discordgo.Interaction) error {
	data := i.ApplicationCommandData()
	inv.Name = data.Name

	switch data.CommandType {
	case discordgo.MessageApplicationCommand:
		if data.Resolved == nil || data.Resolved.Messages[data.TargetID] == nil {
			return errs.Wrapf(ErrInvalidInvocation, "target message %s not resolved", data.TargetID)
		}
		msg := data.Resolved.Messages[data.TargetID]
		guildID := msg.GuildID
		if guildID == "" {
			guildID = i.GuildID
		}
		channelID := msg.ChannelID
		if channelID == "" {
			channelID = i.ChannelID
		}
		inv.Target = &TargetMessage{
			ID:        msg.ID,
			ChannelID: channelID,
			GuildID:   guildID,
			Content:   msg.Content,
		}
	case discordgo.ChatApplicationCommand, 0:
		collectOptions(inv, data.Options)
	default:
		return errs.Wrapf(ErrInvalidInvocation, "unsupported command type %d", int(data.CommandType))
	}
	return nil
}

// collectOptions flattens subcommand options into the invocation.
func collectOptions(inv *Invocation, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	for _, opt := range opts {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			inv.Strings[opt.Name] = opt.StringValue()
		case discordgo.ApplicationCommandOptionBoolean:
			inv.Bools[opt.Name] = opt.BoolValue()
		case discordgo.ApplicationCommandOptionInteger:
			inv.Strings[opt.Name] = strconv.FormatInt(opt.IntValue(), 10)
		case discordgo.ApplicationCommandOptionSubCommand, discordgo.ApplicationCommandOptionSubCommandGroup:
			collectOptions(inv, opt.Options)
		}
	}
}

func collectFields(dst map[string]string, components []discordgo.MessageComponent) {
	for _, c := range components {
		switch v := c.(type) {
		case *discordgo.ActionsRow:
			collectFields(dst, v.Components)
		case *discordgo.TextInput:
			dst[v.CustomID] = v.Value
		}
	}
}

func invokingUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
