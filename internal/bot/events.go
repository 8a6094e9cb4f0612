package bot

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"warden/internal/guild"
	"warden/internal/optin"
	"warden/internal/platform/config"
	"warden/internal/screening"
)

type ScreeningHandler interface {
	HandleMemberUpdate(ctx context.Context, before, after *guild.Member, role guild.Role) (screening.Transition, error)
	HandleMemberJoin(ctx context.Context, member guild.Member) string
}

type OptInToggler interface {
	Toggle(ctx context.Context, member guild.Member, role guild.Role) (optin.Action, error)
}

// Events turns gateway events into calls on the moderation services.
type Events struct {
	cfg       config.Bot
	platform  Platform
	screening ScreeningHandler
	optin     OptInToggler
	commands  *Commands
	logger    *slog.Logger
}

func NewEvents(cfg config.Bot, platform Platform, screening ScreeningHandler, optin OptInToggler, commands *Commands, logger *slog.Logger) *Events {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Events{
		cfg:       cfg,
		platform:  platform,
		screening: screening,
		optin:     optin,
		commands:  commands,
		logger:    logger,
	}
}

func (e *Events) OnReady(ctx context.Context, r *discordgo.Ready) {
	e.logger.InfoContext(ctx, "logged in",
		"user", r.User.Username,
		"user_id", r.User.ID,
		"guilds", len(r.Guilds),
	)
}

// OnMemberJoin announces a new member in the status channel.
func (e *Events) OnMemberJoin(ctx context.Context, m *discordgo.GuildMemberAdd) {
	if m.Member == nil || m.User == nil {
		return
	}
	member := ConvertMember(m.GuildID, m.Member)
	e.status(ctx, member.GuildID, e.screening.HandleMemberJoin(ctx, member))
}

// OnMemberUpdate runs the screening gate. Without a cached prior state nothing fires.
func (e *Events) OnMemberUpdate(ctx context.Context, m *discordgo.GuildMemberUpdate) {
	if m.Member == nil || m.User == nil {
		return
	}
	after := ConvertMember(m.GuildID, m.Member)
	var before *guild.Member
	if m.BeforeUpdate != nil {
		b := ConvertMember(m.GuildID, m.BeforeUpdate)
		before = &b
	}
	if before == nil || !before.Pending || after.Pending {
		return
	}

	role, err := lookupRole(ctx, e.platform, after.GuildID, e.cfg.MemberRole)
	if err != nil {
		e.logger.ErrorContext(ctx, "screening role lookup failed", "guild_id", after.GuildID, "error", err)
		e.status(ctx, after.GuildID, FormatError(err))
		return
	}

	transition, err := e.screening.HandleMemberUpdate(ctx, before, &after, role)
	switch transition {
	case screening.TransitionGranted:
		e.status(ctx, after.GuildID, screeningGranted(after, role))
	case screening.TransitionFailed:
		e.status(ctx, after.GuildID, grantFailed(after, role, err))
	}
}

// OnMessage dispatches prefixed commands from guild text channels.
func (e *Events) OnMessage(ctx context.Context, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	name, args, ok := ParseInvocation(e.cfg.CommandPrefix, m.Content)
	if !ok {
		return
	}
	inv := Invocation{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		AuthorID:  m.Author.ID,
		Name:      name,
		Args:      args,
	}
	if m.Member != nil {
		inv.RoleIDs = m.Member.Roles
	}
	e.commands.Handle(ctx, inv)
}

// OnInteraction handles presses of the opt-in button.
func (e *Events) OnInteraction(ctx context.Context, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent || i.Member == nil || i.Member.User == nil {
		return
	}
	if i.MessageComponentData().CustomID != optin.ButtonID {
		return
	}
	member := ConvertMember(i.GuildID, i.Member)

	text := ""
	role, err := lookupRole(ctx, e.platform, member.GuildID, e.cfg.OptInRole)
	if err == nil {
		var action optin.Action
		action, err = e.optin.Toggle(ctx, member, role)
		if err == nil {
			text = optin.Reply(action, role)
		}
	}
	if err != nil {
		e.logger.ErrorContext(ctx, "opt-in interaction failed", "guild_id", member.GuildID, "user_id", member.ID, "error", err)
		text = FormatError(err)
	}
	if err := e.platform.RespondEphemeral(ctx, i.Interaction, text); err != nil {
		e.logger.ErrorContext(ctx, "failed to answer interaction", "error", err)
	}
}

// status posts to the configured status channel, logging any failure.
func (e *Events) status(ctx context.Context, guildID, text string) {
	channelID, err := e.platform.ChannelByName(ctx, guildID, e.cfg.StatusChannel)
	if err != nil {
		e.logger.ErrorContext(ctx, "status channel lookup failed",
			"guild_id", guildID,
			"channel", e.cfg.StatusChannel,
			"error", err,
		)
		return
	}
	if err := e.platform.SendMessage(ctx, channelID, text); err != nil {
		e.logger.ErrorContext(ctx, "failed to post status message", "guild_id", guildID, "error", err)
	}
}
