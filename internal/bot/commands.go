package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"warden/internal/guild"
	"warden/internal/platform/config"
	"warden/internal/platform/metrics"
	"warden/internal/reconcile"
	"warden/internal/rules"
	"warden/pkg/requestcontext"
)

// Platform is everything the chat layer asks of the server. *Adapter implements it.
type Platform interface {
	Directory
	SendMessage(ctx context.Context, channelID, text string) error
	RoleNames(ctx context.Context, guildID string, roleIDs []string) ([]string, error)
	SendOptInPrompt(ctx context.Context, channelID string, role guild.Role) error
	RespondEphemeral(ctx context.Context, interaction *discordgo.Interaction, text string) error
}

// BulkOperations is implemented by *Operations.
type BulkOperations interface {
	ImportAttendees(ctx context.Context, guildID, documentURL string) (*reconcile.Report, error)
	PublishRules(ctx context.Context, guildID string, mode rules.Mode) (*rules.Outcome, error)
}

// Invocation is one prefixed chat message.
type Invocation struct {
	GuildID   string
	ChannelID string
	AuthorID  string
	RoleIDs   []string
	Name      string
	Args      []string
}

// ParseInvocation splits content into a command name and arguments. ok is false
// for messages without the prefix or without a name.
func ParseInvocation(prefix, content string) (name string, args []string, ok bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(content), prefix)
	if !found {
		return "", nil, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 || rest[0] == ' ' {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

type command struct {
	staffOnly bool
	// bulk commands run to completion even past the handler timeout
	bulk      bool
	usage     string
	run       func(ctx context.Context, inv Invocation) error
}

// Commands dispatches chat commands.
type Commands struct {
	cfg      config.Bot
	platform Platform
	ops      BulkOperations
	logger   *slog.Logger
	metrics  *metrics.Metrics
	table    map[string]command
}

type CommandsOption func(*Commands)

func WithCommandsLogger(logger *slog.Logger) CommandsOption {
	return func(c *Commands) {
		c.logger = logger
	}
}

func WithCommandsMetrics(m *metrics.Metrics) CommandsOption {
	return func(c *Commands) {
		c.metrics = m
	}
}

func NewCommands(cfg config.Bot, platform Platform, ops BulkOperations, opts ...CommandsOption) *Commands {
	c := &Commands{cfg: cfg, platform: platform, ops: ops, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(c)
	}
	c.table = map[string]command{
		"ping":   {run: c.ping},
		"onsite": {staffOnly: true, bulk: true, usage: cfg.CommandPrefix + "onsite <document url>", run: c.onsite},
		"rules":  {staffOnly: true, bulk: true, usage: cfg.CommandPrefix + "rules test|push", run: c.rules},
		"optin":  {staffOnly: true, run: c.optin},
	}
	return c
}

// Handle runs the command named by inv. Unknown commands are ignored and
// reported as not handled.
func (c *Commands) Handle(ctx context.Context, inv Invocation) bool {
	cmd, ok := c.table[inv.Name]
	if !ok {
		return false
	}
	ctx = requestcontext.WithActorID(requestcontext.WithGuildID(ctx, inv.GuildID), inv.AuthorID)
	ctx = requestcontext.WithTime(ctx, time.Now())
	if cmd.bulk {
		ctx = context.WithoutCancel(ctx)
	}

	if cmd.staffOnly && !c.isStaff(ctx, inv) {
		c.logger.WarnContext(ctx, "staff command refused",
			"command", inv.Name,
			"guild_id", inv.GuildID,
			"user_id", inv.AuthorID,
		)
		c.reply(ctx, inv.ChannelID, "Only staff can use that command.")
		c.count(inv.Name, "denied")
		return true
	}

	if err := cmd.run(ctx, inv); err != nil {
		if errors.Is(err, errUsage) {
			c.reply(ctx, inv.ChannelID, "Usage: "+cmd.usage)
			c.count(inv.Name, "usage")
			return true
		}
		c.logger.ErrorContext(ctx, "command failed", "command", inv.Name, "guild_id", inv.GuildID, "error", err)
		c.reply(ctx, inv.ChannelID, FormatError(err))
		c.count(inv.Name, "error")
		return true
	}
	c.count(inv.Name, "ok")
	return true
}

var errUsage = errors.New("usage")

func (c *Commands) ping(ctx context.Context, inv Invocation) error {
	c.reply(ctx, inv.ChannelID, "pong")
	c.logger.InfoContext(ctx, "sent a pong for a ping", "channel_id", inv.ChannelID)
	return nil
}

func (c *Commands) onsite(ctx context.Context, inv Invocation) error {
	if len(inv.Args) != 1 {
		return errUsage
	}
	c.reply(ctx, inv.ChannelID, "Importing attendees, this can take a while...")
	report, err := c.ops.ImportAttendees(ctx, inv.GuildID, inv.Args[0])
	if err != nil {
		return err
	}
	c.reply(ctx, inv.ChannelID, FormatReport(report, c.cfg.OnsiteRole))
	return nil
}

func (c *Commands) rules(ctx context.Context, inv Invocation) error {
	if len(inv.Args) != 1 {
		return errUsage
	}
	mode, err := rules.ParseMode(inv.Args[0])
	if err != nil {
		return errUsage
	}
	outcome, err := c.ops.PublishRules(ctx, inv.GuildID, mode)
	if err != nil {
		return err
	}
	c.reply(ctx, inv.ChannelID, FormatRulesOutcome(outcome))
	return nil
}

func (c *Commands) optin(ctx context.Context, inv Invocation) error {
	role, err := lookupRole(ctx, c.platform, inv.GuildID, c.cfg.OptInRole)
	if err != nil {
		return err
	}
	return c.platform.SendOptInPrompt(ctx, inv.ChannelID, role)
}

func (c *Commands) isStaff(ctx context.Context, inv Invocation) bool {
	names, err := c.platform.RoleNames(ctx, inv.GuildID, inv.RoleIDs)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to resolve author roles", "guild_id", inv.GuildID, "error", err)
		return false
	}
	return c.cfg.IsStaff(names)
}

// reply sends text, split to the platform limit. Failures are logged only.
func (c *Commands) reply(ctx context.Context, channelID, text string) {
	for _, part := range SplitMessage(text, c.cfg.MaxChunkLength) {
		if err := c.platform.SendMessage(ctx, channelID, part); err != nil {
			c.logger.ErrorContext(ctx, "failed to send reply", "channel_id", channelID, "error", err)
			return
		}
	}
}

func (c *Commands) count(name, result string) {
	if c.metrics != nil {
		c.metrics.IncCommand(name, result)
	}
}
