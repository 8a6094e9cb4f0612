// Package bot connects the moderation services to a Discord gateway session.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Intents the bot needs: member events and message content for prefixed commands.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent

// NewSession creates an unopened session authenticated as a bot.
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord token is required")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = Intents
	session.StateEnabled = true
	session.State.TrackMembers = true
	return session, nil
}

// Bot owns the gateway connection.
type Bot struct {
	session        *discordgo.Session
	events         *Events
	logger         *slog.Logger
	handlerTimeout time.Duration
}

func New(session *discordgo.Session, events *Events, logger *slog.Logger, handlerTimeout time.Duration) *Bot {
	return &Bot{session: session, events: events, logger: logger, handlerTimeout: handlerTimeout}
}

// Run opens the gateway and blocks until ctx is cancelled. Handlers inherit ctx so
// shutdown cancels in-flight platform calls.
func (b *Bot) Run(ctx context.Context) error {
	removers := []func(){
		b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
			b.handle(ctx, func(ctx context.Context) { b.events.OnReady(ctx, r) })
		}),
		b.session.AddHandler(func(s *discordgo.Session, g *discordgo.GuildCreate) {
			// fill the member cache so updates carry their prior state
			if err := s.RequestGuildMembers(g.ID, "", 0, "", false); err != nil {
				b.logger.ErrorContext(ctx, "request guild members failed", "guild_id", g.ID, "error", err)
			}
		}),
		b.session.AddHandler(func(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
			b.handle(ctx, func(ctx context.Context) { b.events.OnMemberJoin(ctx, m) })
		}),
		b.session.AddHandler(func(_ *discordgo.Session, m *discordgo.GuildMemberUpdate) {
			b.handle(ctx, func(ctx context.Context) { b.events.OnMemberUpdate(ctx, m) })
		}),
		b.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
			b.handle(ctx, func(ctx context.Context) { b.events.OnMessage(ctx, m) })
		}),
		b.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
			b.handle(ctx, func(ctx context.Context) { b.events.OnInteraction(ctx, i) })
		}),
	}
	defer func() {
		for _, remove := range removers {
			remove()
		}
	}()

	b.logger.InfoContext(ctx, "bot starting")
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	<-ctx.Done()
	b.logger.Info("closing discord gateway")
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("close discord gateway: %w", err)
	}
	return nil
}

func (b *Bot) handle(ctx context.Context, fn func(context.Context)) {
	ctx, cancel := context.WithTimeout(ctx, b.handlerTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "event handler panicked", "panic", r)
		}
	}()
	fn(ctx)
}
