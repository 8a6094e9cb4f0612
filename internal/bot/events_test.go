package bot

//go:generate mockgen -source=events.go -destination=mocks/events-mocks.go -package=mocks ScreeningHandler,OptInToggler

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"warden/internal/bot/mocks"
	"warden/internal/guild"
	"warden/internal/optin"
	"warden/internal/platform/config"
	"warden/internal/screening"
	dErrors "warden/pkg/domain-errors"
	"warden/pkg/platform/sentinel"
)

type EventsSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	platform  *mocks.MockPlatform
	screening *mocks.MockScreeningHandler
	toggler   *mocks.MockOptInToggler
	events    *Events
	role      guild.Role
}

func TestEventsSuite(t *testing.T) {
	suite.Run(t, new(EventsSuite))
}

func (s *EventsSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.platform = mocks.NewMockPlatform(s.ctrl)
	s.screening = mocks.NewMockScreeningHandler(s.ctrl)
	s.toggler = mocks.NewMockOptInToggler(s.ctrl)
	cfg := config.DefaultBot()
	s.events = NewEvents(cfg, s.platform, s.screening, s.toggler, NewCommands(cfg, s.platform, nil), nil)
	s.role = guild.Role{ID: "10", Name: config.DefaultMemberRole}
}

func (s *EventsSuite) TearDownTest() {
	s.ctrl.Finish()
}

func dgMember(pending bool) *discordgo.Member {
	return &discordgo.Member{GuildID: "555", User: &discordgo.User{ID: "42", Username: "alice"}, Pending: pending}
}

func (s *EventsSuite) expectStatus(text string) {
	s.platform.EXPECT().ChannelByName(gomock.Any(), "555", config.DefaultStatusChannel).Return("status", nil)
	s.platform.EXPECT().SendMessage(gomock.Any(), "status", text).Return(nil)
}

func (s *EventsSuite) TestMemberJoin() {
	s.screening.EXPECT().HandleMemberJoin(gomock.Any(), gomock.Any()).Return("Hey! <@42> just joined the server!")
	s.expectStatus("Hey! <@42> just joined the server!")
	s.events.OnMemberJoin(context.Background(), &discordgo.GuildMemberAdd{Member: dgMember(true)})
}

func (s *EventsSuite) TestMemberUpdate() {
	s.Run("screening completion is announced", func() {
		s.platform.EXPECT().RoleByName(gomock.Any(), "555", config.DefaultMemberRole).Return(s.role, nil)
		s.screening.EXPECT().HandleMemberUpdate(gomock.Any(), gomock.Any(), gomock.Any(), s.role).
			DoAndReturn(func(_ context.Context, before, after *guild.Member, _ guild.Role) (screening.Transition, error) {
				s.True(before.Pending)
				s.False(after.Pending)
				return screening.TransitionGranted, nil
			})
		s.expectStatus("<@42> completed screening and was given the 'Guildsman' role!")

		s.events.OnMemberUpdate(context.Background(), &discordgo.GuildMemberUpdate{Member: dgMember(false), BeforeUpdate: dgMember(true)})
	})

	s.Run("forbidden grant is announced", func() {
		s.platform.EXPECT().RoleByName(gomock.Any(), "555", gomock.Any()).Return(s.role, nil)
		s.screening.EXPECT().HandleMemberUpdate(gomock.Any(), gomock.Any(), gomock.Any(), s.role).
			Return(screening.TransitionFailed, dErrors.Wrap(fmt.Errorf("x: %w", sentinel.ErrForbidden), dErrors.CodeForbidden, "no"))
		s.expectStatus("ERROR! Bot got a 'FORBIDDEN' error after trying to grant the 'Guildsman' role to '<@42>'!")

		s.events.OnMemberUpdate(context.Background(), &discordgo.GuildMemberUpdate{Member: dgMember(false), BeforeUpdate: dgMember(true)})
	})

	s.Run("other edges make no calls", func() {
		s.events.OnMemberUpdate(context.Background(), &discordgo.GuildMemberUpdate{Member: dgMember(false)})
		s.events.OnMemberUpdate(context.Background(), &discordgo.GuildMemberUpdate{Member: dgMember(true), BeforeUpdate: dgMember(false)})
		s.events.OnMemberUpdate(context.Background(), &discordgo.GuildMemberUpdate{Member: dgMember(true), BeforeUpdate: dgMember(true)})
	})
}

func (s *EventsSuite) TestMessage() {
	s.Run("dispatches prefixed commands", func() {
		s.platform.EXPECT().SendMessage(gomock.Any(), "ch", "pong").Return(nil)
		s.events.OnMessage(context.Background(), &discordgo.MessageCreate{Message: &discordgo.Message{
			GuildID: "555", ChannelID: "ch", Content: "$ping", Author: &discordgo.User{ID: "7"},
		}})
	})

	s.Run("ignores bots and direct messages", func() {
		s.events.OnMessage(context.Background(), &discordgo.MessageCreate{Message: &discordgo.Message{
			GuildID: "555", ChannelID: "ch", Content: "$ping", Author: &discordgo.User{ID: "8", Bot: true},
		}})
		s.events.OnMessage(context.Background(), &discordgo.MessageCreate{Message: &discordgo.Message{
			ChannelID: "dm", Content: "$ping", Author: &discordgo.User{ID: "7"},
		}})
	})
}

func (s *EventsSuite) TestOptInInteraction() {
	optRole := guild.Role{ID: "30", Name: config.DefaultOptInRole}
	interaction := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionMessageComponent,
		GuildID: "555",
		Member:  dgMember(false),
		Data:    discordgo.MessageComponentInteractionData{CustomID: optin.ButtonID},
	}}

	s.platform.EXPECT().RoleByName(gomock.Any(), "555", config.DefaultOptInRole).Return(optRole, nil)
	s.toggler.EXPECT().Toggle(gomock.Any(), gomock.Any(), optRole).Return(optin.ActionAdded, nil)
	s.platform.EXPECT().RespondEphemeral(gomock.Any(), interaction.Interaction, "You are now subscribed to 'Updates' pings.").Return(nil)

	s.events.OnInteraction(context.Background(), interaction)
}
