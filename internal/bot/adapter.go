package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"warden/internal/guild"
	"warden/internal/optin"
	"warden/pkg/platform/sentinel"
)

const (
	membersPageSize  = 1000
	messagesPageSize = 100
)

// Adapter translates between discordgo and the guild model. It implements
// guild.RoleMutator, guild.Messenger and guild.ChannelPurger.
type Adapter struct {
	api API
}

func NewAdapter(api API) *Adapter {
	return &Adapter{api: api}
}

func (a *Adapter) AddRole(ctx context.Context, member guild.Member, role guild.Role, reason string) error {
	err := a.api.GuildMemberRoleAdd(member.GuildID, member.ID, role.ID,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(reason))
	return mapError(err, "add role %s to %s", role.Name, member.ID)
}

func (a *Adapter) RemoveRole(ctx context.Context, member guild.Member, role guild.Role, reason string) error {
	err := a.api.GuildMemberRoleRemove(member.GuildID, member.ID, role.ID,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(reason))
	return mapError(err, "remove role %s from %s", role.Name, member.ID)
}

func (a *Adapter) SendMessage(ctx context.Context, channelID, text string) error {
	_, err := a.api.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	return mapError(err, "send message to %s", channelID)
}

// Purge deletes every message in the channel, newest page first.
func (a *Adapter) Purge(ctx context.Context, channelID string) error {
	for {
		page, err := a.api.ChannelMessages(channelID, messagesPageSize, "", "", "", discordgo.WithContext(ctx))
		if err != nil {
			return mapError(err, "list messages in %s", channelID)
		}
		if len(page) == 0 {
			return nil
		}
		for _, msg := range page {
			if err := a.api.ChannelMessageDelete(channelID, msg.ID, discordgo.WithContext(ctx)); err != nil {
				return mapError(err, "delete message %s", msg.ID)
			}
		}
	}
}

// Members pages through the full roster in platform order.
func (a *Adapter) Members(ctx context.Context, guildID string) ([]guild.Member, error) {
	var out []guild.Member
	after := ""
	for {
		page, err := a.api.GuildMembers(guildID, after, membersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, mapError(err, "list members of %s", guildID)
		}
		last := ""
		for _, m := range page {
			if m.User == nil {
				continue
			}
			out = append(out, ConvertMember(guildID, m))
			last = m.User.ID
		}
		// a page with no usable cursor cannot advance
		if len(page) < membersPageSize || last == "" || last == after {
			return out, nil
		}
		after = last
	}
}

// RoleByName finds a role by exact name. A missing role wraps sentinel.ErrNotFound.
func (a *Adapter) RoleByName(ctx context.Context, guildID, name string) (guild.Role, error) {
	roles, err := a.api.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return guild.Role{}, mapError(err, "list roles of %s", guildID)
	}
	for _, r := range roles {
		if r.Name == name {
			return guild.Role{ID: r.ID, Name: r.Name}, nil
		}
	}
	return guild.Role{}, fmt.Errorf("role %q: %w", name, sentinel.ErrNotFound)
}

// RoleNames maps role IDs to names, dropping unknown IDs.
func (a *Adapter) RoleNames(ctx context.Context, guildID string, roleIDs []string) ([]string, error) {
	roles, err := a.api.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapError(err, "list roles of %s", guildID)
	}
	byID := make(map[string]string, len(roles))
	for _, r := range roles {
		byID[r.ID] = r.Name
	}
	names := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// ChannelByName finds a text channel by exact name.
func (a *Adapter) ChannelByName(ctx context.Context, guildID, name string) (string, error) {
	channels, err := a.api.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return "", mapError(err, "list channels of %s", guildID)
	}
	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildText && c.Name == name {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("channel %q: %w", name, sentinel.ErrNotFound)
}

// SendOptInPrompt posts the message carrying the opt-in toggle button.
func (a *Adapter) SendOptInPrompt(ctx context.Context, channelID string, role guild.Role) error {
	_, err := a.api.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("Press the button to toggle the '%s' role. Press again to opt out.", role.Name),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Toggle " + role.Name,
					Style:    discordgo.PrimaryButton,
					CustomID: optin.ButtonID,
				},
			}},
		},
	}, discordgo.WithContext(ctx))
	return mapError(err, "send opt-in prompt to %s", channelID)
}

// RespondEphemeral answers an interaction with a message only the invoker sees.
func (a *Adapter) RespondEphemeral(ctx context.Context, interaction *discordgo.Interaction, text string) error {
	err := a.api.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
	return mapError(err, "respond to interaction %s", interaction.ID)
}

// ConvertMember builds a guild.Member snapshot from a discordgo member.
func ConvertMember(guildID string, m *discordgo.Member) guild.Member {
	if m.GuildID != "" {
		guildID = m.GuildID
	}
	out := guild.Member{
		GuildID: guildID,
		Roles:   append([]string(nil), m.Roles...),
		Pending: m.Pending,
	}
	if m.User != nil {
		out.ID = m.User.ID
		out.Username = m.User.Username
		out.Discriminator = m.User.Discriminator
		out.DisplayName = m.User.GlobalName
	}
	if m.Nick != "" {
		out.DisplayName = m.Nick
	}
	if out.DisplayName == "" {
		out.DisplayName = out.Username
	}
	return out
}

// mapError tags platform refusals with sentinels so callers can classify them.
func mapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	op := fmt.Sprintf(format, args...)
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		switch rest.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("%s: %w: %w", op, sentinel.ErrForbidden, err)
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w: %w", op, sentinel.ErrNotFound, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
