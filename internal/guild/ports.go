package guild

import "context"

// RoleMutator adds and removes roles. Implementations return errors wrapping
// sentinel.ErrForbidden when the platform refuses for lack of permission.
type RoleMutator interface {
	AddRole(ctx context.Context, member Member, role Role, reason string) error
	RemoveRole(ctx context.Context, member Member, role Role, reason string) error
}

// Messenger posts plain text to a channel.
type Messenger interface {
	SendMessage(ctx context.Context, channelID, text string) error
}

// ChannelPurger deletes a channel's message history.
type ChannelPurger interface {
	Purge(ctx context.Context, channelID string) error
}
