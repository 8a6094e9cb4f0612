// Package guild models the slice of the chat platform the moderation core needs:
// members, roles, and the ports used to mutate them. Adapters in internal/bot
// translate platform objects into these types.
package guild

import "fmt"

// Member is a read-only snapshot of one roster entry. The core never mutates a
// Member; it asks a RoleMutator instead.
type Member struct {
	ID            string
	GuildID       string
	Username      string
	Discriminator string
	DisplayName   string
	Roles         []string
	Pending       bool
}

// HasRole reports whether the member currently holds roleID.
func (m Member) HasRole(roleID string) bool {
	for _, r := range m.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// Mention is the platform's native user mention.
func (m Member) Mention() string {
	return fmt.Sprintf("<@%s>", m.ID)
}

// Label is a human-readable identifier for logs and status messages.
func (m Member) Label() string {
	if m.DisplayName != "" && m.DisplayName != m.Username {
		return fmt.Sprintf("%s (%s)", m.DisplayName, m.Username)
	}
	return m.Username
}

// Role references a guild role.
type Role struct {
	ID   string
	Name string
}

// Mention is the platform's native role mention.
func (r Role) Mention() string {
	return fmt.Sprintf("<@&%s>", r.ID)
}
