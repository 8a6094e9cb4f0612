package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks can route
// or retain them differently.
type EventCategory string

const (
	// CategoryModeration covers role changes the bot made to members.
	CategoryModeration EventCategory = "moderation"

	// CategorySecurity covers refusals: permission denied by the platform, or an
	// operator surface rejecting a caller.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine bulk runs and publications.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	GuildID   string
	// UserID is the platform ID of the member acted upon, empty for guild-wide actions.
	UserID  string
	RoleID  string
	Action  string
	Outcome string
	Reason  string
	// RunID ties every event of one bulk pass together.
	RunID     string
	RequestID string
	// ActorID is the staff member who triggered the action, empty for gateway events.
	ActorID string
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	// ListByGuild returns up to limit of the guild's most recent events, oldest first.
	ListByGuild(ctx context.Context, guildID string, limit int) ([]Event, error)
}

type AuditEvent string

const (
	EventRoleGranted        AuditEvent = "role_granted"
	EventRoleGrantFailed    AuditEvent = "role_grant_failed"
	EventRoleRemoved        AuditEvent = "role_removed"
	EventRoleRemoveFailed   AuditEvent = "role_remove_failed"
	EventScreeningCompleted AuditEvent = "screening_completed"
	EventScreeningFailed    AuditEvent = "screening_failed"
	EventBulkImportFinished AuditEvent = "bulk_import_finished"
	EventRulesPublished     AuditEvent = "rules_published"
	EventRulesPreviewed     AuditEvent = "rules_previewed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventRoleGranted:        CategoryModeration,
	EventRoleRemoved:        CategoryModeration,
	EventScreeningCompleted: CategoryModeration,

	EventRoleGrantFailed:  CategorySecurity,
	EventRoleRemoveFailed: CategorySecurity,
	EventScreeningFailed:  CategorySecurity,

	EventBulkImportFinished: CategoryOperations,
	EventRulesPublished:     CategoryOperations,
	EventRulesPreviewed:     CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// NewEvent starts an Event for action with its category filled in.
func NewEvent(action AuditEvent) Event {
	return Event{Category: action.Category(), Action: string(action)}
}
