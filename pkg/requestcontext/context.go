// Package requestcontext provides transport-independent context accessors for
// invocation-scoped values.
//
// Values are set by whichever surface starts an operation (a chat command, a gateway
// event, an ops HTTP request) and read by services for logging and audit:
//
//	ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
//	ctx = requestcontext.WithActorID(ctx, invokingUserID)
//
//	actor := requestcontext.ActorID(ctx)
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey   struct{}
	actorIDKey     struct{}
	guildIDKey     struct{}
	requestTimeKey struct{}
)

// ContextKeyRequestID is exported for tests that need context.WithValue directly.
var ContextKeyRequestID = requestIDKey{}

// RequestID returns the correlation ID for the current invocation, or "".
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return v
	}
	return ""
}

// WithRequestID injects a correlation ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// ActorID returns the platform user ID that triggered the invocation, or "" for
// system-initiated work such as gateway events.
func ActorID(ctx context.Context) string {
	if v, ok := ctx.Value(actorIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithActorID injects the invoking user's platform ID.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey{}, actorID)
}

// GuildID returns the guild the invocation targets, or "".
func GuildID(ctx context.Context) string {
	if v, ok := ctx.Value(guildIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithGuildID injects the target guild ID.
func WithGuildID(ctx context.Context, guildID string) context.Context {
	return context.WithValue(ctx, guildIDKey{}, guildID)
}

// Now returns the injected invocation time, falling back to time.Now.
func Now(ctx context.Context) time.Time {
	if v, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return v
	}
	return time.Now()
}

// WithTime pins the invocation time, mostly for tests.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
