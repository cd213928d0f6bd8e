package types

import (
	"context"

	"github.com/google/uuid"
)

type actorKey struct{}

// WithActor returns a copy of ctx carrying the id of the caller.
func WithActor(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, id)
}

// ActorFromContext returns the caller id stored by WithActor, or nil for an
// anonymous request.
func ActorFromContext(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(actorKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return nil
	}
	return &id
}
