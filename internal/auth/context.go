package auth

import (
	"context"

	"github.com/google/uuid"
)

type claimsKey struct{}

// SystemActor is recorded as the actor of audit events that have no
// authenticated caller, such as self-registration.
const SystemActor = "system"

func ContextWithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	c, ok := ClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return c.UserID, true
}

// ActorFromContext names the caller for audit purposes.
func ActorFromContext(ctx context.Context) string {
	if c, ok := ClaimsFromContext(ctx); ok {
		return c.UserID.String()
	}
	return SystemActor
}
