package utils

import (
	"context"

	"movie-review/internal/data/entity"
)

type contextKey string

const IdentityKey contextKey = "identity"

// SetIdentityContext attaches the verified caller identity
func SetIdentityContext(ctx context.Context, identity entity.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentityFromContext returns the identity attached by the auth gate
func GetIdentityFromContext(ctx context.Context) (entity.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(entity.Identity)
	if !ok || identity.UID == "" {
		return entity.Identity{}, false
	}
	return identity, true
}
