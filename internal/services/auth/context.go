package auth

import (
	"context"

	"github.com/wdhive/photo-gallery/internal/domain/enums"
	"github.com/wdhive/photo-gallery/internal/domain/model"
)

type identityContextKey string

const identityKey identityContextKey = "auth_identity"

type Identity struct {
	UserID string
	SID    string
	Role   enums.Role
}

// Actor converts the identity into the user snapshot permission checks
// expect. Nil receiver semantics are intentionally not supported; use
// the ok result of IdentityFromContext to model anonymous actors.
func (i Identity) Actor() *model.User {
	return &model.User{ID: i.UserID, Role: i.Role}
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// ActorFromContext returns nil for anonymous requests, matching the
// permission engine's contract.
func ActorFromContext(ctx context.Context) *model.User {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return nil
	}
	return identity.Actor()
}
