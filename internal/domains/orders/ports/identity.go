package ports

import "context"

// Roles supplied by the external identity provider.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// Actor is the authenticated identity performing an operation. Authentication
// itself happens upstream (gateway/identity provider); the service only
// consumes id and role for authorization checks.
type Actor struct {
	ID   string
	Role string
}

type actorContextKey struct{}

// WithActor stores the actor in the context, typically from transport
// middleware.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the authenticated actor, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(Actor)
	return actor, ok && actor.ID != ""
}
