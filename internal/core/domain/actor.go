package domain

import (
	"context"
	"time"
)

// ActorKind discriminates the two independently authenticated collections.
type ActorKind string

const (
	KindUser     ActorKind = "user"
	KindProvider ActorKind = "provider"
)

// Claims is the decoded content of a bearer token. Exactly one actor kind is
// encoded per token.
type Claims struct {
	ActorID   string
	Kind      ActorKind
	Email     string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Actor is the minimal identity attached to an authenticated request.
type Actor struct {
	ID         string
	Kind       ActorKind
	Email      string
	IsAdmin    bool
	FirstName  string
	LastName   string
	IsActive   bool
	IsApproved bool
	Claims     Claims
}

func (a Actor) IsProvider() bool { return a.Kind == KindProvider }

func (a Actor) IsUser() bool { return a.Kind == KindUser }

type actorKey struct{}

// WithActor returns a child context carrying a copy of actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor attached by the access guard, if any.
func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}

// ActorFromUser builds the request identity for a user record.
func ActorFromUser(u *User) Actor {
	return Actor{
		ID:        u.ID,
		Kind:      KindUser,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  true,
	}
}

// ActorFromProvider builds the request identity for a provider record.
// Providers never carry the admin role.
func ActorFromProvider(p *Provider) Actor {
	return Actor{
		ID:         p.ID,
		Kind:       KindProvider,
		Email:      p.Email,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		IsActive:   p.IsActive,
		IsApproved: p.IsApproved,
	}
}
