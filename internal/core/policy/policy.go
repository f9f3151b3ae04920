// Package policy holds the role predicates evaluated after the access guard
// has attached an actor to the request context. Every predicate is pure.
package policy

import (
	"context"

	"github.com/venuehub/booking-api/internal/core/domain"
)

// Current returns the attached actor or ErrUnauthenticated.
func Current(ctx context.Context) (domain.Actor, error) {
	actor, ok := domain.ActorFrom(ctx)
	if !ok || actor.ID == "" {
		return domain.Actor{}, domain.ErrUnauthenticated
	}
	return actor, nil
}

// RequireAdmin passes only for administrators.
func RequireAdmin(ctx context.Context) error {
	actor, err := Current(ctx)
	if err != nil {
		return err
	}
	return Admin(actor)
}

func Admin(actor domain.Actor) error {
	if !actor.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}

// RequireProvider passes only for provider tokens.
func RequireProvider(ctx context.Context) error {
	actor, err := Current(ctx)
	if err != nil {
		return err
	}
	return Provider(actor)
}

func Provider(actor domain.Actor) error {
	if !actor.IsProvider() {
		return domain.ErrForbidden
	}
	return nil
}

// RequireUser passes only for user tokens.
func RequireUser(ctx context.Context) error {
	actor, err := Current(ctx)
	if err != nil {
		return err
	}
	return User(actor)
}

func User(actor domain.Actor) error {
	if !actor.IsUser() {
		return domain.ErrForbidden
	}
	return nil
}

// Owner compares a resource's owner key with the acting identity. It must be
// checked before any mutation of the resource.
func Owner(actor domain.Actor, ownerID string) error {
	if ownerID == "" || actor.ID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}

// ProviderApproved checks a freshly loaded provider record. Approval is
// never trusted from the token because it can change after issuance.
func ProviderApproved(p *domain.Provider) error {
	if p == nil {
		return domain.ErrProviderNotFound
	}
	if !p.IsActive {
		return domain.ErrDeactivated
	}
	if !p.IsApproved {
		return domain.ErrNotApproved
	}
	return nil
}
