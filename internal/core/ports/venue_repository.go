package ports

import (
	"context"

	"github.com/venuehub/booking-api/internal/core/domain"
)

// VenueRepository defines persistence operations for venues.
type VenueRepository interface {
	Create(ctx context.Context, v *domain.Venue) error
	FindByID(ctx context.Context, id string) (*domain.Venue, error)
	// List returns a page of venues matching filter and the total count.
	List(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, int64, error)
	// Replace overwrites the stored venue with v (matched by v.ID).
	Replace(ctx context.Context, v *domain.Venue) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, active *bool) ([]*domain.Category, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
