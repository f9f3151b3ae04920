package ports

import (
	"context"

	"github.com/venuehub/booking-api/internal/core/domain"
)

// OfferingRepository defines persistence operations for venue offerings.
type OfferingRepository interface {
	Create(ctx context.Context, o *domain.Offering) error
	FindByID(ctx context.Context, id string) (*domain.Offering, error)
	// List returns a page of offerings, newest first, and the total count.
	List(ctx context.Context, filter domain.OfferingFilter) ([]*domain.Offering, int64, error)
	Replace(ctx context.Context, o *domain.Offering) error
	Delete(ctx context.Context, id string) error
	// DeleteByVenue removes every offering of a venue and reports how many.
	DeleteByVenue(ctx context.Context, venueID string) (int64, error)
}
