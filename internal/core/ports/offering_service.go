package ports

import (
	"context"

	"github.com/venuehub/booking-api/internal/core/domain"
)

// CreateOfferingInput carries the owner-supplied fields of a new offering.
type CreateOfferingInput struct {
	VenueID     string
	Name        domain.OfferingName
	Description string
	Price       float64
	Duration    string
	Inclusions  []string
}

// OfferingService defines use-case operations for the services catalog.
type OfferingService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateOfferingInput) (*domain.Offering, error)
	Get(ctx context.Context, id string) (*domain.Offering, error)
	ListPublic(ctx context.Context, filter domain.OfferingFilter) (domain.Page[*domain.Offering], error)
	ListByVenue(ctx context.Context, venueID string, active bool) ([]*domain.Offering, error)
	ListMine(ctx context.Context, actor domain.Actor, filter domain.OfferingFilter) (domain.Page[*domain.Offering], error)
	Update(ctx context.Context, actor domain.Actor, id string, update domain.OfferingUpdate) (*domain.Offering, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	ToggleStatus(ctx context.Context, actor domain.Actor, id string) (*domain.Offering, error)
}
