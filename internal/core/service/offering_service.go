package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/policy"
	"github.com/venuehub/booking-api/internal/core/ports"
)

// OfferingService manages the event packages providers sell at their venues.
type OfferingService struct {
	offerings ports.OfferingRepository
	venues    ports.VenueRepository
	logger    zerolog.Logger
}

func NewOfferingService(offerings ports.OfferingRepository, venues ports.VenueRepository, logger zerolog.Logger) *OfferingService {
	return &OfferingService{offerings: offerings, venues: venues, logger: logger}
}

// Create adds an offering to a venue the provider owns.
func (s *OfferingService) Create(ctx context.Context, actor domain.Actor, input ports.CreateOfferingInput) (*domain.Offering, error) {
	if err := policy.Provider(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.VenueID) == "" {
		return nil, domain.NewValidationError("venueId is required")
	}
	venue, err := s.venues.FindByID(ctx, strings.TrimSpace(input.VenueID))
	if err != nil {
		return nil, err
	}
	if err := policy.Owner(actor, venue.ProviderID); err != nil {
		s.logger.Warn().Str("venue_id", venue.ID).Str("provider_id", actor.ID).Msg("offering venue ownership mismatch")
		return nil, err
	}

	now := time.Now().UTC()
	offering := &domain.Offering{
		VenueID:     venue.ID,
		ProviderID:  venue.ProviderID,
		Name:        domain.OfferingName(strings.ToLower(strings.TrimSpace(string(input.Name)))),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Duration:    strings.TrimSpace(input.Duration),
		Inclusions:  domain.CleanInclusions(input.Inclusions),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if offering.Duration == "" {
		offering.Duration = domain.DefaultOfferingDuration
	}
	if err := offering.Validate(); err != nil {
		return nil, err
	}

	if err := s.offerings.Create(ctx, offering); err != nil {
		return nil, fmt.Errorf("create offering: %w", err)
	}
	s.logger.Info().Str("offering_id", offering.ID).Str("venue_id", venue.ID).Msg("offering created")
	return offering, nil
}

func (s *OfferingService) Get(ctx context.Context, id string) (*domain.Offering, error) {
	return s.offerings.FindByID(ctx, id)
}

// ListPublic returns active offerings only.
func (s *OfferingService) ListPublic(ctx context.Context, filter domain.OfferingFilter) (domain.Page[*domain.Offering], error) {
	filter.Active = boolRef(true)
	filter.ProviderID = ""
	return s.list(ctx, filter, "list offerings")
}

// ListByVenue returns every offering of an existing venue with the given
// status, newest first.
func (s *OfferingService) ListByVenue(ctx context.Context, venueID string, active bool) ([]*domain.Offering, error) {
	if _, err := s.venues.FindByID(ctx, venueID); err != nil {
		return nil, err
	}
	offerings, _, err := s.offerings.List(ctx, domain.OfferingFilter{VenueID: venueID, Active: &active})
	if err != nil {
		return nil, fmt.Errorf("list venue offerings: %w", err)
	}
	return offerings, nil
}

// ListMine lists offerings across all of the provider's venues.
func (s *OfferingService) ListMine(ctx context.Context, actor domain.Actor, filter domain.OfferingFilter) (domain.Page[*domain.Offering], error) {
	if err := policy.Provider(actor); err != nil {
		return domain.Page[*domain.Offering]{}, err
	}
	filter.ProviderID = actor.ID
	return s.list(ctx, filter, "list my offerings")
}

func (s *OfferingService) Update(ctx context.Context, actor domain.Actor, id string, update domain.OfferingUpdate) (*domain.Offering, error) {
	if update.Empty() {
		return nil, domain.NewValidationError("at least one field must be provided for update")
	}
	offering, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	update.Apply(offering)
	if err := offering.Validate(); err != nil {
		return nil, err
	}
	offering.UpdatedAt = time.Now().UTC()
	if err := s.offerings.Replace(ctx, offering); err != nil {
		return nil, fmt.Errorf("update offering: %w", err)
	}
	return offering, nil
}

func (s *OfferingService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	offering, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.offerings.Delete(ctx, offering.ID); err != nil {
		return fmt.Errorf("delete offering: %w", err)
	}
	s.logger.Info().Str("offering_id", offering.ID).Str("provider_id", actor.ID).Msg("offering deleted")
	return nil
}

func (s *OfferingService) ToggleStatus(ctx context.Context, actor domain.Actor, id string) (*domain.Offering, error) {
	offering, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	offering.IsActive = !offering.IsActive
	offering.UpdatedAt = time.Now().UTC()
	if err := s.offerings.Replace(ctx, offering); err != nil {
		return nil, fmt.Errorf("toggle offering: %w", err)
	}
	return offering, nil
}

func (s *OfferingService) owned(ctx context.Context, actor domain.Actor, id string) (*domain.Offering, error) {
	if err := policy.Provider(actor); err != nil {
		return nil, err
	}
	offering, err := s.offerings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Owner(actor, offering.ProviderID); err != nil {
		s.logger.Warn().Str("offering_id", id).Str("provider_id", actor.ID).Msg("offering ownership mismatch")
		return nil, err
	}
	return offering, nil
}

func (s *OfferingService) list(ctx context.Context, filter domain.OfferingFilter, op string) (domain.Page[*domain.Offering], error) {
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)
	offerings, total, err := s.offerings.List(ctx, filter)
	if err != nil {
		return domain.Page[*domain.Offering]{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.NewPage(offerings, total, filter.Page, filter.Limit), nil
}
