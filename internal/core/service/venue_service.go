package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/policy"
	"github.com/venuehub/booking-api/internal/core/ports"
)

// UploadsPrefix is the public URL prefix under which stored files are served.
const UploadsPrefix = "/uploads/"

var venueSortFields = map[string]struct{}{
	"createdAt":     {},
	"basePrice":     {},
	"averageRating": {},
	"name":          {},
}

type VenueService struct {
	venues    ports.VenueRepository
	offerings ports.OfferingRepository
	providers ports.ProviderRepository
	files     ports.FileStore
	logger    zerolog.Logger
}

// NewVenueService wires the venue use cases. offerings may be nil; when set,
// deleting a venue also deletes its offerings.
func NewVenueService(
	venues ports.VenueRepository,
	offerings ports.OfferingRepository,
	providers ports.ProviderRepository,
	files ports.FileStore,
	logger zerolog.Logger,
) *VenueService {
	return &VenueService{venues: venues, offerings: offerings, providers: providers, files: files, logger: logger}
}

// Create re-reads the provider record: approval is never taken from the
// token, which may predate an admin decision.
func (s *VenueService) Create(ctx context.Context, actor domain.Actor, input ports.CreateVenueInput) (*domain.Venue, error) {
	if err := policy.Provider(actor); err != nil {
		return nil, err
	}
	provider, err := s.providers.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := policy.ProviderApproved(provider); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	venue := &domain.Venue{
		ProviderID:  provider.ID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Capacity:    input.Capacity,
		Address:     input.Address,
		Facilities:  input.Facilities,
		Images:      withImageIDs(input.Images),
		BasePrice:   input.BasePrice,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	venue.EnsurePrimaryImage()
	if err := venue.Validate(); err != nil {
		return nil, err
	}

	if err := s.venues.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	s.logger.Info().Str("venue_id", venue.ID).Str("provider_id", provider.ID).Msg("venue created")
	return venue, nil
}

func (s *VenueService) Get(ctx context.Context, id string) (*domain.Venue, error) {
	return s.venues.FindByID(ctx, id)
}

// ListPublic returns active venues only, whatever the caller asked for.
func (s *VenueService) ListPublic(ctx context.Context, filter domain.VenueFilter) (domain.Page[*domain.Venue], error) {
	active := true
	filter.Active = &active
	filter.ProviderID = ""
	if _, ok := venueSortFields[filter.SortBy]; !ok {
		filter.SortBy, filter.SortDesc = "createdAt", true
	}
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)

	venues, total, err := s.venues.List(ctx, filter)
	if err != nil {
		return domain.Page[*domain.Venue]{}, fmt.Errorf("list venues: %w", err)
	}
	return domain.NewPage(venues, total, filter.Page, filter.Limit), nil
}

// ListMine lists the provider's own venues. status is "active", "inactive"
// or anything else for all.
func (s *VenueService) ListMine(ctx context.Context, actor domain.Actor, status string, page, limit int) (domain.Page[*domain.Venue], error) {
	if err := policy.Provider(actor); err != nil {
		return domain.Page[*domain.Venue]{}, err
	}
	filter := domain.VenueFilter{ProviderID: actor.ID, SortBy: "createdAt", SortDesc: true}
	switch status {
	case "active":
		filter.Active = boolRef(true)
	case "inactive":
		filter.Active = boolRef(false)
	}
	filter.Page, filter.Limit = domain.NormalizePage(page, limit)

	venues, total, err := s.venues.List(ctx, filter)
	if err != nil {
		return domain.Page[*domain.Venue]{}, fmt.Errorf("list my venues: %w", err)
	}
	return domain.NewPage(venues, total, filter.Page, filter.Limit), nil
}

func (s *VenueService) Update(ctx context.Context, actor domain.Actor, id string, update domain.VenueUpdate) (*domain.Venue, error) {
	venue, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	previous := venue.Images
	if update.Images != nil {
		update.Images = withImageIDs(update.Images)
	}
	update.Apply(venue)
	if err := venue.Validate(); err != nil {
		return nil, err
	}
	venue.UpdatedAt = time.Now().UTC()
	if err := s.venues.Replace(ctx, venue); err != nil {
		return nil, fmt.Errorf("update venue: %w", err)
	}
	if update.Images != nil {
		s.removeDropped(previous, venue.Images)
	}
	return venue, nil
}

func (s *VenueService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	venue, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.venues.Delete(ctx, venue.ID); err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	if s.offerings != nil {
		n, err := s.offerings.DeleteByVenue(ctx, venue.ID)
		if err != nil {
			s.logger.Error().Err(err).Str("venue_id", venue.ID).Msg("delete venue offerings")
		} else if n > 0 {
			s.logger.Info().Str("venue_id", venue.ID).Int64("count", n).Msg("venue offerings deleted")
		}
	}
	for _, img := range venue.Images {
		s.removeFile(img.URL)
	}
	s.logger.Info().Str("venue_id", venue.ID).Str("provider_id", actor.ID).Msg("venue deleted")
	return nil
}

func (s *VenueService) ToggleStatus(ctx context.Context, actor domain.Actor, id string) (*domain.Venue, error) {
	venue, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	venue.IsActive = !venue.IsActive
	venue.UpdatedAt = time.Now().UTC()
	if err := s.venues.Replace(ctx, venue); err != nil {
		return nil, fmt.Errorf("toggle venue: %w", err)
	}
	return venue, nil
}

// UploadImages stores each file through the upload pipeline and attaches the
// results. If any file is rejected or the venue cannot be saved, every file
// written by this call is removed.
func (s *VenueService) UploadImages(ctx context.Context, actor domain.Actor, id string, files []ports.UploadedImage) (*domain.Venue, error) {
	if len(files) == 0 {
		return nil, domain.ErrImagesRequired
	}
	venue, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	images := make([]domain.VenueImage, 0, len(files))
	rollback := func() {
		for _, img := range images {
			s.removeFile(img.URL)
		}
	}
	for _, f := range files {
		stored, err := s.files.Save(ctx, f.Field, path.Join("venues", venue.ID), f.Filename, f.Body)
		if err != nil {
			rollback()
			return nil, err
		}
		images = append(images, domain.VenueImage{
			ID:        uuid.NewString(),
			URL:       UploadsPrefix + stored.Path,
			Caption:   strings.TrimSpace(f.Caption),
			IsPrimary: f.Primary,
		})
	}

	if err := venue.AddImages(images); err != nil {
		rollback()
		return nil, err
	}
	if err := venue.Validate(); err != nil {
		rollback()
		return nil, err
	}
	venue.UpdatedAt = time.Now().UTC()
	if err := s.venues.Replace(ctx, venue); err != nil {
		rollback()
		return nil, fmt.Errorf("upload venue images: %w", err)
	}
	return venue, nil
}

func (s *VenueService) RemoveImage(ctx context.Context, actor domain.Actor, id, imageID string) (*domain.Venue, error) {
	venue, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	removed, err := venue.RemoveImage(imageID)
	if err != nil {
		return nil, err
	}
	venue.UpdatedAt = time.Now().UTC()
	if err := s.venues.Replace(ctx, venue); err != nil {
		return nil, fmt.Errorf("remove venue image: %w", err)
	}
	s.removeFile(removed.URL)
	return venue, nil
}

// owned loads a venue and applies the ownership check before any mutation.
func (s *VenueService) owned(ctx context.Context, actor domain.Actor, id string) (*domain.Venue, error) {
	if err := policy.Provider(actor); err != nil {
		return nil, err
	}
	venue, err := s.venues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Owner(actor, venue.ProviderID); err != nil {
		s.logger.Warn().Str("venue_id", id).Str("provider_id", actor.ID).Msg("venue ownership mismatch")
		return nil, err
	}
	return venue, nil
}

// removeFile deletes a locally stored upload. External URLs are ignored.
func (s *VenueService) removeFile(url string) {
	if s.files == nil || !strings.HasPrefix(url, UploadsPrefix) {
		return
	}
	if err := s.files.Remove(strings.TrimPrefix(url, UploadsPrefix)); err != nil {
		s.logger.Warn().Err(err).Str("url", url).Msg("remove stored file")
	}
}

// removeDropped deletes stored files referenced by before but not by after.
func (s *VenueService) removeDropped(before, after []domain.VenueImage) {
	kept := make(map[string]struct{}, len(after))
	for _, img := range after {
		kept[img.URL] = struct{}{}
	}
	for _, img := range before {
		if _, ok := kept[img.URL]; !ok {
			s.removeFile(img.URL)
		}
	}
}

func withImageIDs(images []domain.VenueImage) []domain.VenueImage {
	out := make([]domain.VenueImage, len(images))
	for i, img := range images {
		if img.ID == "" {
			img.ID = uuid.NewString()
		}
		img.URL = strings.TrimSpace(img.URL)
		out[i] = img
	}
	return out
}

func boolRef(b bool) *bool { return &b }
