package ports

import (
	"context"
	"io"

	"github.com/venuehub/booking-api/internal/core/domain"
)

// CreateVenueInput carries the owner-supplied fields of a new venue.
type CreateVenueInput struct {
	Name        string
	Description string
	Capacity    domain.Capacity
	Address     domain.Address
	Facilities  domain.Facilities
	Images      []domain.VenueImage
	BasePrice   float64
}

// UploadedImage is one file from a multipart venue image upload.
type UploadedImage struct {
	Field    string
	Filename string
	Caption  string
	Primary  bool
	Body     io.Reader
}

// VenueService defines use-case operations for venues.
type VenueService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateVenueInput) (*domain.Venue, error)
	Get(ctx context.Context, id string) (*domain.Venue, error)
	ListPublic(ctx context.Context, filter domain.VenueFilter) (domain.Page[*domain.Venue], error)
	ListMine(ctx context.Context, actor domain.Actor, status string, page, limit int) (domain.Page[*domain.Venue], error)
	Update(ctx context.Context, actor domain.Actor, id string, update domain.VenueUpdate) (*domain.Venue, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	ToggleStatus(ctx context.Context, actor domain.Actor, id string) (*domain.Venue, error)
	UploadImages(ctx context.Context, actor domain.Actor, id string, files []UploadedImage) (*domain.Venue, error)
	RemoveImage(ctx context.Context, actor domain.Actor, id, imageID string) (*domain.Venue, error)
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	Create(ctx context.Context, actor domain.Actor, c domain.Category) (*domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, active *bool) ([]*domain.Category, error)
	SetActive(ctx context.Context, actor domain.Actor, id string, active bool) (*domain.Category, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// StoredFile describes a file accepted by the upload pipeline.
type StoredFile struct {
	Path        string
	ContentType string
	Size        int64
	Width       int
	Height      int
}

// FileStore validates, transcodes and persists uploads.
type FileStore interface {
	Save(ctx context.Context, field, dir, filename string, body io.Reader) (*StoredFile, error)
	Remove(path string) error
}
