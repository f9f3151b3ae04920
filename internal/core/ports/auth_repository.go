package ports

import (
	"context"

	"github.com/venuehub/booking-api/internal/core/domain"
)

// UserRepository persists end-user accounts. Email and phone are unique.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// ExistsByEmailOrPhone checks both identity fields in one query. A
	// non-empty excludeID ignores that record (profile updates).
	ExistsByEmailOrPhone(ctx context.Context, email, phone, excludeID string) (bool, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, search string, page, limit int) ([]*domain.User, int64, error)
	FindAdmins(ctx context.Context) ([]*domain.User, error)
	// FindActor loads the request identity projection (no password hash).
	FindActor(ctx context.Context, id string) (*domain.Actor, error)
}

// ProviderRepository persists venue-provider accounts. Email and phone are
// unique.
type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.Provider) (*domain.Provider, error)
	FindByID(ctx context.Context, id string) (*domain.Provider, error)
	FindByEmail(ctx context.Context, email string) (*domain.Provider, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone, excludeID string) (bool, error)
	Update(ctx context.Context, id string, update domain.ProviderUpdate) (*domain.Provider, error)
	UpdateStatus(ctx context.Context, id string, status domain.ProviderStatus) (*domain.Provider, error)
	AddDocuments(ctx context.Context, id string, docs []domain.Document) ([]domain.Document, error)
	Delete(ctx context.Context, id string) error
	// FindApproved returns a single provider visible in the public catalog.
	FindApproved(ctx context.Context, id string) (*domain.Provider, error)
	ListApproved(ctx context.Context, filter domain.ProviderFilter) ([]*domain.Provider, int64, error)
	FindActor(ctx context.Context, id string) (*domain.Actor, error)
}
