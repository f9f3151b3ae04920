package ports

import (
	"context"

	"github.com/venuehub/booking-api/internal/core/domain"
)

// UserAccountService manages a signed-in user's own account plus the admin
// user directory.
type UserAccountService interface {
	Profile(ctx context.Context, actor domain.Actor) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, update domain.UserUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, actor domain.Actor, current, next string) (string, error)
	DeleteAccount(ctx context.Context, actor domain.Actor, password string) error
	List(ctx context.Context, actor domain.Actor, search string, page, limit int) (domain.Page[*domain.User], error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
}

// ProviderAccountService manages provider profiles, the public provider
// catalog and admin approval.
type ProviderAccountService interface {
	Profile(ctx context.Context, actor domain.Actor) (*domain.Provider, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, update domain.ProviderUpdate) (*domain.Provider, error)
	AddDocuments(ctx context.Context, actor domain.Actor, docs []domain.Document) ([]domain.Document, error)
	DeleteAccount(ctx context.Context, actor domain.Actor, password string) error
	ListPublic(ctx context.Context, filter domain.ProviderFilter) (domain.Page[*domain.Provider], error)
	GetPublic(ctx context.Context, id string) (*domain.Provider, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.ProviderStatus) (*domain.Provider, error)
}
