package ports

import (
	"context"
	"time"

	"github.com/venuehub/booking-api/internal/core/domain"
)

// UserSession is the result of a successful user register or login.
type UserSession struct {
	User  *domain.User
	Token string
}

// ProviderSession is the result of a successful provider register or login.
type ProviderSession struct {
	Provider *domain.Provider
	Token    string
}

// AdminSeed describes the bootstrap administrator created at startup.
type AdminSeed struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// AuthService registers and authenticates both actor kinds.
type AuthService interface {
	RegisterUser(ctx context.Context, reg domain.UserRegistration) (*UserSession, error)
	LoginUser(ctx context.Context, email, password string) (*UserSession, error)
	RegisterProvider(ctx context.Context, reg domain.ProviderRegistration) (*ProviderSession, error)
	LoginProvider(ctx context.Context, email, password string) (*ProviderSession, error)
	Logout(ctx context.Context, claims domain.Claims) error
	EnsureAdmin(ctx context.Context, seed AdminSeed) error
}

// PasswordHasher is a one-way salted hash with constant-time verification.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Verify(raw, digest string) bool
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(claims domain.Claims, ttl time.Duration) (string, error)
}

// TokenVerifier decodes bearer tokens. Failures are domain.ErrTokenExpired
// or domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (domain.Claims, error)
}

// RevocationStore tracks tokens invalidated before their expiry.
type RevocationStore interface {
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error
	RevokeActor(ctx context.Context, actorID string, at time.Time) error
	IsRevoked(ctx context.Context, claims domain.Claims) (bool, error)
}

// Notifier delivers best-effort notifications. Implementations must not block.
type Notifier interface {
	Notify(n domain.Notification)
}
