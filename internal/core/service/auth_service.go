package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/ports"
	"github.com/venuehub/booking-api/internal/pkg/metrics"
)

// AuthService implements registration, login and logout for users and
// providers.
type AuthService struct {
	users       ports.UserRepository
	providers   ports.ProviderRepository
	hasher      ports.PasswordHasher
	tokens      ports.TokenIssuer
	revocations ports.RevocationStore
	notifier    ports.Notifier
	tokenTTL    time.Duration
	log         zerolog.Logger
}

// AuthDeps groups AuthService collaborators. Revocations and Notifier are
// optional.
type AuthDeps struct {
	Users       ports.UserRepository
	Providers   ports.ProviderRepository
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenIssuer
	Revocations ports.RevocationStore
	Notifier    ports.Notifier
	TokenTTL    time.Duration
	Logger      zerolog.Logger
}

func NewAuthService(deps AuthDeps) *AuthService {
	ttl := deps.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{
		users:       deps.Users,
		providers:   deps.Providers,
		hasher:      deps.Hasher,
		tokens:      deps.Tokens,
		revocations: deps.Revocations,
		notifier:    deps.Notifier,
		tokenTTL:    ttl,
		log:         deps.Logger,
	}
}

func (s *AuthService) RegisterUser(ctx context.Context, reg domain.UserRegistration) (*ports.UserSession, error) {
	reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmailOrPhone(ctx, reg.Email, reg.Phone, "")
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	if exists {
		metrics.Registrations.WithLabelValues(string(domain.KindUser), "duplicate").Inc()
		return nil, domain.ErrDuplicateIdentity
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("register user: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		FirstName:    reg.FirstName,
		MiddleName:   reg.MiddleName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		Phone:        reg.Phone,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			metrics.Registrations.WithLabelValues(string(domain.KindUser), "duplicate").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	token, err := s.issue(created.ID, domain.KindUser, created.Email)
	if err != nil {
		return nil, err
	}

	metrics.Registrations.WithLabelValues(string(domain.KindUser), "created").Inc()
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return &ports.UserSession{User: created, Token: token}, nil
}

func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*ports.UserSession, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError(missingCredentials(email, password)...)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("login user: %w", err)
	}
	digest := ""
	if user != nil {
		digest = user.PasswordHash
	}
	if !s.hasher.Verify(password, digest) || user == nil {
		metrics.Logins.WithLabelValues(string(domain.KindUser), "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issue(user.ID, domain.KindUser, user.Email)
	if err != nil {
		return nil, err
	}
	metrics.Logins.WithLabelValues(string(domain.KindUser), "ok").Inc()
	return &ports.UserSession{User: user, Token: token}, nil
}

func (s *AuthService) RegisterProvider(ctx context.Context, reg domain.ProviderRegistration) (*ports.ProviderSession, error) {
	reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.providers.ExistsByEmailOrPhone(ctx, reg.Email, reg.Phone, "")
	if err != nil {
		return nil, fmt.Errorf("register provider: %w", err)
	}
	if exists {
		metrics.Registrations.WithLabelValues(string(domain.KindProvider), "duplicate").Inc()
		return nil, domain.ErrDuplicateIdentity
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("register provider: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.providers.Create(ctx, &domain.Provider{
		FirstName:    reg.FirstName,
		MiddleName:   reg.MiddleName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		Phone:        reg.Phone,
		PasswordHash: hash,
		BusinessName: reg.BusinessName,
		BusinessType: reg.BusinessType,
		Description:  reg.Description,
		Website:      reg.Website,
		Address:      reg.Address,
		ProfileImage: reg.ProfileImage,
		CoverImage:   reg.CoverImage,
		IsApproved:   false,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			metrics.Registrations.WithLabelValues(string(domain.KindProvider), "duplicate").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("register provider: %w", err)
	}

	token, err := s.issue(created.ID, domain.KindProvider, created.Email)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(domain.Notification{
			Kind:         domain.NotificationProviderRegistered,
			ActorID:      created.ID,
			Email:        created.Email,
			Name:         created.FirstName + " " + created.LastName,
			BusinessName: created.BusinessName,
			BusinessType: created.BusinessType,
			City:         created.Address.City,
			CreatedAt:    now,
		})
	}

	metrics.Registrations.WithLabelValues(string(domain.KindProvider), "created").Inc()
	s.log.Info().Str("provider_id", created.ID).Msg("provider registered, pending approval")
	return &ports.ProviderSession{Provider: created, Token: token}, nil
}

// LoginProvider checks credentials first, then the active flag, then
// approval. Only a fully entitled provider receives a token.
func (s *AuthService) LoginProvider(ctx context.Context, email, password string) (*ports.ProviderSession, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError(missingCredentials(email, password)...)
	}

	provider, err := s.providers.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrProviderNotFound) {
		return nil, fmt.Errorf("login provider: %w", err)
	}
	digest := ""
	if provider != nil {
		digest = provider.PasswordHash
	}
	if !s.hasher.Verify(password, digest) || provider == nil {
		metrics.Logins.WithLabelValues(string(domain.KindProvider), "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !provider.IsActive {
		metrics.Logins.WithLabelValues(string(domain.KindProvider), "deactivated").Inc()
		return nil, domain.ErrDeactivated
	}
	if !provider.IsApproved {
		metrics.Logins.WithLabelValues(string(domain.KindProvider), "not_approved").Inc()
		return nil, domain.ErrNotApproved
	}

	token, err := s.issue(provider.ID, domain.KindProvider, provider.Email)
	if err != nil {
		return nil, err
	}
	metrics.Logins.WithLabelValues(string(domain.KindProvider), "ok").Inc()
	return &ports.ProviderSession{Provider: provider, Token: token}, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims domain.Claims) error {
	if s.revocations == nil {
		return nil
	}
	if claims.TokenID == "" {
		return domain.ErrInvalidToken
	}
	if err := s.revocations.RevokeToken(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// EnsureAdmin creates the bootstrap administrator when no account exists for
// seed.Email. An existing account is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, seed ports.AdminSeed) error {
	email := domain.NormalizeEmail(seed.Email)
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("ensure admin: %w", err)
	}

	reg := domain.UserRegistration{Identity: domain.Identity{
		FirstName: seed.FirstName,
		LastName:  seed.LastName,
		Email:     email,
		Phone:     seed.Phone,
		Password:  seed.Password,
	}}
	reg.Normalize()
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		Phone:        reg.Phone,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("bootstrap admin created")
	return nil
}

func (s *AuthService) issue(actorID string, kind domain.ActorKind, email string) (string, error) {
	token, err := s.tokens.Issue(domain.Claims{ActorID: actorID, Kind: kind, Email: email}, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func missingCredentials(email, password string) []string {
	var out []string
	if email == "" {
		out = append(out, "email is required")
	}
	if password == "" {
		out = append(out, "password is required")
	}
	return out
}
