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

// ProviderAccountService serves provider self-service, the public provider
// catalog and admin approval.
type ProviderAccountService struct {
	providers   ports.ProviderRepository
	hasher      ports.PasswordHasher
	revocations ports.RevocationStore
	logger      zerolog.Logger
	now         func() time.Time
}

func NewProviderAccountService(
	providers ports.ProviderRepository,
	hasher ports.PasswordHasher,
	revocations ports.RevocationStore,
	logger zerolog.Logger,
) *ProviderAccountService {
	return &ProviderAccountService{
		providers:   providers,
		hasher:      hasher,
		revocations: revocations,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ProviderAccountService) Profile(ctx context.Context, actor domain.Actor) (*domain.Provider, error) {
	if err := policy.Provider(actor); err != nil {
		return nil, err
	}
	return s.providers.FindByID(ctx, actor.ID)
}

func (s *ProviderAccountService) UpdateProfile(ctx context.Context, actor domain.Actor, update domain.ProviderUpdate) (*domain.Provider, error) {
	if err := policy.Provider(actor); err != nil {
		return nil, err
	}
	update.Normalize()
	if err := update.Validate(); err != nil {
		return nil, err
	}

	if update.Phone != nil {
		taken, err := s.providers.ExistsByEmailOrPhone(ctx, "", *update.Phone, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("update provider profile: %w", err)
		}
		if taken {
			return nil, domain.ErrDuplicateIdentity
		}
	}

	provider, err := s.providers.Update(ctx, actor.ID, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("provider_id", actor.ID).Msg("provider profile updated")
	return provider, nil
}

// AddDocuments appends verification documents. New documents start
// unverified.
func (s *ProviderAccountService) AddDocuments(ctx context.Context, actor domain.Actor, docs []domain.Document) ([]domain.Document, error) {
	if err := policy.Provider(actor); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.NewValidationError("documents must contain at least one document")
	}
	var problems []string
	clean := make([]domain.Document, 0, len(docs))
	for i, d := range docs {
		if !d.Type.Valid() {
			problems = append(problems, fmt.Sprintf("documents[%d].type must be one of: license identity other", i))
		}
		url := strings.TrimSpace(d.URL)
		if url == "" {
			problems = append(problems, fmt.Sprintf("documents[%d].url is required", i))
		}
		clean = append(clean, domain.Document{Type: d.Type, URL: url})
	}
	if err := domain.NewValidationError(problems...); err != nil {
		return nil, err
	}
	return s.providers.AddDocuments(ctx, actor.ID, clean)
}

func (s *ProviderAccountService) DeleteAccount(ctx context.Context, actor domain.Actor, password string) error {
	if err := policy.Provider(actor); err != nil {
		return err
	}
	if password == "" {
		return domain.NewValidationError("password is required")
	}
	provider, err := s.providers.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(password, provider.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	if err := s.providers.Delete(ctx, provider.ID); err != nil {
		return err
	}
	if err := s.revokeActor(ctx, provider.ID, s.now().UTC()); err != nil {
		s.logger.Error().Err(err).Str("provider_id", provider.ID).Msg("revoke tokens after account deletion")
	}
	if s.revocations != nil && actor.Claims.TokenID != "" {
		if err := s.revocations.RevokeToken(ctx, actor.Claims.TokenID, actor.Claims.ExpiresAt); err != nil {
			s.logger.Error().Err(err).Str("provider_id", provider.ID).Msg("revoke token after account deletion")
		}
	}
	s.logger.Info().Str("provider_id", provider.ID).Msg("provider account deleted")
	return nil
}

func (s *ProviderAccountService) ListPublic(ctx context.Context, filter domain.ProviderFilter) (domain.Page[*domain.Provider], error) {
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)
	providers, total, err := s.providers.ListApproved(ctx, filter)
	if err != nil {
		return domain.Page[*domain.Provider]{}, fmt.Errorf("list providers: %w", err)
	}
	return domain.NewPage(providers, total, filter.Page, filter.Limit), nil
}

func (s *ProviderAccountService) GetPublic(ctx context.Context, id string) (*domain.Provider, error) {
	return s.providers.FindApproved(ctx, id)
}

// UpdateStatus lets an admin approve, reject, activate or deactivate a
// provider. Deactivation revokes every token issued before it; a login after
// reactivation is unaffected.
func (s *ProviderAccountService) UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.ProviderStatus) (*domain.Provider, error) {
	if err := policy.Admin(actor); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	provider, err := s.providers.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if status.IsActive != nil && !*status.IsActive {
		if err := s.revokeActor(ctx, provider.ID, s.now().UTC()); err != nil {
			return nil, fmt.Errorf("deactivate provider: %w", err)
		}
	}
	s.logger.Info().
		Str("provider_id", provider.ID).
		Str("admin_id", actor.ID).
		Bool("approved", provider.IsApproved).
		Bool("active", provider.IsActive).
		Msg("provider status updated")
	return provider, nil
}

func (s *ProviderAccountService) revokeActor(ctx context.Context, id string, at time.Time) error {
	if s.revocations == nil {
		return nil
	}
	return s.revocations.RevokeActor(ctx, id, at)
}
