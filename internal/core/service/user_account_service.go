package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/venuehub/booking-api/internal/core/domain"
	"github.com/venuehub/booking-api/internal/core/policy"
	"github.com/venuehub/booking-api/internal/core/ports"
)

// UserAccountService serves the signed-in user's own account and the admin
// user directory.
type UserAccountService struct {
	users       ports.UserRepository
	hasher      ports.PasswordHasher
	tokens      ports.TokenIssuer
	revocations ports.RevocationStore
	tokenTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

func NewUserAccountService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	revocations ports.RevocationStore,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *UserAccountService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &UserAccountService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		tokenTTL:    tokenTTL,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *UserAccountService) Profile(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	if err := policy.User(actor); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, actor.ID)
}

func (s *UserAccountService) UpdateProfile(ctx context.Context, actor domain.Actor, update domain.UserUpdate) (*domain.User, error) {
	if err := policy.User(actor); err != nil {
		return nil, err
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	if update.Email != nil || update.Phone != nil {
		var email, phone string
		if update.Email != nil {
			email = *update.Email
		}
		if update.Phone != nil {
			phone = *update.Phone
		}
		taken, err := s.users.ExistsByEmailOrPhone(ctx, email, phone, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		if taken {
			return nil, domain.ErrDuplicateIdentity
		}
	}

	user, err := s.users.Update(ctx, actor.ID, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", actor.ID).Msg("profile updated")
	return user, nil
}

// ChangePassword re-hashes the password, revokes the presenting token and every
// token issued before the change, and returns a fresh one.
func (s *UserAccountService) ChangePassword(ctx context.Context, actor domain.Actor, current, next string) (string, error) {
	if err := policy.User(actor); err != nil {
		return "", err
	}
	if err := domain.ValidatePasswordChange(current, next); err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return "", err
	}
	if !s.hasher.Verify(current, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return "", fmt.Errorf("change password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return "", fmt.Errorf("change password: %w", err)
	}

	if err := s.revokeActor(ctx, user.ID, s.now().UTC()); err != nil {
		return "", fmt.Errorf("change password: %w", err)
	}
	if err := s.revokeToken(ctx, actor.Claims); err != nil {
		return "", fmt.Errorf("change password: %w", err)
	}

	token, err := s.tokens.Issue(domain.Claims{ActorID: user.ID, Kind: domain.KindUser, Email: user.Email}, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("change password: issue token: %w", err)
	}
	s.logger.Info().Str("user_id", user.ID).Msg("password changed")
	return token, nil
}

// DeleteAccount requires the password again before removing the account.
func (s *UserAccountService) DeleteAccount(ctx context.Context, actor domain.Actor, password string) error {
	if err := policy.User(actor); err != nil {
		return err
	}
	if password == "" {
		return domain.NewValidationError("password is required")
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	if err := s.revokeActor(ctx, user.ID, s.now().UTC()); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("revoke tokens after account deletion")
	}
	if err := s.revokeToken(ctx, actor.Claims); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("revoke token after account deletion")
	}
	s.logger.Info().Str("user_id", user.ID).Msg("account deleted")
	return nil
}

func (s *UserAccountService) List(ctx context.Context, actor domain.Actor, search string, page, limit int) (domain.Page[*domain.User], error) {
	if err := policy.Admin(actor); err != nil {
		return domain.Page[*domain.User]{}, err
	}
	page, limit = domain.NormalizePage(page, limit)
	users, total, err := s.users.List(ctx, search, page, limit)
	if err != nil {
		return domain.Page[*domain.User]{}, fmt.Errorf("list users: %w", err)
	}
	return domain.NewPage(users, total, page, limit), nil
}

func (s *UserAccountService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	if err := policy.Admin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserAccountService) revokeActor(ctx context.Context, id string, at time.Time) error {
	if s.revocations == nil {
		return nil
	}
	return s.revocations.RevokeActor(ctx, id, at)
}

func (s *UserAccountService) revokeToken(ctx context.Context, claims domain.Claims) error {
	if s.revocations == nil || claims.TokenID == "" {
		return nil
	}
	return s.revocations.RevokeToken(ctx, claims.TokenID, claims.ExpiresAt)
}
