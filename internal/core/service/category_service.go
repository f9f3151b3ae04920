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

type CategoryService struct {
	repo   ports.CategoryRepository
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// Create adds a category. The repository's unique index reports
// ErrCategoryExists for a name already in use.
func (s *CategoryService) Create(ctx context.Context, actor domain.Actor, c domain.Category) (*domain.Category, error) {
	if err := policy.Admin(actor); err != nil {
		return nil, err
	}
	c.Name = domain.CategoryName(strings.ToLower(strings.TrimSpace(string(c.Name))))
	c.Description = strings.TrimSpace(c.Description)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c.ID = ""
	c.IsActive = true
	c.CreatedAt, c.UpdatedAt = now, now
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	s.logger.Info().Str("category_id", c.ID).Str("name", string(c.Name)).Msg("category created")
	return &c, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context, active *bool) ([]*domain.Category, error) {
	categories, err := s.repo.List(ctx, active)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) SetActive(ctx context.Context, actor domain.Actor, id string, active bool) (*domain.Category, error) {
	if err := policy.Admin(actor); err != nil {
		return nil, err
	}
	return s.repo.SetActive(ctx, id, active)
}

func (s *CategoryService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := policy.Admin(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}
