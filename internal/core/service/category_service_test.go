package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/venuehub/booking-api/internal/core/domain"
)

type stubCategoryRepo struct {
	items  map[string]*domain.Category
	nextID int
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	for _, existing := range r.items {
		if existing.Name == c.Name {
			return domain.ErrCategoryExists
		}
	}
	r.nextID++
	c.ID = fmt.Sprintf("c%d", r.nextID)
	clone := *c
	r.items[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) List(_ context.Context, active *bool) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.items {
		if active != nil && c.IsActive != *active {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCategoryRepo) SetActive(_ context.Context, id string, active bool) (*domain.Category, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	c.IsActive = active
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.items, id)
	return nil
}

func TestCategoryService(t *testing.T) {
	repo := &stubCategoryRepo{items: map[string]*domain.Category{}}
	svc := NewCategoryService(repo, zerolog.Nop())
	ctx := context.Background()
	admin := domain.Actor{ID: "a1", Kind: domain.KindUser, IsAdmin: true}
	user := domain.Actor{ID: "u1", Kind: domain.KindUser}

	if _, err := svc.Create(ctx, user, domain.Category{Name: "wedding"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Create(ctx, admin, domain.Category{Name: "funeral"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	created, err := svc.Create(ctx, admin, domain.Category{Name: " Wedding ", Description: "Big day"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Name != "wedding" || !created.IsActive {
		t.Fatalf("unexpected category: %+v", created)
	}

	if _, err := svc.Create(ctx, admin, domain.Category{Name: "wedding"}); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}

	off, err := svc.SetActive(ctx, admin, created.ID, false)
	if err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if off.IsActive {
		t.Fatal("category should be inactive")
	}

	active := true
	list, err := svc.List(ctx, &active)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no active categories, got %d", len(list))
	}

	if err := svc.Delete(ctx, user, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, admin, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
