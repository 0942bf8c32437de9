package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

const defaultCategory = "Uncategorized"

type MenuQuery struct {
	Category string
	Query    string
	Page     int
	Limit    int
}

type MenuListResult struct {
	Items      []model.MenuItem `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

type MenuItemInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURLs   []string
	IsAvailable *bool
}

type MenuItemPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	ImageURLs   []string
	IsAvailable *bool
}

type MenuService interface {
	// List returns available items only, sorted by name.
	List(ctx context.Context, q MenuQuery) (*MenuListResult, error)
	Get(ctx context.Context, id string) (*model.MenuItem, error)
	// Full groups every available item by category, categories sorted by name.
	Full(ctx context.Context) ([]model.MenuCategory, error)
	Create(ctx context.Context, caller *Caller, in MenuItemInput) (*model.MenuItem, error)
	Update(ctx context.Context, caller *Caller, id string, p MenuItemPatch) (*model.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

type menuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) MenuService {
	return &menuService{repo: repo}
}

func (s *menuService) List(ctx context.Context, q MenuQuery) (*MenuListResult, error) {
	page, limit, offset := pageQuery(q.Page, q.Limit, 20)
	res, err := s.repo.List(ctx, repository.MenuFilter{
		Category:      strings.TrimSpace(q.Category),
		Query:         strings.TrimSpace(q.Query),
		OnlyAvailable: true,
	}, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &MenuListResult{
		Items:      res.Items,
		Pagination: Pagination{Page: page, Limit: limit, Total: res.Total},
	}, nil
}

func (s *menuService) Get(ctx context.Context, id string) (*model.MenuItem, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	return findMenuItem(ctx, s.repo, id)
}

func findMenuItem(ctx context.Context, repo repository.MenuRepository, id string) (*model.MenuItem, error) {
	m, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *menuService) Full(ctx context.Context) ([]model.MenuCategory, error) {
	items, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	// items arrive ordered by category, so groups are contiguous
	out := make([]model.MenuCategory, 0)
	for _, it := range items {
		if n := len(out); n == 0 || out[n-1].Category.Name != it.Category {
			out = append(out, model.MenuCategory{
				Category: model.MenuCategoryRef{ID: it.Category, Name: it.Category},
				Items:    []model.MenuItem{},
			})
		}
		last := &out[len(out)-1]
		last.Items = append(last.Items, it)
	}
	return out, nil
}

func (s *menuService) Create(ctx context.Context, caller *Caller, in MenuItemInput) (*model.MenuItem, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultCategory
	}
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	return s.repo.Create(ctx, &model.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    category,
		ImageURLs:   in.ImageURLs,
		IsAvailable: available,
		CreatedBy:   caller.IDPtr(),
	})
}

func (s *menuService) Update(ctx context.Context, caller *Caller, id string, p MenuItemPatch) (*model.MenuItem, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		m.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		m.Description = strings.TrimSpace(*p.Description)
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Category != nil {
		if c := strings.TrimSpace(*p.Category); c != "" {
			m.Category = c
		}
	}
	if p.ImageURLs != nil {
		m.ImageURLs = p.ImageURLs
	}
	if p.IsAvailable != nil {
		m.IsAvailable = *p.IsAvailable
	}
	m.UpdatedBy = caller.IDPtr()

	out, err := s.repo.Update(ctx, m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *menuService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMenuItemNotFound
		}
		return err
	}
	return nil
}
