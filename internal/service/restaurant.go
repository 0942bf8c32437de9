package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

type RestaurantInput struct {
	Name    string
	Region  model.Region
	Address string
	Images  []string
}

// RestaurantPatch holds optional fields; nil leaves the stored value.
type RestaurantPatch struct {
	Name    *string
	Region  *model.Region
	Address *string
	Images  []string
}

type RestaurantService interface {
	List(ctx context.Context, region model.Region) ([]model.Restaurant, error)
	Get(ctx context.Context, id string) (*model.Restaurant, error)
	Create(ctx context.Context, caller *Caller, in RestaurantInput) (*model.Restaurant, error)
	Update(ctx context.Context, caller *Caller, id string, p RestaurantPatch) (*model.Restaurant, error)
	Delete(ctx context.Context, id string) error
}

type restaurantService struct {
	repo repository.RestaurantRepository
}

func NewRestaurantService(repo repository.RestaurantRepository) RestaurantService {
	return &restaurantService{repo: repo}
}

func (s *restaurantService) List(ctx context.Context, region model.Region) ([]model.Restaurant, error) {
	if region != "" && !region.Valid() {
		return nil, ErrInvalidRegion
	}
	return s.repo.List(ctx, region)
}

func (s *restaurantService) Get(ctx context.Context, id string) (*model.Restaurant, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *restaurantService) Create(ctx context.Context, caller *Caller, in RestaurantInput) (*model.Restaurant, error) {
	if !in.Region.Valid() {
		return nil, ErrInvalidRegion
	}
	return s.repo.Create(ctx, &model.Restaurant{
		Name:      strings.TrimSpace(in.Name),
		Region:    in.Region,
		Address:   strings.TrimSpace(in.Address),
		Images:    in.Images,
		CreatedBy: caller.IDPtr(),
	})
}

func (s *restaurantService) Update(ctx context.Context, caller *Caller, id string, p RestaurantPatch) (*model.Restaurant, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		r.Name = strings.TrimSpace(*p.Name)
	}
	if p.Region != nil {
		if !p.Region.Valid() {
			return nil, ErrInvalidRegion
		}
		r.Region = *p.Region
	}
	if p.Address != nil {
		r.Address = strings.TrimSpace(*p.Address)
	}
	if p.Images != nil {
		r.Images = p.Images
	}
	r.UpdatedBy = caller.IDPtr()

	out, err := s.repo.Update(ctx, r)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *restaurantService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return err
	}
	return nil
}
