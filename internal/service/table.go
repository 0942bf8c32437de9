package service

import (
	"context"
	"database/sql"
	"errors"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

type TableInput struct {
	RestaurantID string
	TableNumber  int
	Capacity     int
	Type         model.TableType
}

type TablePatch struct {
	TableNumber *int
	Capacity    *int
	Type        *model.TableType
}

type TableService interface {
	List(ctx context.Context, restaurantID string) ([]model.Table, error)
	Get(ctx context.Context, id string) (*model.Table, error)
	Create(ctx context.Context, caller *Caller, in TableInput) (*model.Table, error)
	Update(ctx context.Context, caller *Caller, id string, p TablePatch) (*model.Table, error)
	// SetStatus is the manual floor toggle. Only available and maintenance are accepted.
	SetStatus(ctx context.Context, caller *Caller, id string, status model.TableStatus) (*model.Table, error)
	// Delete refuses tables that still have pending, confirmed or seated bookings.
	Delete(ctx context.Context, id string) error
}

type tableService struct {
	tables      repository.TableRepository
	restaurants repository.RestaurantRepository
	bookings    repository.BookingRepository
}

func NewTableService(tables repository.TableRepository, restaurants repository.RestaurantRepository, bookings repository.BookingRepository) TableService {
	return &tableService{tables: tables, restaurants: restaurants, bookings: bookings}
}

func (s *tableService) List(ctx context.Context, restaurantID string) ([]model.Table, error) {
	return s.tables.ListByRestaurant(ctx, restaurantID)
}

func (s *tableService) Get(ctx context.Context, id string) (*model.Table, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	return findTable(ctx, s.tables, id)
}

func findTable(ctx context.Context, repo repository.TableRepository, id string) (*model.Table, error) {
	t, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return t, nil
}

func findRestaurant(ctx context.Context, repo repository.RestaurantRepository, id string) (*model.Restaurant, error) {
	r, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *tableService) Create(ctx context.Context, caller *Caller, in TableInput) (*model.Table, error) {
	if _, err := findRestaurant(ctx, s.restaurants, in.RestaurantID); err != nil {
		return nil, err
	}
	if in.Type == "" {
		in.Type = model.TableTypeNormal
	}
	t, err := s.tables.Create(ctx, &model.Table{
		RestaurantID: in.RestaurantID,
		TableNumber:  in.TableNumber,
		Capacity:     in.Capacity,
		Type:         in.Type,
		Status:       model.TableAvailable,
		CreatedBy:    caller.IDPtr(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTableNumberTaken
		}
		return nil, err
	}
	return t, nil
}

func (s *tableService) Update(ctx context.Context, caller *Caller, id string, p TablePatch) (*model.Table, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.TableNumber != nil {
		t.TableNumber = *p.TableNumber
	}
	if p.Capacity != nil {
		t.Capacity = *p.Capacity
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	t.UpdatedBy = caller.IDPtr()

	out, err := s.tables.Update(ctx, t)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrTableNumberTaken
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *tableService) SetStatus(ctx context.Context, caller *Caller, id string, status model.TableStatus) (*model.Table, error) {
	if status != model.TableAvailable && status != model.TableMaintenance {
		return nil, ErrManualTableStatus
	}
	t, err := s.tables.UpdateStatus(ctx, id, status, caller.IDPtr())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *tableService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	n, err := s.bookings.CountActiveForTable(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrTableHasBookings
	}
	if err := s.tables.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTableNotFound
		}
		return err
	}
	return nil
}
