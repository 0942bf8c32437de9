package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

type TableBlockInput struct {
	RestaurantID string
	TableID      string
	Date         string
	Time         string
	Reason       string
}

// TableBlockService manages administrative holds on table slots.
type TableBlockService interface {
	Create(ctx context.Context, caller *Caller, in TableBlockInput) (*model.TableBlock, error)
	List(ctx context.Context, restaurantID, date string) ([]model.TableBlock, error)
	Delete(ctx context.Context, id string) error
}

type tableBlockService struct {
	blocks repository.TableBlockRepository
	tables repository.TableRepository
}

func NewTableBlockService(blocks repository.TableBlockRepository, tables repository.TableRepository) TableBlockService {
	return &tableBlockService{blocks: blocks, tables: tables}
}

func (s *tableBlockService) Create(ctx context.Context, caller *Caller, in TableBlockInput) (*model.TableBlock, error) {
	t, err := findTable(ctx, s.tables, in.TableID)
	if err != nil {
		return nil, err
	}
	if t.RestaurantID != in.RestaurantID {
		return nil, ErrTableNotInRestaurant
	}

	b, err := s.blocks.Create(ctx, &model.TableBlock{
		RestaurantID: in.RestaurantID,
		TableID:      in.TableID,
		Date:         in.Date,
		Time:         in.Time,
		Reason:       strings.TrimSpace(in.Reason),
		CreatedBy:    caller.IDPtr(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrBlockExists
		}
		return nil, err
	}
	return b, nil
}

func (s *tableBlockService) List(ctx context.Context, restaurantID, date string) ([]model.TableBlock, error) {
	return s.blocks.List(ctx, restaurantID, date)
}

func (s *tableBlockService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.blocks.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBlockNotFound
		}
		return err
	}
	return nil
}
