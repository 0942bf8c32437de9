package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restoapi/internal/model"
)

type MockTableBlockRepository struct {
	mock.Mock
}

func (m *MockTableBlockRepository) Create(ctx context.Context, b *model.TableBlock) (*model.TableBlock, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TableBlock), args.Error(1)
}

func (m *MockTableBlockRepository) List(ctx context.Context, restaurantID string, date string) ([]model.TableBlock, error) {
	args := m.Called(ctx, restaurantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TableBlock), args.Error(1)
}

func (m *MockTableBlockRepository) Exists(ctx context.Context, tableID string, date string, time string) (bool, error) {
	args := m.Called(ctx, tableID, date, time)
	return args.Bool(0), args.Error(1)
}

func (m *MockTableBlockRepository) BlockedTableIDs(ctx context.Context, date string, time string) ([]string, error) {
	args := m.Called(ctx, date, time)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTableBlockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
