package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restoapi/internal/model"
	"restoapi/internal/service"
)

type MockTableBlockService struct {
	mock.Mock
}

func (m *MockTableBlockService) Create(ctx context.Context, caller *service.Caller, in service.TableBlockInput) (*model.TableBlock, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TableBlock), args.Error(1)
}

func (m *MockTableBlockService) List(ctx context.Context, restaurantID string, date string) ([]model.TableBlock, error) {
	args := m.Called(ctx, restaurantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TableBlock), args.Error(1)
}

func (m *MockTableBlockService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
