package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restoapi/internal/model"
	"restoapi/internal/service"
)

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) Search(ctx context.Context, q service.AvailabilityQuery) (*service.AvailabilityResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AvailabilityResult), args.Error(1)
}

func (m *MockAvailabilityService) Check(ctx context.Context, date string, time string, guests int) ([]model.Table, error) {
	args := m.Called(ctx, date, time, guests)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Table), args.Error(1)
}
