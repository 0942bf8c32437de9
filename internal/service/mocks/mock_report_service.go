package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restoapi/internal/model"
	"restoapi/internal/service"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Revenue(ctx context.Context, q service.RevenueQuery) (*model.RevenueReport, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RevenueReport), args.Error(1)
}

func (m *MockReportService) TopMenu(ctx context.Context, from string, to string) ([]model.TopMenuItem, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TopMenuItem), args.Error(1)
}

func (m *MockReportService) FeedbackDistribution(ctx context.Context) ([]model.RatingCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RatingCount), args.Error(1)
}
