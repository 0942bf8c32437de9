package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"restoapi/internal/model"
	"restoapi/internal/service"
)

type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) CreateForBooking(ctx context.Context, caller *service.Caller, bookingID string, in service.FeedbackInput) (*model.Feedback, error) {
	args := m.Called(ctx, caller, bookingID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feedback), args.Error(1)
}

func (m *MockFeedbackService) CreateForOrder(ctx context.Context, caller *service.Caller, orderID string, in service.FeedbackInput) (*model.Feedback, error) {
	args := m.Called(ctx, caller, orderID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feedback), args.Error(1)
}

func (m *MockFeedbackService) List(ctx context.Context, q service.FeedbackQuery) ([]model.Feedback, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feedback), args.Error(1)
}

func (m *MockFeedbackService) Update(ctx context.Context, caller *service.Caller, id string, p service.FeedbackPatch) (*model.Feedback, error) {
	args := m.Called(ctx, caller, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feedback), args.Error(1)
}

func (m *MockFeedbackService) Delete(ctx context.Context, caller *service.Caller, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockFeedbackService) Stats(ctx context.Context) (*model.FeedbackStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FeedbackStats), args.Error(1)
}

func (m *MockFeedbackService) TopRestaurants(ctx context.Context) ([]model.RestaurantRating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RestaurantRating), args.Error(1)
}
