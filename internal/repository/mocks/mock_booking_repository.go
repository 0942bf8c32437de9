package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, f repository.BookingFilter, pq repository.PageQuery) (*repository.PageResult[model.Booking], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Booking]), args.Error(1)
}

func (m *MockBookingRepository) SlotTaken(ctx context.Context, tableID string, date string, time string, excludeID string) (bool, error) {
	args := m.Called(ctx, tableID, date, time, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) OccupiedTableIDs(ctx context.Context, date string, time string) ([]string, error) {
	args := m.Called(ctx, date, time)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingRepository) PendingForSlot(ctx context.Context, tableID string, date string, time string, excludeID string) ([]model.Booking, error) {
	args := m.Called(ctx, tableID, date, time, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) ConfirmedOnOrBefore(ctx context.Context, date string) ([]model.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountActiveForTable(ctx context.Context, tableID string) (int, error) {
	args := m.Called(ctx, tableID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) CountCreatedBetween(ctx context.Context, restaurantID string, from time.Time, to time.Time, statuses []model.BookingStatus) (int, error) {
	args := m.Called(ctx, restaurantID, from, to, statuses)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, from model.BookingStatus, to model.BookingStatus, updatedBy *string) (*model.Booking, error) {
	args := m.Called(ctx, id, from, to, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) AssignTable(ctx context.Context, id string, tableID string, updatedBy *string) (*model.Booking, error) {
	args := m.Called(ctx, id, tableID, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) AddHistory(ctx context.Context, h *model.BookingStatusChange) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockBookingRepository) ListHistory(ctx context.Context, bookingID string) ([]model.BookingStatusChange, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BookingStatusChange), args.Error(1)
}
