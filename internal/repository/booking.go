package repository

import (
	"context"
	"time"

	"restoapi/internal/model"
)

type BookingFilter struct {
	RestaurantID string
	Date         string
	Status       model.BookingStatus
	CreatedBy    string
}

type BookingRepository interface {
	// Create inserts a booking; ErrDuplicate when its table slot is already held.
	Create(ctx context.Context, b *model.Booking) (*model.Booking, error)
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	// List orders by date, time and creation, newest first.
	List(ctx context.Context, f BookingFilter, pq PageQuery) (*PageResult[model.Booking], error)
	// SlotTaken reports whether an occupying booking other than excludeID holds the slot.
	SlotTaken(ctx context.Context, tableID, date, time, excludeID string) (bool, error)
	// OccupiedTableIDs returns the tables held by occupying bookings at the given slot.
	OccupiedTableIDs(ctx context.Context, date, time string) ([]string, error)
	// PendingForSlot returns pending bookings for the slot, excluding excludeID.
	PendingForSlot(ctx context.Context, tableID, date, time, excludeID string) ([]model.Booking, error)
	// ConfirmedOnOrBefore returns confirmed bookings dated on or before date.
	ConfirmedOnOrBefore(ctx context.Context, date string) ([]model.Booking, error)
	// CountActiveForTable counts pending, confirmed and seated bookings of a table.
	CountActiveForTable(ctx context.Context, tableID string) (int, error)
	// CountCreatedBetween counts bookings of a restaurant created in [from, to) with one of statuses.
	CountCreatedBetween(ctx context.Context, restaurantID string, from, to time.Time, statuses []model.BookingStatus) (int, error)
	// UpdateStatus moves a booking from -> to; ErrConflict when it is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus, updatedBy *string) (*model.Booking, error)
	AssignTable(ctx context.Context, id, tableID string, updatedBy *string) (*model.Booking, error)
	AddHistory(ctx context.Context, h *model.BookingStatusChange) error
	ListHistory(ctx context.Context, bookingID string) ([]model.BookingStatusChange, error)
}
