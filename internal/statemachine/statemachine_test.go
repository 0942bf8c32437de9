package statemachine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restoapi/internal/model"
)

func TestCanTransitionBooking(t *testing.T) {
	tests := []struct {
		name    string
		from    model.BookingStatus
		to      model.BookingStatus
		actor   Actor
		wantErr bool
	}{
		{"staff confirms pending", model.BookingPending, model.BookingConfirmed, ActorStaff, false},
		{"staff seats confirmed", model.BookingConfirmed, model.BookingSeated, ActorStaff, false},
		{"staff completes seated", model.BookingSeated, model.BookingCompleted, ActorStaff, false},
		{"customer cancels pending", model.BookingPending, model.BookingCancelled, ActorCustomer, false},
		{"customer cancels confirmed", model.BookingConfirmed, model.BookingCancelled, ActorCustomer, false},
		{"system marks no show", model.BookingConfirmed, model.BookingNoShow, ActorSystem, false},
		{"customer cannot confirm", model.BookingPending, model.BookingConfirmed, ActorCustomer, true},
		{"cannot skip to seated", model.BookingPending, model.BookingSeated, ActorStaff, true},
		{"cancelled is terminal", model.BookingCancelled, model.BookingPending, ActorStaff, true},
		{"no show is terminal", model.BookingNoShow, model.BookingConfirmed, ActorStaff, true},
		{"customer cannot cancel seated", model.BookingSeated, model.BookingCancelled, ActorCustomer, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransitionBooking(tt.from, tt.to, tt.actor)
			if tt.wantErr {
				var te *TransitionError
				require.True(t, errors.As(err, &te))
				assert.Equal(t, string(tt.from), te.From)
				assert.Equal(t, string(tt.to), te.To)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidBookingTransitionsFrom(t *testing.T) {
	assert.Equal(t,
		[]model.BookingStatus{model.BookingConfirmed, model.BookingCancelled},
		ValidBookingTransitionsFrom(model.BookingPending))
	assert.Equal(t,
		[]model.BookingStatus{model.BookingSeated, model.BookingCancelled, model.BookingNoShow},
		ValidBookingTransitionsFrom(model.BookingConfirmed))
	assert.Empty(t, ValidBookingTransitionsFrom(model.BookingCompleted))
}

func TestTransitionError_Message(t *testing.T) {
	err := CanTransitionBooking(model.BookingCompleted, model.BookingPending, ActorStaff)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none (terminal state)")

	err = CanTransitionBooking(model.BookingPending, model.BookingSeated, ActorStaff)
	assert.Contains(t, err.Error(), "confirmed, cancelled")
}

func TestTableStatusAfter(t *testing.T) {
	s, ok := TableStatusAfter(model.BookingPending, model.BookingConfirmed)
	assert.True(t, ok)
	assert.Equal(t, model.TableReserved, s)

	s, ok = TableStatusAfter(model.BookingConfirmed, model.BookingSeated)
	assert.True(t, ok)
	assert.Equal(t, model.TableOccupied, s)

	s, ok = TableStatusAfter(model.BookingSeated, model.BookingCompleted)
	assert.True(t, ok)
	assert.Equal(t, model.TableAvailable, s)

	for _, st := range []model.BookingStatus{model.BookingCancelled, model.BookingNoShow} {
		s, ok = TableStatusAfter(model.BookingConfirmed, st)
		assert.True(t, ok)
		assert.Equal(t, model.TableAvailable, s)
	}

	_, ok = TableStatusAfter(model.BookingPending, model.BookingCancelled)
	assert.False(t, ok, "a pending booking never held the table")

	_, ok = TableStatusAfter("", model.BookingPending)
	assert.False(t, ok)
}

func TestCanTransitionOrder(t *testing.T) {
	assert.NoError(t, CanTransitionOrder(model.OrderPending, model.OrderPreparing, ActorStaff))
	assert.NoError(t, CanTransitionOrder(model.OrderPending, model.OrderCompleted, ActorStaff))
	assert.NoError(t, CanTransitionOrder(model.OrderServed, model.OrderCompleted, ActorStaff))
	assert.Error(t, CanTransitionOrder(model.OrderCompleted, model.OrderPending, ActorStaff))
	assert.Error(t, CanTransitionOrder(model.OrderPreparing, model.OrderCompleted, ActorStaff))
	assert.Equal(t,
		[]model.OrderStatus{model.OrderPreparing, model.OrderCompleted},
		ValidOrderTransitionsFrom(model.OrderPending))
}
