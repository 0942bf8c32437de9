package statemachine

import "restoapi/internal/model"

var bookingMachine = newMachine([]transition[model.BookingStatus]{
	{From: model.BookingPending, To: model.BookingConfirmed, Actor: ActorStaff},
	{From: model.BookingPending, To: model.BookingCancelled, Actor: ActorStaff},
	{From: model.BookingPending, To: model.BookingCancelled, Actor: ActorCustomer},
	// losing side of a slot conflict
	{From: model.BookingPending, To: model.BookingCancelled, Actor: ActorSystem},

	{From: model.BookingConfirmed, To: model.BookingSeated, Actor: ActorStaff},
	{From: model.BookingConfirmed, To: model.BookingCancelled, Actor: ActorStaff},
	{From: model.BookingConfirmed, To: model.BookingCancelled, Actor: ActorCustomer},
	{From: model.BookingConfirmed, To: model.BookingNoShow, Actor: ActorStaff},
	{From: model.BookingConfirmed, To: model.BookingNoShow, Actor: ActorSystem},

	{From: model.BookingSeated, To: model.BookingCompleted, Actor: ActorStaff},
})

// CanTransitionBooking returns a *TransitionError when actor may not move a booking from -> to.
func CanTransitionBooking(from, to model.BookingStatus, actor Actor) error {
	return bookingMachine.check(from, to, actor)
}

// ValidBookingTransitionsFrom lists the statuses reachable from status by any actor.
func ValidBookingTransitionsFrom(status model.BookingStatus) []model.BookingStatus {
	return bookingMachine.validFrom(status)
}

// TableStatusAfter returns the table status implied by a booking moving from -> to.
// ok is false when the move does not touch the table. A table is only released
// by a booking that was holding it (confirmed or seated).
func TableStatusAfter(from, to model.BookingStatus) (status model.TableStatus, ok bool) {
	switch to {
	case model.BookingConfirmed:
		return model.TableReserved, true
	case model.BookingSeated:
		return model.TableOccupied, true
	case model.BookingCompleted, model.BookingCancelled, model.BookingNoShow:
		if from == model.BookingConfirmed || from == model.BookingSeated {
			return model.TableAvailable, true
		}
	}
	return "", false
}
