package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingSeated    BookingStatus = "seated"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no_show"
)

// OccupyingBookingStatuses are the statuses that hold a table's slot.
// Cancelled and no-show bookings release it.
var OccupyingBookingStatuses = []BookingStatus{
	BookingPending,
	BookingConfirmed,
	BookingSeated,
	BookingCompleted,
}

// Occupies reports whether a booking in status s holds its table slot.
func (s BookingStatus) Occupies() bool {
	for _, o := range OccupyingBookingStatuses {
		if s == o {
			return true
		}
	}
	return false
}

// Booking is a reservation request for a table slot. TableID may be empty
// until staff assigns a table.
type Booking struct {
	ID            string        `json:"id"`
	RestaurantID  string        `json:"restaurantId"`
	TableID       *string       `json:"tableId"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Adults        int           `json:"adults"`
	Children      int           `json:"children"`
	Note          string        `json:"note,omitempty"`
	CustomerName  string        `json:"customerName"`
	CustomerPhone string        `json:"customerPhone"`
	CustomerEmail string        `json:"customerEmail"`
	Status        BookingStatus `json:"status"`
	CreatedBy     *string       `json:"createdBy,omitempty"`
	UpdatedBy     *string       `json:"updatedBy,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// PartySize is adults plus children.
func (b Booking) PartySize() int {
	return b.Adults + b.Children
}

// SlotStart parses Date and Time in loc.
func (b Booking) SlotStart(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.Time, loc)
}

// BookingStatusChange is one row of a booking's audit trail.
type BookingStatusChange struct {
	ID         string        `json:"id"`
	BookingID  string        `json:"bookingId"`
	FromStatus BookingStatus `json:"fromStatus,omitempty"`
	ToStatus   BookingStatus `json:"toStatus"`
	ChangedBy  *string       `json:"changedBy,omitempty"`
	Actor      string        `json:"actor"`
	Note       string        `json:"note,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}
