package model

import "time"

// Feedback is a 1..5 rating left after a completed booking or for an order.
type Feedback struct {
	ID           string    `json:"id"`
	BookingID    *string   `json:"bookingId,omitempty"`
	OrderID      *string   `json:"orderId,omitempty"`
	RestaurantID *string   `json:"restaurantId,omitempty"`
	UserID       string    `json:"userId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
