package model

import "time"

// CartItem snapshots a menu item's name and price at the time it was added.
type CartItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Notes      string  `json:"notes,omitempty"`
}

// Cart is the per-user basket. There is exactly one cart per user.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Subtotal is the sum of price times quantity over all items.
func (c Cart) Subtotal() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderServed    OrderStatus = "served"
	OrderCompleted OrderStatus = "completed"
)

// OrderItem is an immutable line of an order.
type OrderItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Notes      string  `json:"notes,omitempty"`
	Total      float64 `json:"total"`
}

// Order is created from a cart checkout.
type Order struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	RestaurantID   *string     `json:"restaurantId,omitempty"`
	RestaurantName string      `json:"restaurantName,omitempty"`
	Items          []OrderItem `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	Discount       float64     `json:"discount"`
	Tax            float64     `json:"tax"`
	Total          float64     `json:"total"`
	Status         OrderStatus `json:"status"`
	CustomerName   string      `json:"customerName,omitempty"`
	TableNumber    string      `json:"tableNumber,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}
