package model

import "time"

// MenuItem is a dish of the shared catalog.
type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURLs   []string  `json:"imageUrl"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedBy   *string   `json:"createdBy,omitempty"`
	UpdatedBy   *string   `json:"updatedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MenuCategory is one group of the full menu listing.
type MenuCategory struct {
	Category MenuCategoryRef `json:"category"`
	Items    []MenuItem      `json:"items"`
}

type MenuCategoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
