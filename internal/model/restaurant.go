package model

import "time"

// Region groups restaurants for listings and availability searches.
type Region string

const (
	RegionNorth   Region = "north"
	RegionCentral Region = "central"
	RegionSouth   Region = "south"
)

// Valid reports whether r is a known region.
func (r Region) Valid() bool {
	switch r {
	case RegionNorth, RegionCentral, RegionSouth:
		return true
	}
	return false
}

// Restaurant is a branch that owns tables and receives bookings.
type Restaurant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Region    Region    `json:"region"`
	Address   string    `json:"address"`
	Images    []string  `json:"images"`
	CreatedBy *string   `json:"createdBy,omitempty"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
