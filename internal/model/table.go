package model

import "time"

type TableType string

const (
	TableTypeNormal TableType = "normal"
	TableTypeVIP    TableType = "vip"
)

// TableStatus is the live floor state of a table.
//
// reserved and occupied are only ever written by booking transitions;
// staff may toggle available and maintenance by hand.
type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableReserved    TableStatus = "reserved"
	TableOccupied    TableStatus = "occupied"
	TableMaintenance TableStatus = "maintenance"
)

// Table is a physical table of a restaurant. TableNumber is unique per restaurant.
type Table struct {
	ID           string      `json:"id"`
	RestaurantID string      `json:"restaurantId"`
	TableNumber  int         `json:"tableNumber"`
	Capacity     int         `json:"capacity"`
	Type         TableType   `json:"type"`
	Status       TableStatus `json:"status"`
	CreatedBy    *string     `json:"createdBy,omitempty"`
	UpdatedBy    *string     `json:"updatedBy,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Fits reports whether a party of the given size can sit at the table.
// A party of zero means "any size".
func (t Table) Fits(party int) bool {
	return party <= 0 || t.Capacity >= party
}

// TableBlock is an administrative hold on a table for one date/time slot.
type TableBlock struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	TableID      string    `json:"tableId"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Reason       string    `json:"reason"`
	CreatedBy    *string   `json:"createdBy,omitempty"`
	UpdatedBy    *string   `json:"updatedBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
