package service

import (
	"context"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

type AvailabilityQuery struct {
	Region       model.Region
	RestaurantID string
	Date         string
	Time         string
	Adults       int
	Children     int
}

type AvailableTable struct {
	TableID     string          `json:"tableId"`
	TableNumber int             `json:"tableNumber"`
	Capacity    int             `json:"capacity"`
	Type        model.TableType `json:"type"`
}

type AvailableRestaurant struct {
	RestaurantID   string           `json:"restaurantId"`
	RestaurantName string           `json:"restaurantName"`
	Tables         []AvailableTable `json:"tables"`
}

type AvailabilityResult struct {
	Region               model.Region          `json:"region"`
	Date                 string                `json:"date"`
	Time                 string                `json:"time"`
	AvailableRestaurants []AvailableRestaurant `json:"availableRestaurants"`
}

// AvailabilityService answers "which tables can take this party at this slot".
//
// A table is free when it is not in maintenance, fits the party, has no
// occupying booking and no block at the slot.
type AvailabilityService interface {
	Search(ctx context.Context, q AvailabilityQuery) (*AvailabilityResult, error)
	// Check searches every restaurant for tables seating guests.
	Check(ctx context.Context, date, time string, guests int) ([]model.Table, error)
}

type availabilityService struct {
	restaurants repository.RestaurantRepository
	tables      repository.TableRepository
	bookings    repository.BookingRepository
	blocks      repository.TableBlockRepository
}

func NewAvailabilityService(
	restaurants repository.RestaurantRepository,
	tables repository.TableRepository,
	bookings repository.BookingRepository,
	blocks repository.TableBlockRepository,
) AvailabilityService {
	return &availabilityService{restaurants: restaurants, tables: tables, bookings: bookings, blocks: blocks}
}

func (s *availabilityService) Search(ctx context.Context, q AvailabilityQuery) (*AvailabilityResult, error) {
	if !q.Region.Valid() {
		return nil, ErrInvalidRegion
	}

	var restaurants []model.Restaurant
	if q.RestaurantID != "" {
		r, err := findRestaurant(ctx, s.restaurants, q.RestaurantID)
		if err != nil {
			return nil, err
		}
		if r.Region != q.Region {
			return nil, ErrRestaurantNotInRegion
		}
		restaurants = []model.Restaurant{*r}
	} else {
		var err error
		if restaurants, err = s.restaurants.List(ctx, q.Region); err != nil {
			return nil, err
		}
	}

	res := &AvailabilityResult{
		Region:               q.Region,
		Date:                 q.Date,
		Time:                 q.Time,
		AvailableRestaurants: []AvailableRestaurant{},
	}
	if len(restaurants) == 0 {
		return res, nil
	}

	ids := make([]string, len(restaurants))
	for i, r := range restaurants {
		ids[i] = r.ID
	}
	free, err := s.freeTables(ctx, repository.TableFilter{RestaurantIDs: ids, MinCapacity: q.Adults + q.Children}, q.Date, q.Time)
	if err != nil {
		return nil, err
	}

	byRestaurant := make(map[string][]AvailableTable)
	for _, t := range free {
		byRestaurant[t.RestaurantID] = append(byRestaurant[t.RestaurantID], AvailableTable{
			TableID:     t.ID,
			TableNumber: t.TableNumber,
			Capacity:    t.Capacity,
			Type:        t.Type,
		})
	}
	for _, r := range restaurants {
		if tables := byRestaurant[r.ID]; len(tables) > 0 {
			res.AvailableRestaurants = append(res.AvailableRestaurants, AvailableRestaurant{
				RestaurantID:   r.ID,
				RestaurantName: r.Name,
				Tables:         tables,
			})
		}
	}
	return res, nil
}

func (s *availabilityService) Check(ctx context.Context, date, time string, guests int) ([]model.Table, error) {
	if guests < 1 {
		return nil, ErrPartySize
	}
	return s.freeTables(ctx, repository.TableFilter{MinCapacity: guests}, date, time)
}

func (s *availabilityService) freeTables(ctx context.Context, f repository.TableFilter, date, time string) ([]model.Table, error) {
	tables, err := s.tables.ListBookable(ctx, f)
	if err != nil {
		return nil, err
	}
	occupied, err := s.bookings.OccupiedTableIDs(ctx, date, time)
	if err != nil {
		return nil, err
	}
	blocked, err := s.blocks.BlockedTableIDs(ctx, date, time)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(occupied)+len(blocked))
	for _, id := range occupied {
		taken[id] = struct{}{}
	}
	for _, id := range blocked {
		taken[id] = struct{}{}
	}

	out := make([]model.Table, 0, len(tables))
	for _, t := range tables {
		if _, ok := taken[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out, nil
}
