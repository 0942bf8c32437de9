package model

import "time"

// RevenueReport summarises one restaurant over a date range.
type RevenueReport struct {
	RestaurantID  string    `json:"restaurantId"`
	TotalRevenue  float64   `json:"totalRevenue"`
	TotalOrders   int       `json:"totalOrders"`
	TotalBookings int       `json:"totalBookings"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
}

type TopMenuItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

type FeedbackStats struct {
	TotalFeedbacks int         `json:"totalFeedbacks"`
	AverageRating  float64     `json:"averageRating"`
	RatingCounts   map[int]int `json:"ratingCounts"`
}

type RestaurantRating struct {
	RestaurantID   string  `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName"`
	AverageRating  float64 `json:"averageRating"`
	Count          int     `json:"count"`
}
