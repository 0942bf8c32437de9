package service

import (
	"context"
	"sort"
	"time"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

const topMenuLimit = 5

type RevenueQuery struct {
	RestaurantID string
	// Range is one of today, yesterday, week, lastWeek, month, lastMonth, custom.
	Range string
	// From and To are YYYY-MM-DD; To is inclusive. Only used by the custom range.
	From string
	To   string
}

type ReportService interface {
	Revenue(ctx context.Context, q RevenueQuery) (*model.RevenueReport, error)
	// TopMenu ranks menu items by quantity; from/to are optional YYYY-MM-DD bounds.
	TopMenu(ctx context.Context, from, to string) ([]model.TopMenuItem, error)
	FeedbackDistribution(ctx context.Context) ([]model.RatingCount, error)
}

type reportService struct {
	orders   repository.OrderRepository
	bookings repository.BookingRepository
	feedback repository.FeedbackRepository
	loc      *time.Location
	now      func() time.Time
}

func NewReportService(orders repository.OrderRepository, bookings repository.BookingRepository, feedback repository.FeedbackRepository, loc *time.Location) ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{orders: orders, bookings: bookings, feedback: feedback, loc: loc, now: time.Now}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// reportRange resolves a named range into [start, end) in the application time zone.
func (s *reportService) reportRange(name, from, to string) (time.Time, time.Time, error) {
	now := s.now().In(s.loc)
	today := startOfDay(now)

	switch name {
	case "today":
		return today, today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), today, nil
	case "week":
		start := startOfWeek(now)
		return start, start.AddDate(0, 0, 7), nil
	case "lastWeek":
		start := startOfWeek(now).AddDate(0, 0, -7)
		return start, start.AddDate(0, 0, 7), nil
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
		return start, start.AddDate(0, 1, 0), nil
	case "lastMonth":
		end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
		return end.AddDate(0, -1, 0), end, nil
	case "custom":
		start, err := time.ParseInLocation(time.DateOnly, from, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		last, err := time.ParseInLocation(time.DateOnly, to, s.loc)
		if err != nil || last.Before(start) {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		return start, last.AddDate(0, 0, 1), nil
	}
	return time.Time{}, time.Time{}, ErrInvalidRange
}

func (s *reportService) Revenue(ctx context.Context, q RevenueQuery) (*model.RevenueReport, error) {
	if q.RestaurantID == "" {
		return nil, ErrRestaurantRequired
	}
	start, end, err := s.reportRange(q.Range, q.From, q.To)
	if err != nil {
		return nil, err
	}

	total, count, err := s.orders.Revenue(ctx, q.RestaurantID, start, end)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.CountCreatedBetween(ctx, q.RestaurantID, start, end,
		[]model.BookingStatus{model.BookingConfirmed, model.BookingCompleted})
	if err != nil {
		return nil, err
	}

	return &model.RevenueReport{
		RestaurantID:  q.RestaurantID,
		TotalRevenue:  total,
		TotalOrders:   count,
		TotalBookings: bookings,
		StartDate:     start,
		EndDate:       end,
	}, nil
}

func (s *reportService) TopMenu(ctx context.Context, from, to string) ([]model.TopMenuItem, error) {
	var lo, hi *time.Time
	if from != "" {
		t, err := time.ParseInLocation(time.DateOnly, from, s.loc)
		if err != nil {
			return nil, ErrInvalidRange
		}
		lo = &t
	}
	if to != "" {
		t, err := time.ParseInLocation(time.DateOnly, to, s.loc)
		if err != nil {
			return nil, ErrInvalidRange
		}
		t = t.AddDate(0, 0, 1)
		hi = &t
	}
	if lo != nil && hi != nil && !hi.After(*lo) {
		return nil, ErrInvalidRange
	}
	return s.orders.TopMenuItems(ctx, lo, hi, topMenuLimit)
}

func (s *reportService) FeedbackDistribution(ctx context.Context) ([]model.RatingCount, error) {
	counts, err := s.feedback.RatingCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.RatingCount, 0, len(counts))
	for rating, n := range counts {
		out = append(out, model.RatingCount{Rating: rating, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out, nil
}
