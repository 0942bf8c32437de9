package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

type FeedbackInput struct {
	Rating  int
	Comment string
	Images  []string
}

type FeedbackPatch struct {
	Rating  *int
	Comment *string
	Images  []string
}

type FeedbackQuery struct {
	Rating       int
	Search       string
	RestaurantID string
}

type FeedbackService interface {
	// CreateForBooking requires a completed booking made by the caller.
	CreateForBooking(ctx context.Context, caller *Caller, bookingID string, in FeedbackInput) (*model.Feedback, error)
	// CreateForOrder allows one feedback per order, by its owner.
	CreateForOrder(ctx context.Context, caller *Caller, orderID string, in FeedbackInput) (*model.Feedback, error)
	List(ctx context.Context, q FeedbackQuery) ([]model.Feedback, error)
	Update(ctx context.Context, caller *Caller, id string, p FeedbackPatch) (*model.Feedback, error)
	Delete(ctx context.Context, caller *Caller, id string) error
	Stats(ctx context.Context) (*model.FeedbackStats, error)
	TopRestaurants(ctx context.Context) ([]model.RestaurantRating, error)
}

type feedbackService struct {
	feedback repository.FeedbackRepository
	bookings repository.BookingRepository
	orders   repository.OrderRepository
}

func NewFeedbackService(feedback repository.FeedbackRepository, bookings repository.BookingRepository, orders repository.OrderRepository) FeedbackService {
	return &feedbackService{feedback: feedback, bookings: bookings, orders: orders}
}

func validRating(r int) bool { return r >= 1 && r <= 5 }

func (s *feedbackService) CreateForBooking(ctx context.Context, caller *Caller, bookingID string, in FeedbackInput) (*model.Feedback, error) {
	if !validRating(in.Rating) {
		return nil, ErrInvalidRating
	}
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFinished
		}
		return nil, err
	}
	if b.Status != model.BookingCompleted {
		return nil, ErrBookingNotFinished
	}
	sameEmail := b.CustomerEmail != "" && strings.EqualFold(caller.Email, b.CustomerEmail)
	if !caller.IsStaff() && !caller.owns(b.CreatedBy) && !sameEmail {
		return nil, ErrForbidden
	}

	restaurantID := b.RestaurantID
	return s.feedback.Create(ctx, &model.Feedback{
		BookingID:    &b.ID,
		RestaurantID: &restaurantID,
		UserID:       caller.UserID,
		Rating:       in.Rating,
		Comment:      strings.TrimSpace(in.Comment),
		Images:       nonNilStrings(in.Images),
	})
}

func (s *feedbackService) CreateForOrder(ctx context.Context, caller *Caller, orderID string, in FeedbackInput) (*model.Feedback, error) {
	if !validRating(in.Rating) {
		return nil, ErrInvalidRating
	}
	o, err := findOrder(ctx, s.orders, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != caller.UserID {
		return nil, ErrOrderNotFound
	}

	f, err := s.feedback.Create(ctx, &model.Feedback{
		OrderID:      &o.ID,
		RestaurantID: o.RestaurantID,
		UserID:       caller.UserID,
		Rating:       in.Rating,
		Comment:      strings.TrimSpace(in.Comment),
		Images:       nonNilStrings(in.Images),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrFeedbackExists
		}
		return nil, err
	}
	return f, nil
}

func (s *feedbackService) List(ctx context.Context, q FeedbackQuery) ([]model.Feedback, error) {
	return s.feedback.List(ctx, repository.FeedbackFilter{
		Rating:       q.Rating,
		Search:       strings.TrimSpace(q.Search),
		RestaurantID: q.RestaurantID,
	})
}

func (s *feedbackService) find(ctx context.Context, caller *Caller, id string) (*model.Feedback, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	f, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	if !caller.IsStaff() && (caller == nil || f.UserID != caller.UserID) {
		return nil, ErrForbidden
	}
	return f, nil
}

func (s *feedbackService) Update(ctx context.Context, caller *Caller, id string, p FeedbackPatch) (*model.Feedback, error) {
	f, err := s.find(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if p.Rating != nil {
		if !validRating(*p.Rating) {
			return nil, ErrInvalidRating
		}
		f.Rating = *p.Rating
	}
	if p.Comment != nil {
		f.Comment = strings.TrimSpace(*p.Comment)
	}
	if p.Images != nil {
		f.Images = p.Images
	}
	out, err := s.feedback.Update(ctx, f)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *feedbackService) Delete(ctx context.Context, caller *Caller, id string) error {
	if _, err := s.find(ctx, caller, id); err != nil {
		return err
	}
	if err := s.feedback.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFeedbackNotFound
		}
		return err
	}
	return nil
}

func (s *feedbackService) Stats(ctx context.Context) (*model.FeedbackStats, error) {
	counts, err := s.feedback.RatingCounts(ctx)
	if err != nil {
		return nil, err
	}
	total, sum := 0, 0
	for rating, n := range counts {
		total += n
		sum += rating * n
	}
	avg := 0.0
	if total > 0 {
		avg = math.Round(float64(sum)/float64(total)*100) / 100
	}
	return &model.FeedbackStats{TotalFeedbacks: total, AverageRating: avg, RatingCounts: counts}, nil
}

func (s *feedbackService) TopRestaurants(ctx context.Context) ([]model.RestaurantRating, error) {
	return s.feedback.TopRestaurants(ctx, 5)
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
