package handler

import (
	"github.com/gofiber/fiber/v2"

	"restoapi/internal/service"
)

type createFeedbackRequest struct {
	BookingID string   `json:"bookingId" validate:"required,uuid"`
	Rating    int      `json:"rating" validate:"required,min=1,max=5"`
	Comment   string   `json:"comment" validate:"max=2000"`
	Images    []string `json:"images" validate:"omitempty,dive,required"`
}

type feedbackPatchRequest struct {
	Rating  *int     `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string  `json:"comment" validate:"omitempty,max=2000"`
	Images  []string `json:"images" validate:"omitempty,dive,required"`
}

type feedbackListQuery struct {
	Rating       int    `query:"rating" validate:"omitempty,min=1,max=5"`
	Search       string `query:"search" validate:"max=100"`
	RestaurantID string `query:"restaurantId" validate:"omitempty,uuid"`
}

// CreateFeedback rates a completed booking.
func CreateFeedback(svc service.FeedbackService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		var req createFeedbackRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		fb, err := svc.CreateForBooking(c.UserContext(), cl, req.BookingID, service.FeedbackInput{
			Rating:  req.Rating,
			Comment: req.Comment,
			Images:  req.Images,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fb)
	}
}

func ListFeedback(svc service.FeedbackService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q feedbackListQuery
		if err := bindQuery(c, &q); err != nil {
			return respondError(c, err)
		}
		list, err := svc.List(c.UserContext(), service.FeedbackQuery{
			Rating:       q.Rating,
			Search:       q.Search,
			RestaurantID: q.RestaurantID,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	}
}

func UpdateFeedback(svc service.FeedbackService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		var req feedbackPatchRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		fb, err := svc.Update(c.UserContext(), cl, id, service.FeedbackPatch{
			Rating:  req.Rating,
			Comment: req.Comment,
			Images:  req.Images,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fb)
	}
}

func DeleteFeedback(svc service.FeedbackService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), cl, id); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Feedback deleted"})
	}
}

func FeedbackStats(svc service.FeedbackService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Stats(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(st)
	}
}

func TopRestaurants(svc service.FeedbackService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.TopRestaurants(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	}
}
