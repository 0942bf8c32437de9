package handler

import (
	"github.com/gofiber/fiber/v2"

	"restoapi/internal/model"
	"restoapi/internal/service"
)

type createBookingRequest struct {
	RestaurantID  string `json:"restaurantId" validate:"required,uuid"`
	TableID       string `json:"tableId" validate:"omitempty,uuid"`
	Date          string `json:"date" validate:"required,ymd"`
	Time          string `json:"time" validate:"required,hhmm"`
	Adults        int    `json:"adults" validate:"min=0,max=100"`
	Children      int    `json:"children" validate:"min=0,max=100"`
	Note          string `json:"note" validate:"max=1000"`
	CustomerName  string `json:"customerName" validate:"required,max=200"`
	CustomerPhone string `json:"customerPhone" validate:"required,max=30"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
}

type bookingListQuery struct {
	RestaurantID string              `query:"restaurantId" validate:"omitempty,uuid"`
	Date         string              `query:"date" validate:"omitempty,ymd"`
	Status       model.BookingStatus `query:"status" validate:"omitempty,oneof=pending confirmed seated completed cancelled no_show"`
	Page         int                 `query:"page" validate:"omitempty,min=1"`
	Limit        int                 `query:"limit" validate:"omitempty,min=1,max=100"`
}

type assignTableRequest struct {
	TableID string `json:"tableId" validate:"required,uuid"`
}

type bookingStatusRequest struct {
	Status model.BookingStatus `json:"status" validate:"required,oneof=pending confirmed seated completed cancelled no_show"`
	Note   string              `json:"note" validate:"max=1000"`
}

// CreateBooking godoc
// @Summary  Request a reservation
// @Description Anonymous requests are accepted; a bearer token records the creator.
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    body body createBookingRequest true "booking"
// @Success  201 {object} model.Booking
// @Failure  409 {object} errorPayload
// @Router   /bookings [post]
func CreateBooking(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createBookingRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		b, err := svc.Create(c.UserContext(), caller(c), service.BookingInput{
			RestaurantID:  req.RestaurantID,
			TableID:       req.TableID,
			Date:          req.Date,
			Time:          req.Time,
			Adults:        req.Adults,
			Children:      req.Children,
			Note:          req.Note,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

func ListBookings(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q bookingListQuery
		if err := bindQuery(c, &q); err != nil {
			return respondError(c, err)
		}
		res, err := svc.List(c.UserContext(), service.BookingListQuery{
			RestaurantID: q.RestaurantID,
			Date:         q.Date,
			Status:       q.Status,
			Page:         q.Page,
			Limit:        q.Limit,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func MyBookings(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		list, err := svc.Mine(c.UserContext(), cl)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	}
}

func GetBooking(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		b, err := svc.Get(c.UserContext(), caller(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(b)
	}
}

func AssignBookingTable(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req assignTableRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		b, err := svc.AssignTable(c.UserContext(), caller(c), id, req.TableID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(b)
	}
}

// UpdateBookingStatus godoc
// @Summary  Move a booking through its lifecycle
// @Description Invalid transitions answer 422 with valid_next_states.
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    id   path string true "booking id"
// @Param    body body bookingStatusRequest true "target status"
// @Success  200 {object} model.Booking
// @Failure  422 {object} errorPayload
// @Router   /bookings/{id}/status [put]
func UpdateBookingStatus(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req bookingStatusRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		b, err := svc.UpdateStatus(c.UserContext(), caller(c), id, req.Status, req.Note)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(b)
	}
}

func CancelBooking(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		b, err := svc.Cancel(c.UserContext(), cl, id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(b)
	}
}

func BookingHistory(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		h, err := svc.History(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(h)
	}
}
