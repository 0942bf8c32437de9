package handler

import (
	"github.com/gofiber/fiber/v2"

	"restoapi/internal/service"
)

type tableBlockRequest struct {
	RestaurantID string `json:"restaurantId" validate:"required,uuid"`
	TableID      string `json:"tableId" validate:"required,uuid"`
	Date         string `json:"date" validate:"required,ymd"`
	Time         string `json:"time" validate:"required,hhmm"`
	Reason       string `json:"reason" validate:"max=500"`
}

type tableBlockListQuery struct {
	RestaurantID string `query:"restaurantId" validate:"required,uuid"`
	Date         string `query:"date" validate:"omitempty,ymd"`
}

func CreateTableBlock(svc service.TableBlockService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req tableBlockRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		b, err := svc.Create(c.UserContext(), caller(c), service.TableBlockInput{
			RestaurantID: req.RestaurantID,
			TableID:      req.TableID,
			Date:         req.Date,
			Time:         req.Time,
			Reason:       req.Reason,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

func ListTableBlocks(svc service.TableBlockService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q tableBlockListQuery
		if err := bindQuery(c, &q); err != nil {
			return respondError(c, err)
		}
		list, err := svc.List(c.UserContext(), q.RestaurantID, q.Date)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	}
}

func DeleteTableBlock(svc service.TableBlockService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Block removed"})
	}
}
