package handler

import (
	"github.com/gofiber/fiber/v2"

	"restoapi/internal/model"
	"restoapi/internal/service"
)

type tableListQuery struct {
	RestaurantID string `query:"restaurantId" validate:"required,uuid"`
}

type tableRequest struct {
	RestaurantID string          `json:"restaurantId" validate:"required,uuid"`
	TableNumber  int             `json:"tableNumber" validate:"required,min=1"`
	Capacity     int             `json:"capacity" validate:"required,min=1"`
	Type         model.TableType `json:"type" validate:"omitempty,oneof=vip normal"`
}

type tablePatchRequest struct {
	TableNumber *int             `json:"tableNumber" validate:"omitempty,min=1"`
	Capacity    *int             `json:"capacity" validate:"omitempty,min=1"`
	Type        *model.TableType `json:"type" validate:"omitempty,oneof=vip normal"`
}

type tableStatusRequest struct {
	Status model.TableStatus `json:"status" validate:"required,oneof=available reserved occupied maintenance"`
}

type checkTablesRequest struct {
	Date       string `json:"date" validate:"required,ymd"`
	Time       string `json:"time" validate:"required,hhmm"`
	GuestCount int    `json:"guestCount" validate:"required,min=1"`
}

func ListTables(svc service.TableService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q tableListQuery
		if err := bindQuery(c, &q); err != nil {
			return respondError(c, err)
		}
		list, err := svc.List(c.UserContext(), q.RestaurantID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	}
}

func GetTable(svc service.TableService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		t, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(t)
	}
}

func CreateTable(svc service.TableService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req tableRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		t, err := svc.Create(c.UserContext(), caller(c), service.TableInput{
			RestaurantID: req.RestaurantID,
			TableNumber:  req.TableNumber,
			Capacity:     req.Capacity,
			Type:         req.Type,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(t)
	}
}

func UpdateTable(svc service.TableService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req tablePatchRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		t, err := svc.Update(c.UserContext(), caller(c), id, service.TablePatch{
			TableNumber: req.TableNumber,
			Capacity:    req.Capacity,
			Type:        req.Type,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(t)
	}
}

// SetTableStatus is the manual floor toggle; reserved and occupied are
// rejected by the service since only bookings drive them.
func SetTableStatus(svc service.TableService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req tableStatusRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		t, err := svc.SetStatus(c.UserContext(), caller(c), id, req.Status)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(t)
	}
}

func DeleteTable(svc service.TableService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Table deleted"})
	}
}

// CheckTables searches every restaurant for a free table seating guestCount.
func CheckTables(svc service.AvailabilityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req checkTablesRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		tables, err := svc.Check(c.UserContext(), req.Date, req.Time, req.GuestCount)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(tables)
	}
}
