package handler

import (
	"github.com/gofiber/fiber/v2"

	"restoapi/internal/service"
)

type menuListQuery struct {
	Category string `query:"category" validate:"max=100"`
	Query    string `query:"q" validate:"max=100"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type menuItemRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"max=100"`
	ImageURLs   []string `json:"imageUrl" validate:"omitempty,dive,required"`
	IsAvailable *bool    `json:"isAvailable"`
}

type menuItemPatchRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	ImageURLs   []string `json:"imageUrl" validate:"omitempty,dive,required"`
	IsAvailable *bool    `json:"isAvailable"`
}

// ListMenuItems godoc
// @Summary  Browse available menu items
// @Tags     menu
// @Produce  json
// @Param    category query string false "category"
// @Param    q        query string false "case-insensitive name search"
// @Param    page     query int    false "page (default 1)"
// @Param    limit    query int    false "page size (default 20, max 100)"
// @Success  200 {object} service.MenuListResult
// @Router   /menu/items [get]
func ListMenuItems(svc service.MenuService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q menuListQuery
		if err := bindQuery(c, &q); err != nil {
			return respondError(c, err)
		}
		res, err := svc.List(c.UserContext(), service.MenuQuery{
			Category: q.Category,
			Query:    q.Query,
			Page:     q.Page,
			Limit:    q.Limit,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func GetMenuItem(svc service.MenuService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		item, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(item)
	}
}

func FullMenu(svc service.MenuService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		groups, err := svc.Full(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(groups)
	}
}

func CreateMenuItem(svc service.MenuService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req menuItemRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		item, err := svc.Create(c.UserContext(), caller(c), service.MenuItemInput{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			ImageURLs:   req.ImageURLs,
			IsAvailable: req.IsAvailable,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

func UpdateMenuItem(svc service.MenuService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req menuItemPatchRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		item, err := svc.Update(c.UserContext(), caller(c), id, service.MenuItemPatch{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			ImageURLs:   req.ImageURLs,
			IsAvailable: req.IsAvailable,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(item)
	}
}

func DeleteMenuItem(svc service.MenuService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Menu item deleted"})
	}
}
