package handler

import (
	"github.com/gofiber/fiber/v2"

	"restoapi/internal/service"
)

type addCartItemRequest struct {
	MenuItemID string `json:"menuItemId" validate:"required,uuid"`
	Quantity   int    `json:"quantity" validate:"required,min=1,max=99"`
	Notes      string `json:"notes" validate:"max=500"`
}

type updateCartItemRequest struct {
	Quantity int     `json:"quantity" validate:"required,min=1,max=99"`
	Notes    *string `json:"notes" validate:"omitempty,max=500"`
}

// All cart routes sit behind middleware.Auth; the cart belongs to the caller.

func GetCart(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		cart, err := svc.Get(c.UserContext(), cl.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cart)
	}
}

func AddCartItem(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		var req addCartItemRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		cart, err := svc.AddItem(c.UserContext(), cl.UserID, service.AddCartItemInput{
			MenuItemID: req.MenuItemID,
			Quantity:   req.Quantity,
			Notes:      req.Notes,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cart)
	}
}

func UpdateCartItem(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		itemID, err := pathID(c, "itemId")
		if err != nil {
			return respondError(c, err)
		}
		var req updateCartItemRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		cart, err := svc.UpdateItem(c.UserContext(), cl.UserID, itemID, req.Quantity, req.Notes)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cart)
	}
}

func RemoveCartItem(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		itemID, err := pathID(c, "itemId")
		if err != nil {
			return respondError(c, err)
		}
		cart, err := svc.RemoveItem(c.UserContext(), cl.UserID, itemID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cart)
	}
}

func ClearCart(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		cart, err := svc.Clear(c.UserContext(), cl.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cart)
	}
}
