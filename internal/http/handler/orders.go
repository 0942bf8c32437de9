package handler

import (
	"github.com/gofiber/fiber/v2"

	"restoapi/internal/model"
	"restoapi/internal/service"
)

type checkoutRequest struct {
	ApplyDiscount float64 `json:"applyDiscount" validate:"gte=0"`
	RestaurantID  string  `json:"restaurantId" validate:"omitempty,uuid"`
	TableNumber   string  `json:"tableNumber" validate:"max=20"`
	CustomerName  string  `json:"customerName" validate:"max=200"`
}

type orderListQuery struct {
	Status model.OrderStatus `query:"status" validate:"omitempty,oneof=pending preparing served completed"`
	Query  string            `query:"q" validate:"max=100"`
	Page   int               `query:"page" validate:"omitempty,min=1"`
	Limit  int               `query:"limit" validate:"omitempty,min=1,max=100"`
}

type orderStatusRequest struct {
	Status model.OrderStatus `json:"status" validate:"required,oneof=pending preparing served completed"`
}

type orderFeedbackRequest struct {
	Rating  int      `json:"rating" validate:"required,min=1,max=5"`
	Comment string   `json:"comment" validate:"max=2000"`
	Images  []string `json:"images" validate:"omitempty,dive,required"`
}

// CreateOrderFromCart godoc
// @Summary  Check out the caller's cart
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    body body checkoutRequest false "checkout options"
// @Success  201 {object} model.Order
// @Failure  400 {object} errorPayload
// @Security BearerAuth
// @Router   /orders/from-cart [post]
func CreateOrderFromCart(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		var req checkoutRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		o, err := svc.CreateFromCart(c.UserContext(), cl, service.CheckoutInput{
			Discount:     req.ApplyDiscount,
			RestaurantID: req.RestaurantID,
			TableNumber:  req.TableNumber,
			CustomerName: req.CustomerName,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(o)
	}
}

func MyOrders(svc service.OrderService) fiber.Handler {
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

// GetMyOrder answers 404 for orders of other users.
func GetMyOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		o, err := svc.GetOwned(c.UserContext(), cl, id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(o)
	}
}

func CreateOrderFeedback(svc service.FeedbackService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		var req orderFeedbackRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		fb, err := svc.CreateForOrder(c.UserContext(), cl, id, service.FeedbackInput{
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

func ListOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q orderListQuery
		if err := bindQuery(c, &q); err != nil {
			return respondError(c, err)
		}
		res, err := svc.List(c.UserContext(), service.OrderListQuery{
			Status: q.Status,
			Query:  q.Query,
			Page:   q.Page,
			Limit:  q.Limit,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func GetOrderDetail(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		o, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(o)
	}
}

func UpdateOrderStatus(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req orderStatusRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		o, err := svc.UpdateStatus(c.UserContext(), id, req.Status)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(o)
	}
}
