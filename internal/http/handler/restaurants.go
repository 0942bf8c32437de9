package handler

import (
	"github.com/gofiber/fiber/v2"

	"restoapi/internal/model"
	"restoapi/internal/service"
)

type restaurantRequest struct {
	Name    string       `json:"name" validate:"required,max=200"`
	Region  model.Region `json:"region" validate:"required,oneof=north central south"`
	Address string       `json:"address" validate:"required,max=500"`
	Images  []string     `json:"images" validate:"omitempty,dive,required"`
}

type restaurantPatchRequest struct {
	Name    *string       `json:"name" validate:"omitempty,min=1,max=200"`
	Region  *model.Region `json:"region" validate:"omitempty,oneof=north central south"`
	Address *string       `json:"address" validate:"omitempty,min=1,max=500"`
	Images  []string      `json:"images" validate:"omitempty,dive,required"`
}

// ListRestaurants godoc
// @Summary  List restaurants, optionally by region
// @Tags     restaurants
// @Produce  json
// @Param    region query string false "north, central or south"
// @Success  200 {array} model.Restaurant
// @Router   /restaurants [get]
func ListRestaurants(svc service.RestaurantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List(c.UserContext(), model.Region(c.Query("region")))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	}
}

func GetRestaurant(svc service.RestaurantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		r, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(r)
	}
}

func CreateRestaurant(svc service.RestaurantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req restaurantRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		r, err := svc.Create(c.UserContext(), caller(c), service.RestaurantInput{
			Name:    req.Name,
			Region:  req.Region,
			Address: req.Address,
			Images:  req.Images,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

func UpdateRestaurant(svc service.RestaurantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req restaurantPatchRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		r, err := svc.Update(c.UserContext(), caller(c), id, service.RestaurantPatch{
			Name:    req.Name,
			Region:  req.Region,
			Address: req.Address,
			Images:  req.Images,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(r)
	}
}

func DeleteRestaurant(svc service.RestaurantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Restaurant deleted"})
	}
}
