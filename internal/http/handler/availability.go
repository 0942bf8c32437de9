package handler

import (
	"github.com/gofiber/fiber/v2"

	"restoapi/internal/model"
	"restoapi/internal/service"
)

type availabilityRequest struct {
	Region       model.Region `json:"region" query:"region" validate:"required,oneof=north central south"`
	RestaurantID string       `json:"restaurantId" query:"restaurantId" validate:"omitempty,uuid"`
	Date         string       `json:"date" query:"date" validate:"required,ymd"`
	Time         string       `json:"time" query:"time" validate:"required,hhmm"`
	Adults       int          `json:"adults" query:"adults" validate:"min=0"`
	Children     int          `json:"children" query:"children" validate:"min=0"`
}

// SearchAvailability godoc
// @Summary  Find free tables for a party at a slot
// @Tags     availability
// @Accept   json
// @Produce  json
// @Param    body body availabilityRequest false "search (POST)"
// @Success  200 {object} service.AvailabilityResult
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /available-tables [post]
// @Router   /available-tables [get]
func SearchAvailability(svc service.AvailabilityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req availabilityRequest
		bind := bindJSON
		if c.Method() == fiber.MethodGet {
			bind = bindQuery
		}
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		res, err := svc.Search(c.UserContext(), service.AvailabilityQuery{
			Region:       req.Region,
			RestaurantID: req.RestaurantID,
			Date:         req.Date,
			Time:         req.Time,
			Adults:       req.Adults,
			Children:     req.Children,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}
