package handler

import (
	"github.com/gofiber/fiber/v2"

	"restoapi/internal/service"
)

type revenueQuery struct {
	RestaurantID string `query:"restaurantId" validate:"required,uuid"`
	Range        string `query:"range" validate:"required,oneof=today yesterday week lastWeek month lastMonth custom"`
	From         string `query:"from" validate:"omitempty,ymd"`
	To           string `query:"to" validate:"omitempty,ymd"`
}

type topMenuQuery struct {
	From string `query:"from" validate:"omitempty,ymd"`
	To   string `query:"to" validate:"omitempty,ymd"`
}

// RevenueReport godoc
// @Summary  Revenue, order and booking totals of a restaurant over a range
// @Tags     reports
// @Produce  json
// @Param    restaurantId query string true  "restaurant id"
// @Param    range        query string false "today (default), yesterday, week, lastWeek, month, lastMonth, custom"
// @Param    from         query string false "YYYY-MM-DD, custom range only"
// @Param    to           query string false "YYYY-MM-DD inclusive, custom range only"
// @Success  200 {object} model.RevenueReport
// @Failure  400 {object} errorPayload
// @Security BearerAuth
// @Router   /reports/revenue [get]
func RevenueReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q revenueQuery
		if err := bindQuery(c, &q); err != nil {
			return respondError(c, err)
		}
		rep, err := svc.Revenue(c.UserContext(), service.RevenueQuery{
			RestaurantID: q.RestaurantID,
			Range:        q.Range,
			From:         q.From,
			To:           q.To,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(rep)
	}
}

func TopMenuReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q topMenuQuery
		if err := bindQuery(c, &q); err != nil {
			return respondError(c, err)
		}
		list, err := svc.TopMenu(c.UserContext(), q.From, q.To)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	}
}

func FeedbackReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dist, err := svc.FeedbackDistribution(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dist)
	}
}
