package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"restoapi/internal/service"
)

type createInvoiceRequest struct {
	OrderID string `json:"orderId" validate:"required,uuid"`
}

type sendInvoiceRequest struct {
	To string `json:"to" validate:"omitempty,email"`
}

type invoiceListQuery struct {
	Query string `query:"q" validate:"max=100"`
	Page  int    `query:"page" validate:"omitempty,min=1"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// CreateInvoice godoc
// @Summary  Issue the invoice of a completed order
// @Description Returns 200 with the existing invoice when the order already has one.
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    body body createInvoiceRequest true "order"
// @Success  201 {object} model.Invoice
// @Success  200 {object} model.Invoice
// @Failure  409 {object} errorPayload
// @Security BearerAuth
// @Router   /invoices [post]
func CreateInvoice(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl, err := requireCaller(c)
		if err != nil {
			return err
		}
		var req createInvoiceRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		inv, created, err := svc.CreateFromOrder(c.UserContext(), cl, req.OrderID)
		if err != nil {
			return respondError(c, err)
		}
		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(inv)
	}
}

func GetInvoice(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		v, err := svc.Get(c.UserContext(), caller(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(v)
	}
}

func sendRendered(c *fiber.Ctx, r *service.Rendered, disposition string) error {
	c.Set(fiber.HeaderContentType, r.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, r.Filename))
	return c.Send(r.Body)
}

// ExportInvoiceHTML downloads the invoice as an HTML attachment.
func ExportInvoiceHTML(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		r, err := svc.ExportHTML(c.UserContext(), caller(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return sendRendered(c, r, "attachment")
	}
}

// ExportInvoicePDF renders the invoice as an inline PDF.
func ExportInvoicePDF(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		r, err := svc.ExportPDF(c.UserContext(), caller(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return sendRendered(c, r, "inline")
	}
}

func SendInvoice(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req sendInvoiceRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		inv, err := svc.Send(c.UserContext(), caller(c), id, req.To)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Invoice sent", "invoice": inv})
	}
}

func ListInvoices(svc service.InvoiceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q invoiceListQuery
		if err := bindQuery(c, &q); err != nil {
			return respondError(c, err)
		}
		res, err := svc.List(c.UserContext(), q.Query, q.Page, q.Limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}
