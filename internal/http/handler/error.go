package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"restoapi/internal/http/middleware"
	"restoapi/internal/service"
	"restoapi/internal/statemachine"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code            string       `json:"code"`
	Message         string       `json:"message"`
	Fields          []fieldError `json:"fields,omitempty"`
	ValidNextStates []string     `json:"valid_next_states,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeEnvelope(c, status, errorEnvelope{Code: code, Message: message})
}

func writeEnvelope(c *fiber.Ctx, status int, env errorEnvelope) error {
	return c.Status(status).JSON(errorPayload{RequestID: requestIDFromCtx(c), Error: env})
}

var (
	errInvalidID    = errors.New("invalid id format")
	errInvalidBody  = errors.New("request body must be valid JSON")
	errInvalidQuery = errors.New("invalid query parameters")
	errFileRequired = errors.New("image file is required")
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable maps service sentinels to responses. The sentinel text is the
// client message, so it must never carry internal detail.
var errorTable = []errorMapping{
	{errInvalidID, fiber.StatusBadRequest, "INVALID_ID"},
	{errInvalidBody, fiber.StatusBadRequest, "INVALID_BODY"},
	{errInvalidQuery, fiber.StatusBadRequest, "INVALID_QUERY"},
	{errFileRequired, fiber.StatusBadRequest, "FILE_REQUIRED"},

	{service.ErrIDRequired, fiber.StatusBadRequest, "ID_REQUIRED"},
	{service.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},

	{service.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{service.ErrEmailTaken, fiber.StatusConflict, "EMAIL_TAKEN"},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{service.ErrInvalidResetToken, fiber.StatusBadRequest, "INVALID_RESET_TOKEN"},
	{service.ErrInvalidRole, fiber.StatusBadRequest, "INVALID_ROLE"},
	{service.ErrPasswordTooLong, fiber.StatusBadRequest, "PASSWORD_TOO_LONG"},

	{service.ErrRestaurantNotFound, fiber.StatusNotFound, "RESTAURANT_NOT_FOUND"},
	{service.ErrInvalidRegion, fiber.StatusBadRequest, "INVALID_REGION"},
	{service.ErrRestaurantNotInRegion, fiber.StatusBadRequest, "RESTAURANT_NOT_IN_REGION"},

	{service.ErrTableNotFound, fiber.StatusNotFound, "TABLE_NOT_FOUND"},
	{service.ErrTableNumberTaken, fiber.StatusConflict, "TABLE_NUMBER_TAKEN"},
	{service.ErrTableNotInRestaurant, fiber.StatusBadRequest, "TABLE_NOT_IN_RESTAURANT"},
	{service.ErrTableInMaintenance, fiber.StatusConflict, "TABLE_IN_MAINTENANCE"},
	{service.ErrTableTooSmall, fiber.StatusBadRequest, "TABLE_TOO_SMALL"},
	{service.ErrTableBooked, fiber.StatusConflict, "TABLE_BOOKED"},
	{service.ErrTableBlocked, fiber.StatusConflict, "TABLE_BLOCKED"},
	{service.ErrTableHasBookings, fiber.StatusConflict, "TABLE_HAS_BOOKINGS"},
	{service.ErrManualTableStatus, fiber.StatusBadRequest, "INVALID_TABLE_STATUS"},
	{service.ErrBlockNotFound, fiber.StatusNotFound, "BLOCK_NOT_FOUND"},
	{service.ErrBlockExists, fiber.StatusConflict, "BLOCK_EXISTS"},

	{service.ErrBookingNotFound, fiber.StatusNotFound, "BOOKING_NOT_FOUND"},
	{service.ErrPartySize, fiber.StatusBadRequest, "INVALID_PARTY_SIZE"},
	{service.ErrTableRequired, fiber.StatusBadRequest, "TABLE_REQUIRED"},
	{service.ErrBookingNotEditable, fiber.StatusConflict, "BOOKING_NOT_EDITABLE"},
	{service.ErrStatusChanged, fiber.StatusConflict, "STATUS_CHANGED"},

	{service.ErrMenuItemNotFound, fiber.StatusNotFound, "MENU_ITEM_NOT_FOUND"},
	{service.ErrCartItemNotFound, fiber.StatusNotFound, "CART_ITEM_NOT_FOUND"},
	{service.ErrCartEmpty, fiber.StatusBadRequest, "CART_EMPTY"},

	{service.ErrOrderNotFound, fiber.StatusNotFound, "ORDER_NOT_FOUND"},
	{service.ErrOrderNotCompleted, fiber.StatusConflict, "ORDER_NOT_COMPLETED"},

	{service.ErrInvoiceNotFound, fiber.StatusNotFound, "INVOICE_NOT_FOUND"},
	{service.ErrRecipientRequired, fiber.StatusBadRequest, "RECIPIENT_REQUIRED"},
	{service.ErrMailDelivery, fiber.StatusBadGateway, "MAIL_DELIVERY_FAILED"},

	{service.ErrFeedbackNotFound, fiber.StatusNotFound, "FEEDBACK_NOT_FOUND"},
	{service.ErrFeedbackExists, fiber.StatusConflict, "FEEDBACK_EXISTS"},
	{service.ErrBookingNotFinished, fiber.StatusBadRequest, "BOOKING_NOT_COMPLETED"},
	{service.ErrInvalidRating, fiber.StatusBadRequest, "INVALID_RATING"},

	{service.ErrRestaurantRequired, fiber.StatusBadRequest, "RESTAURANT_REQUIRED"},
	{service.ErrInvalidRange, fiber.StatusBadRequest, "INVALID_RANGE"},

	{service.ErrReaderNil, fiber.StatusBadRequest, "FILE_REQUIRED"},
	{service.ErrNotAnImage, fiber.StatusBadRequest, "NOT_AN_IMAGE"},
	{service.ErrImageTooLarge, fiber.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE"},
	{service.ErrInvalidPublicID, fiber.StatusBadRequest, "INVALID_PUBLIC_ID"},
	{service.ErrImageNotFound, fiber.StatusNotFound, "IMAGE_NOT_FOUND"},
}

// respondError translates err into the standard envelope. Unknown errors are
// logged and answered with a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var ve *validationError
	if errors.As(err, &ve) {
		return writeEnvelope(c, fiber.StatusBadRequest, errorEnvelope{
			Code:    "VALIDATION_FAILED",
			Message: "request validation failed",
			Fields:  ve.fields,
		})
	}

	var te *statemachine.TransitionError
	if errors.As(err, &te) {
		return writeEnvelope(c, fiber.StatusUnprocessableEntity, errorEnvelope{
			Code:            "INVALID_TRANSITION",
			Message:         te.Error(),
			ValidNextStates: te.ValidNext,
		})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return err
	}

	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return writeError(c, m.status, m.code, m.err.Error())
		}
	}

	slog.ErrorContext(c.UserContext(), "request failed",
		"request_id", requestIDFromCtx(c),
		"method", c.Method(),
		"path", c.Path(),
		"error", err.Error(),
	)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			msg := "authentication required"
			if fe != nil && fe.Message != "" {
				msg = fe.Message
			}
			return writeError(c, status, "UNAUTHORIZED", msg)
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "insufficient role")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
