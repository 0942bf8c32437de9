package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"restoapi/internal/auth"
	"restoapi/internal/http/middleware"
	"restoapi/internal/model"
	"restoapi/internal/service"
	serviceMocks "restoapi/internal/service/mocks"
	"restoapi/internal/statemachine"
)

// asUser stands in for middleware.Auth in handler tests.
func asUser(id string, role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.ClaimsLocalKey, &auth.Claims{UserID: id, Email: id + "@example.com", Role: role})
		return c.Next()
	}
}

func isCaller(id string) any {
	return mock.MatchedBy(func(c *service.Caller) bool { return c != nil && c.UserID == id })
}

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var res errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRespondError(t *testing.T) {
	app := fiber.New()
	var current error
	app.Get("/err", func(c *fiber.Ctx) error { return respondError(c, current) })

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"sentinel", service.ErrTableBooked, http.StatusConflict, "TABLE_BOOKED"},
		{"wrapped sentinel", fmt.Errorf("create booking: %w", service.ErrRestaurantNotFound), http.StatusNotFound, "RESTAURANT_NOT_FOUND"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"mail failure", fmt.Errorf("%w: dial tcp 10.0.0.1:587", service.ErrMailDelivery), http.StatusBadGateway, "MAIL_DELIVERY_FAILED"},
		{"too large", service.ErrImageTooLarge, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE"},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current = tt.err
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/err", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotContains(t, body.Error.Message, "10.0.0.1")
			assert.NotContains(t, body.Error.Message, "pq:")
		})
	}

	t.Run("transition", func(t *testing.T) {
		current = &statemachine.TransitionError{
			From:      "pending",
			To:        "seated",
			Actor:     statemachine.ActorStaff,
			ValidNext: []string{"confirmed", "cancelled"},
		}
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/err", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INVALID_TRANSITION", body.Error.Code)
		assert.Equal(t, []string{"confirmed", "cancelled"}, body.Error.ValidNextStates)
	})
}

func TestValidation(t *testing.T) {
	app := fiber.New()
	app.Post("/bookings", CreateBooking(new(serviceMocks.MockBookingService)))

	t.Run("field errors", func(t *testing.T) {
		body := `{"restaurantId":"nope","date":"18/10/2026","time":"25:00","customerName":"An","customerPhone":"0900","customerEmail":"bad"}`
		resp, _ := app.Test(jsonReq(http.MethodPost, "/bookings", body))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", res.Error.Code)

		fields := map[string]string{}
		for _, f := range res.Error.Fields {
			fields[f.Field] = f.Message
		}
		assert.Equal(t, "must be a valid id", fields["restaurantId"])
		assert.Equal(t, "must be a date in YYYY-MM-DD format", fields["date"])
		assert.Equal(t, "must be a time in HH:mm format", fields["time"])
		assert.Equal(t, "must be a valid email address", fields["customerEmail"])
	})

	t.Run("malformed json", func(t *testing.T) {
		resp, _ := app.Test(jsonReq(http.MethodPost, "/bookings", `{"restaurantId":`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	tm, err := auth.NewTokenManager("routing-secret", time.Hour)
	require.NoError(t, err)
	customerToken, err := tm.Issue(&model.User{ID: "user-1", Email: "an@example.com", Role: model.RoleCustomer})
	require.NoError(t, err)
	staffToken, err := tm.Issue(&model.User{ID: "staff-1", Email: "staff@example.com", Role: model.RoleStaff})
	require.NoError(t, err)

	bookings := new(serviceMocks.MockBookingService)
	restaurants := new(serviceMocks.MockRestaurantService)
	// Register all routes
	RegisterRoutes(app, nil, tm, Services{Bookings: bookings, Restaurants: restaurants})

	withToken := func(req *http.Request, token string) *http.Request {
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("public route", func(t *testing.T) {
		restaurants.On("List", mock.Anything, model.RegionSouth).
			Return([]model.Restaurant{{ID: uuid.NewString(), Name: "Saigon"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/restaurants?region=south", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		restaurants.AssertExpectations(t)
	})

	t.Run("missing token", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/bookings", nil))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	t.Run("customer on staff route", func(t *testing.T) {
		req := withToken(httptest.NewRequest(http.MethodGet, "/bookings", nil), customerToken)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Error.Code)
	})

	t.Run("staff on staff route", func(t *testing.T) {
		bookings.On("List", mock.Anything, service.BookingListQuery{Date: "2026-10-18"}).
			Return(&service.BookingListResult{Items: []model.Booking{}}, nil).Once()

		req := withToken(httptest.NewRequest(http.MethodGet, "/bookings?date=2026-10-18", nil), staffToken)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		bookings.AssertExpectations(t)
	})

	t.Run("optional auth records caller", func(t *testing.T) {
		body := fmt.Sprintf(`{"restaurantId":%q,"date":"2026-10-20","time":"19:00","adults":2,"customerName":"An","customerPhone":"0900","customerEmail":"an@example.com"}`, uuid.NewString())
		bookings.On("Create", mock.Anything, isCaller("user-1"), mock.AnythingOfType("service.BookingInput")).
			Return(&model.Booking{ID: uuid.NewString(), Status: model.BookingPending}, nil).Once()

		req := withToken(jsonReq(http.MethodPost, "/bookings", body), customerToken)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		bookings.AssertExpectations(t)
	})
}
