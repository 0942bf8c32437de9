package middleware

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restoapi/internal/auth"
	"restoapi/internal/model"
)

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	whoami := func(c *fiber.Ctx) error {
		if cl := Claims(c); cl != nil {
			return c.SendString(cl.UserID)
		}
		return c.SendString("anonymous")
	}
	app.Get("/private", Auth(tm), whoami)
	app.Get("/optional", OptionalAuth(tm), whoami)
	app.Get("/staff", Auth(tm), RequireRoles(model.RoleStaff, model.RoleAdmin), whoami)
	return app, tm
}

func get(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	return resp.StatusCode, buf.String()
}

func TestAuth(t *testing.T) {
	app, tm := newTestApp(t)
	token, err := tm.Issue(&model.User{ID: "u-1", Email: "an@example.com", Role: model.RoleCustomer})
	require.NoError(t, err)

	status, body := get(t, app, "/private", token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "u-1", body)

	status, _ = get(t, app, "/private", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = get(t, app, "/private", "not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestOptionalAuth(t *testing.T) {
	app, tm := newTestApp(t)
	token, err := tm.Issue(&model.User{ID: "u-1", Role: model.RoleCustomer})
	require.NoError(t, err)

	_, body := get(t, app, "/optional", "")
	assert.Equal(t, "anonymous", body)

	_, body = get(t, app, "/optional", token)
	assert.Equal(t, "u-1", body)

	status, _ := get(t, app, "/optional", "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRequireRoles(t *testing.T) {
	app, tm := newTestApp(t)
	customer, err := tm.Issue(&model.User{ID: "u-1", Role: model.RoleCustomer})
	require.NoError(t, err)
	admin, err := tm.Issue(&model.User{ID: "u-2", Role: model.RoleAdmin})
	require.NoError(t, err)

	status, _ := get(t, app, "/staff", customer)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body := get(t, app, "/staff", admin)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "u-2", body)
}
