package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows the configured browser origins. Credentials are only allowed
// for an explicit origin list; with "*" the browser gets no cookies or auth.
func CORS(origins []string) fiber.Handler {
	wildcard := len(origins) == 0 || slices.Contains(origins, "*")
	allow := "*"
	if !wildcard {
		allow = strings.Join(origins, ",")
	}
	return cors.New(cors.Config{
		AllowOrigins:     allow,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + RequestIDHeader,
		ExposeHeaders:    RequestIDHeader,
		AllowCredentials: !wildcard,
	})
}
