package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Harden applies the standard HTTP hardening stack: security headers and
// response compression everywhere, plus a per-IP rate limit on the API
// surface (static media and health checks stay unthrottled).
func Harden(app *fiber.App, apiMaxPerWindow int) {
	app.Use(helmet.New())
	app.Use(compress.New())
	app.Use("/api", limiter.New(limiter.Config{
		Max:        apiMaxPerWindow,
		Expiration: 15 * time.Minute,
	}))
}
