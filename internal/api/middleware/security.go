package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// opsPrefixes are the operational routes that must never be cached.
var opsPrefixes = []string{"/health", "/scheduler"}

// SecurityHeaders sets response hardening headers. Addon resources stay
// embeddable and cacheable; operational routes are marked no-store.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// Prevent MIME type sniffing
			h.Set("X-Content-Type-Options", "nosniff")

			// Control referrer information
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

			path := c.Request().URL.Path
			for _, prefix := range opsPrefixes {
				if strings.HasPrefix(path, prefix) {
					h.Set("Cache-Control", "no-store")
					break
				}
			}

			return next(c)
		}
	}
}
