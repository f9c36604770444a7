package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"repair-system/pkg/utils"
)

// StoreTimeout bounds every request's context so a stalled database surfaces
// a 503 instead of hanging the handler.
func StoreTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := utils.WithStoreTimeout(c.Request().Context(), timeout)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
