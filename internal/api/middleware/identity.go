package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// DNIKey is the echo.Context key holding the caller's DNI.
const DNIKey = "dni"

// Identity reads the caller's DNI from the given request header and injects
// it into the context. The value is an unauthenticated claim.
func Identity(header string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			dni := strings.TrimSpace(c.Request().Header.Get(header))
			if dni == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "user DNI not provided in request headers")
			}

			c.Set(DNIKey, dni)
			return next(c)
		}
	}
}
