package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin lets the request through only when the DNI injected by
// Identity equals adminDNI.
func RequireAdmin(adminDNI string) echo.MiddlewareFunc {
	want := []byte(adminDNI)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			dni, _ := c.Get(DNIKey).(string)
			if dni == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "user DNI not provided in request headers")
			}
			if subtle.ConstantTimeCompare([]byte(dni), want) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
