package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fichaje/workday-api/internal/api/middleware"
)

// ctxDNI returns the caller DNI injected by the Identity middleware. A
// missing value means the route was mounted without it; reject with 401.
func ctxDNI(c echo.Context) (string, error) {
	dni, _ := c.Get(middleware.DNIKey).(string)
	if dni == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "user DNI not provided in request headers")
	}
	return dni, nil
}
