package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bdmarket/storefront/internal/buyer"
)

// RequireAuth rejects requests whose buyer key was not backed by a valid
// access token.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !buyer.Authenticated(c) {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		return next(c)
	}
}

// RequireAdmin additionally demands the admin role claim.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !buyer.Authenticated(c) {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		if buyer.Role(c) != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}
