package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/corehr/employee-api/internal/api/metrics"
	"github.com/corehr/employee-api/internal/core/domain"
)

// RequireAdmin rejects callers without the admin role with domain.ErrForbidden.
// It must run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}
			if err := domain.RequireAdmin(user); err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
				return err
			}
			return next(c)
		}
	}
}
