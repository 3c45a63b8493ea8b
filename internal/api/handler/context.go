package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/corehr/employee-api/internal/api/middleware"
	"github.com/corehr/employee-api/internal/core/domain"
)

// ctxUser returns the caller resolved by the Auth middleware. A missing user
// means the route was mounted without Auth and is treated as unauthenticated.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
