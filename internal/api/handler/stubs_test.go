package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/corehr/employee-api/internal/api/middleware"
	"github.com/corehr/employee-api/internal/core/domain"
	"github.com/corehr/employee-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn        func(ctx context.Context, username, password string) (*domain.AccessToken, error)
	authenticateFn func(ctx context.Context, token string) (*domain.User, error)
	logoutFn       func(ctx context.Context, token string) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.AccessToken, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	return s.authenticateFn(ctx, token)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

type stubEmployeeService struct {
	createFn func(ctx context.Context, actor *domain.User, in ports.CreateEmployeeInput) (*domain.Employee, error)
	getFn    func(ctx context.Context, id int64) (*domain.Employee, error)
	updateFn func(ctx context.Context, actor *domain.User, in ports.UpdateEmployeeInput) (*domain.Employee, error)
	deleteFn func(ctx context.Context, actor *domain.User, id int64) error
	listFn   func(ctx context.Context, in ports.ListEmployeesInput) (*ports.EmployeePage, error)
}

func (s *stubEmployeeService) CreateEmployee(ctx context.Context, actor *domain.User, in ports.CreateEmployeeInput) (*domain.Employee, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubEmployeeService) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.getFn(ctx, id)
}

func (s *stubEmployeeService) UpdateEmployee(ctx context.Context, actor *domain.User, in ports.UpdateEmployeeInput) (*domain.Employee, error) {
	return s.updateFn(ctx, actor, in)
}

func (s *stubEmployeeService) DeleteEmployee(ctx context.Context, actor *domain.User, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubEmployeeService) ListEmployees(ctx context.Context, in ports.ListEmployeesInput) (*ports.EmployeePage, error) {
	return s.listFn(ctx, in)
}

var (
	adminUser = &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}
	plainUser = &domain.User{ID: 2, Username: "bob", Role: domain.RoleUser}
)

// newRequestContext builds an echo context with the validator wired and,
// when user is non-nil, the caller already authenticated.
func newRequestContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		middleware.SetCurrentUser(c, user)
	}
	return c, rec
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
