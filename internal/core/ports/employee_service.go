package ports

import (
	"context"
	"time"

	"github.com/corehr/employee-api/internal/core/domain"
)

// CreateEmployeeInput is the DTO passed from the transport layer to EmployeeService.
type CreateEmployeeInput struct {
	Name       string
	Email      string
	Department *string
	Role       *string
	DateJoined *time.Time // nil = today
}

// UpdateEmployeeInput carries a partial update. Nil Name/Email are left untouched.
// Department and Role are applied only when their *Set flag is true; a nil value
// with the flag set clears the field.
type UpdateEmployeeInput struct {
	ID            int64
	Name          *string
	Email         *string
	Department    *string
	DepartmentSet bool
	Role          *string
	RoleSet       bool
}

type ListEmployeesInput struct {
	Filter   EmployeeFilter
	Page     int
	PageSize int
}

// EmployeePage is one page of a filtered listing.
type EmployeePage struct {
	Items    []*domain.Employee
	Total    int64
	Page     int
	PageSize int
	NextPage *int
	PrevPage *int
}

// EmployeeService exposes employee use cases. Mutations require an admin actor.
type EmployeeService interface {
	CreateEmployee(ctx context.Context, actor *domain.User, in CreateEmployeeInput) (*domain.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, actor *domain.User, in UpdateEmployeeInput) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, actor *domain.User, id int64) error
	ListEmployees(ctx context.Context, in ListEmployeesInput) (*EmployeePage, error)
}
