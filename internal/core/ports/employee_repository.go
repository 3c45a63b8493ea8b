package ports

import (
	"context"

	"github.com/corehr/employee-api/internal/core/domain"
)

// EmployeeFilter narrows a listing. Empty fields do not filter; set fields are AND-ed.
type EmployeeFilter struct {
	Department string
	Role       string
}

// EmployeeRepository defines persistence operations for employees.
// Methods run inside the transaction carried by ctx when there is one.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Employee, error)
	// FindByIDForUpdate also locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Employee, error)
	// ExistsByEmail reports whether another employee (id != excludeID) uses email.
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Count(ctx context.Context, filter EmployeeFilter) (int64, error)
	// List returns one page ordered by id ascending.
	List(ctx context.Context, filter EmployeeFilter, limit, offset int) ([]*domain.Employee, error)
}

// TransactionManager runs fn as one unit of work. Nested calls join the outer transaction.
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}
