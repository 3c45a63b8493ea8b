package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/corehr/employee-api/internal/core/domain"
	"github.com/corehr/employee-api/internal/core/ports"
)

const employeeColumns = `id, name, email, department, role, date_joined`

// EmployeeRepository implements ports.EmployeeRepository on the employees table.
type EmployeeRepository struct {
	pool Queryer
}

func NewEmployeeRepository(pool Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	row := QueryerFromContext(ctx, r.pool).QueryRow(ctx, `
        INSERT INTO employees (name, email, department, role, date_joined)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+employeeColumns,
		e.Name,
		e.Email,
		e.Department,
		e.Role,
		domain.DateOnly(e.DateJoined),
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	row := QueryerFromContext(ctx, r.pool).QueryRow(ctx, `
        UPDATE employees
           SET name = $1,
               email = $2,
               department = $3,
               role = $4
         WHERE id = $5
        RETURNING `+employeeColumns,
		e.Name,
		e.Email,
		e.Department,
		e.Role,
		e.ID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := QueryerFromContext(ctx, r.pool).Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.findByID(ctx, id, "")
}

func (r *EmployeeRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.findByID(ctx, id, " FOR UPDATE")
}

func (r *EmployeeRepository) findByID(ctx context.Context, id int64, lock string) (*domain.Employee, error) {
	row := QueryerFromContext(ctx, r.pool).QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`+lock, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := QueryerFromContext(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1 AND id <> $2)`, email, excludeID).
		Scan(&exists)
	if err != nil {
		return false, translateEmployeePgError(err)
	}
	return exists, nil
}

func (r *EmployeeRepository) Count(ctx context.Context, filter ports.EmployeeFilter) (int64, error) {
	where, args := buildEmployeeWhere(filter)

	var total int64
	err := QueryerFromContext(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM employees`+where, args...).Scan(&total)
	if err != nil {
		return 0, translateEmployeePgError(err)
	}
	return total, nil
}

func (r *EmployeeRepository) List(ctx context.Context, filter ports.EmployeeFilter, limit, offset int) ([]*domain.Employee, error) {
	where, args := buildEmployeeWhere(filter)

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, limit)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, offset)

	query := `SELECT ` + employeeColumns + ` FROM employees` + where +
		` ORDER BY id ASC LIMIT ` + limitPlaceholder + ` OFFSET ` + offsetPlaceholder

	rows, err := QueryerFromContext(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0, limit)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	return employees, nil
}

// buildEmployeeWhere renders the AND-ed filter clause and its positional args.
func buildEmployeeWhere(filter ports.EmployeeFilter) (string, []any) {
	args := make([]any, 0, 4)
	conditions := make([]string, 0, 2)

	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, "department = $"+strconv.Itoa(len(args)))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		conditions = append(conditions, "role = $"+strconv.Itoa(len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var (
		e      domain.Employee
		joined time.Time
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.Role, &joined); err != nil {
		return nil, err
	}
	e.DateJoined = domain.DateOnly(joined)
	return &e, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return domain.ErrEmployeeEmailExists
	}
	return err
}
