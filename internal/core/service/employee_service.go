package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/corehr/employee-api/internal/core/domain"
	"github.com/corehr/employee-api/internal/core/ports"
)

// EmployeeService implements ports.EmployeeService. Every call runs as a
// single transaction; mutations check the admin role before touching the store.
type EmployeeService struct {
	repo  ports.EmployeeRepository
	tx    ports.TransactionManager
	audit ports.AuditRecorder
	clock Clock
	log   zerolog.Logger
}

// NewEmployeeService returns an EmployeeService. A nil tx runs repository
// calls directly; a nil audit recorder discards audit events.
func NewEmployeeService(
	repo ports.EmployeeRepository,
	tx ports.TransactionManager,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *EmployeeService {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if audit == nil {
		audit = noopAuditRecorder{}
	}
	return &EmployeeService{repo: repo, tx: tx, audit: audit, clock: realClock{}, log: log}
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, actor *domain.User, in ports.CreateEmployeeInput) (*domain.Employee, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}

	joined := domain.DateOnly(s.clock.Now())
	if in.DateJoined != nil {
		joined = domain.DateOnly(*in.DateJoined)
	}

	candidate := &domain.Employee{
		Name:       in.Name,
		Email:      in.Email,
		Department: in.Department,
		Role:       in.Role,
		DateJoined: joined,
	}

	var created *domain.Employee
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailAvailable(ctx, candidate.Email, 0); err != nil {
			return err
		}
		var err error
		created, err = s.repo.Create(ctx, candidate)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.log.Info().Int64("employee_id", created.ID).Int64("actor_id", actor.ID).Msg("employee created")
	s.record(domain.AuditEmployeeCreated, created.ID, actor, nil)
	return created, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	var found *domain.Employee
	err := s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		var err error
		found, err = s.repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return found, nil
}

// UpdateEmployee applies only the fields present in the input. The row is
// locked for the duration of the transaction so concurrent partial updates
// do not overwrite each other.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, actor *domain.User, in ports.UpdateEmployeeInput) (*domain.Employee, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}

	var (
		updated *domain.Employee
		changed []string
	)
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		current, err := s.repo.FindByIDForUpdate(ctx, in.ID)
		if err != nil {
			return err
		}

		if in.Email != nil {
			if err := s.ensureEmailAvailable(ctx, *in.Email, in.ID); err != nil {
				return err
			}
		}

		changed = applyEmployeeUpdate(current, in)
		if len(changed) == 0 {
			updated = current
			return nil
		}

		updated, err = s.repo.Update(ctx, current)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}

	if len(changed) > 0 {
		s.log.Info().Int64("employee_id", updated.ID).Strs("fields", changed).Msg("employee updated")
		s.record(domain.AuditEmployeeUpdated, updated.ID, actor, changed)
	}
	return updated, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, actor *domain.User, id int64) error {
	if err := domain.RequireAdmin(actor); err != nil {
		return err
	}

	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	s.log.Info().Int64("employee_id", id).Int64("actor_id", actor.ID).Msg("employee deleted")
	s.record(domain.AuditEmployeeDeleted, id, actor, nil)
	return nil
}

// ListEmployees returns one page of the filtered set. The count and the page
// are read in the same transaction.
func (s *EmployeeService) ListEmployees(ctx context.Context, in ports.ListEmployeesInput) (*ports.EmployeePage, error) {
	window := domain.NewPageWindow(in.Page, in.PageSize)

	var (
		total int64
		items []*domain.Employee
	)
	err := s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if total, err = s.repo.Count(ctx, in.Filter); err != nil {
			return err
		}
		items, err = s.repo.List(ctx, in.Filter, window.Limit(), window.Offset())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	if items == nil {
		items = []*domain.Employee{}
	}

	return &ports.EmployeePage{
		Items:    items,
		Total:    total,
		Page:     window.Page,
		PageSize: window.PageSize,
		NextPage: window.NextPage(total),
		PrevPage: window.PrevPage(),
	}, nil
}

func (s *EmployeeService) ensureEmailAvailable(ctx context.Context, email string, excludeID int64) error {
	taken, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrEmployeeEmailExists
	}
	return nil
}

func (s *EmployeeService) record(action domain.AuditAction, employeeID int64, actor *domain.User, changed []string) {
	s.audit.Record(domain.AuditEvent{
		Action:        action,
		EmployeeID:    employeeID,
		ActorID:       actor.ID,
		ActorUsername: actor.Username,
		ChangedFields: changed,
		OccurredAt:    s.clock.Now().UTC(),
	})
}

// applyEmployeeUpdate mutates e in place and returns the names of the fields
// whose value actually changed.
func applyEmployeeUpdate(e *domain.Employee, in ports.UpdateEmployeeInput) []string {
	var changed []string
	if in.Name != nil && *in.Name != e.Name {
		e.Name = *in.Name
		changed = append(changed, "name")
	}
	if in.Email != nil && *in.Email != e.Email {
		e.Email = *in.Email
		changed = append(changed, "email")
	}
	if in.DepartmentSet && !equalOptional(e.Department, in.Department) {
		e.Department = in.Department
		changed = append(changed, "department")
	}
	if in.RoleSet && !equalOptional(e.Role, in.Role) {
		e.Role = in.Role
		changed = append(changed, "role")
	}
	return changed
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type noopAuditRecorder struct{}

func (noopAuditRecorder) Record(domain.AuditEvent) {}
