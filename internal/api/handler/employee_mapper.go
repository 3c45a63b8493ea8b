package handler

import (
	"time"

	"github.com/corehr/employee-api/internal/core/domain"
	"github.com/corehr/employee-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateEmployeeInput(req createEmployeeRequest) (ports.CreateEmployeeInput, error) {
	in := ports.CreateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Role:       req.Role,
	}
	if req.DateJoined != nil {
		joined, err := time.Parse(time.DateOnly, *req.DateJoined)
		if err != nil {
			return ports.CreateEmployeeInput{}, newFieldError("date_joined", "must be a date in YYYY-MM-DD format")
		}
		in.DateJoined = &joined
	}
	return in, nil
}

func toUpdateEmployeeInput(id int64, req updateEmployeeRequest) ports.UpdateEmployeeInput {
	return ports.UpdateEmployeeInput{
		ID:            id,
		Name:          req.Name,
		Email:         req.Email,
		Department:    req.Department.Value,
		DepartmentSet: req.Department.Set,
		Role:          req.Role.Value,
		RoleSet:       req.Role.Set,
	}
}

func toListEmployeesInput(q listEmployeesQuery) ports.ListEmployeesInput {
	return ports.ListEmployeesInput{
		Filter: ports.EmployeeFilter{
			Department: q.Department,
			Role:       q.Role,
		},
		Page:     q.Page,
		PageSize: q.PageSize,
	}
}

// --- Service result → HTTP response ---

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Role:       e.Role,
		DateJoined: e.DateJoined.Format(time.DateOnly),
	}
}

func toEmployeePageResponse(p *ports.EmployeePage) employeePageResponse {
	items := make([]employeeResponse, 0, len(p.Items))
	for _, e := range p.Items {
		items = append(items, toEmployeeResponse(e))
	}
	return employeePageResponse{
		Items:    items,
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
		NextPage: p.NextPage,
		PrevPage: p.PrevPage,
	}
}
