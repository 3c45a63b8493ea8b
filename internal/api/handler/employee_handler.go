package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/corehr/employee-api/internal/api/metrics"
	"github.com/corehr/employee-api/internal/core/domain"
	"github.com/corehr/employee-api/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee records.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Create handles POST /employees/.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee"
// @Success      201   {object}  employeeResponse
// @Failure      400   {object}  ErrorResponse  "Duplicate email"
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /employees/ [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	in, err := toCreateEmployeeInput(req)
	if err != nil {
		return err
	}

	created, err := h.service.CreateEmployee(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toEmployeeResponse(created))
}

// List handles GET /employees/.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number (1-based)"      default(1)   minimum(1)  maximum(2147483647)
// @Param        page_size   query     int     false  "Items per page"             default(10)  minimum(1)  maximum(100)
// @Param        department  query     string  false  "Filter by department"
// @Param        role        query     string  false  "Filter by role"
// @Success      200         {object}  employeePageResponse
// @Failure      401         {object}  ErrorResponse
// @Failure      422         {object}  ErrorResponse
// @Router       /employees/ [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	q := listEmployeesQuery{Page: domain.DefaultPage, PageSize: domain.DefaultPageSize}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return newFieldError("query", "page and page_size must be integers")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	page, err := h.service.ListEmployees(c.Request().Context(), toListEmployeesInput(q))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeePageResponse(page))
}

// Get handles GET /employees/:id.
//
// @Summary      Get an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Employee ID"
// @Success      200  {object}  employeeResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	employee, err := h.service.GetEmployee(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Update handles PUT /employees/:id. Only the keys present in the body change.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Employee ID"
// @Param        body  body      updateEmployeeRequest  true  "Fields to change"
// @Success      200   {object}  employeeResponse
// @Failure      400   {object}  ErrorResponse  "Duplicate email"
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	var req updateEmployeeRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.service.UpdateEmployee(c.Request().Context(), actor, toUpdateEmployeeInput(id, req))
	if err != nil {
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toEmployeeResponse(updated))
}

// Delete handles DELETE /employees/:id.
//
// @Summary      Delete an employee
// @Tags         employees
// @Security     BearerAuth
// @Param        id   path  int  true  "Employee ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteEmployee(c.Request().Context(), actor, id); err != nil {
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func employeeID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, newFieldError("id", "must be a positive integer")
	}
	return id, nil
}
