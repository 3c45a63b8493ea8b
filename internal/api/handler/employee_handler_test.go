package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/corehr/employee-api/internal/core/domain"
	"github.com/corehr/employee-api/internal/core/ports"
)

var joined = time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

func TestEmployeeHandler_Create_Success(t *testing.T) {
	stub := &stubEmployeeService{
		createFn: func(ctx context.Context, actor *domain.User, in ports.CreateEmployeeInput) (*domain.Employee, error) {
			if actor != adminUser {
				t.Fatalf("actor not forwarded")
			}
			if in.Name != "Jane" || in.Email != "jane@example.com" || in.Department == nil || *in.Department != "Sales" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Role != nil {
				t.Fatalf("role should be nil, got %q", *in.Role)
			}
			if in.DateJoined == nil || !in.DateJoined.Equal(joined) {
				t.Fatalf("date_joined not parsed: %v", in.DateJoined)
			}
			return &domain.Employee{ID: 5, Name: in.Name, Email: in.Email, Department: in.Department, DateJoined: joined}, nil
		},
	}
	handler := NewEmployeeHandler(stub)

	body := `{"name":"Jane","email":"jane@example.com","department":"Sales","date_joined":"2024-02-01"}`
	c, rec := newRequestContext(http.MethodPost, "/employees/", body, adminUser)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(5) || resp["date_joined"] != "2024-02-01" || resp["department"] != "Sales" {
		t.Fatalf("unexpected payload: %v", resp)
	}
	if v, ok := resp["role"]; !ok || v != nil {
		t.Fatalf("role should be present and null, got %v", resp["role"])
	}
}

func TestEmployeeHandler_Create_ValidationFailure(t *testing.T) {
	stub := &stubEmployeeService{
		createFn: func(ctx context.Context, actor *domain.User, in ports.CreateEmployeeInput) (*domain.Employee, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewEmployeeHandler(stub)

	cases := []string{
		`{"email":"jane@example.com"}`,
		`{"name":"Jane","email":"bad"}`,
		`{"name":"Jane","email":"jane@example.com","date_joined":"01/02/2024"}`,
	}
	for _, body := range cases {
		c, _ := newRequestContext(http.MethodPost, "/employees/", body, adminUser)
		var ve *ValidationError
		if err := handler.Create(c); !errors.As(err, &ve) {
			t.Fatalf("body %s: expected ValidationError, got %v", body, err)
		}
	}
}

func TestEmployeeHandler_Create_PropagatesServiceErrors(t *testing.T) {
	for _, want := range []error{domain.ErrForbidden, domain.ErrEmployeeEmailExists} {
		stub := &stubEmployeeService{
			createFn: func(ctx context.Context, actor *domain.User, in ports.CreateEmployeeInput) (*domain.Employee, error) {
				return nil, want
			},
		}
		handler := NewEmployeeHandler(stub)

		c, _ := newRequestContext(http.MethodPost, "/employees/", `{"name":"Jane","email":"jane@example.com"}`, plainUser)
		if err := handler.Create(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestEmployeeHandler_List(t *testing.T) {
	stub := &stubEmployeeService{
		listFn: func(ctx context.Context, in ports.ListEmployeesInput) (*ports.EmployeePage, error) {
			if in.Page != 2 || in.PageSize != 10 || in.Filter.Department != "Sales" || in.Filter.Role != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			items := make([]*domain.Employee, 0, 10)
			for i := int64(11); i <= 20; i++ {
				items = append(items, &domain.Employee{ID: i, Name: "E", Email: "e@example.com", DateJoined: joined})
			}
			return &ports.EmployeePage{Items: items, Total: 25, Page: 2, PageSize: 10, NextPage: intPtr(3), PrevPage: intPtr(1)}, nil
		},
	}
	handler := NewEmployeeHandler(stub)

	c, rec := newRequestContext(http.MethodGet, "/employees/?page=2&department=Sales", "", plainUser)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Items    []map[string]any `json:"items"`
		Total    int64            `json:"total"`
		Page     int              `json:"page"`
		PageSize int              `json:"page_size"`
		NextPage *int             `json:"next_page"`
		PrevPage *int             `json:"prev_page"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Items) != 10 || resp.Total != 25 || resp.Page != 2 || resp.PageSize != 10 {
		t.Fatalf("unexpected page: %+v", resp)
	}
	if resp.NextPage == nil || *resp.NextPage != 3 || resp.PrevPage == nil || *resp.PrevPage != 1 {
		t.Fatalf("unexpected navigation: next=%v prev=%v", resp.NextPage, resp.PrevPage)
	}
}

func TestEmployeeHandler_List_EmptyPageRendersNulls(t *testing.T) {
	stub := &stubEmployeeService{
		listFn: func(ctx context.Context, in ports.ListEmployeesInput) (*ports.EmployeePage, error) {
			if in.Page != domain.DefaultPage || in.PageSize != domain.DefaultPageSize {
				t.Fatalf("defaults not applied: %+v", in)
			}
			return &ports.EmployeePage{Items: []*domain.Employee{}, Total: 0, Page: 1, PageSize: 10}, nil
		},
	}
	handler := NewEmployeeHandler(stub)

	c, rec := newRequestContext(http.MethodGet, "/employees/", "", plainUser)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	want := `{"items":[],"total":0,"page":1,"page_size":10,"next_page":null,"prev_page":null}` + "\n"
	if got := rec.Body.String(); got != want {
		t.Fatalf("unexpected body:\n got %s\nwant %s", got, want)
	}
}

func TestEmployeeHandler_List_RejectsOutOfRangeQuery(t *testing.T) {
	stub := &stubEmployeeService{
		listFn: func(ctx context.Context, in ports.ListEmployeesInput) (*ports.EmployeePage, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewEmployeeHandler(stub)

	for _, target := range []string{"/employees/?page=0", "/employees/?page_size=101", "/employees/?page_size=0", "/employees/?page=abc"} {
		c, _ := newRequestContext(http.MethodGet, target, "", plainUser)
		var ve *ValidationError
		if err := handler.List(c); !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", target, err)
		}
	}
}

func TestEmployeeHandler_Get(t *testing.T) {
	stub := &stubEmployeeService{
		getFn: func(ctx context.Context, id int64) (*domain.Employee, error) {
			if id != 99 {
				return &domain.Employee{ID: id, Name: "Ana", Email: "ana@example.com", DateJoined: joined}, nil
			}
			return nil, domain.ErrEmployeeNotFound
		},
	}
	handler := NewEmployeeHandler(stub)

	c, rec := newRequestContext(http.MethodGet, "/employees/4", "", plainUser)
	c.SetParamNames("id")
	c.SetParamValues("4")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newRequestContext(http.MethodGet, "/employees/99", "", plainUser)
	c.SetParamNames("id")
	c.SetParamValues("99")
	if err := handler.Get(c); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeHandler_Get_InvalidID(t *testing.T) {
	handler := NewEmployeeHandler(&stubEmployeeService{})

	for _, raw := range []string{"abc", "0", "-1"} {
		c, _ := newRequestContext(http.MethodGet, "/employees/"+raw, "", plainUser)
		c.SetParamNames("id")
		c.SetParamValues(raw)

		var ve *ValidationError
		if err := handler.Get(c); !errors.As(err, &ve) {
			t.Fatalf("id %q: expected ValidationError, got %v", raw, err)
		}
	}
}

func TestEmployeeHandler_Update_PartialPayload(t *testing.T) {
	var got ports.UpdateEmployeeInput
	stub := &stubEmployeeService{
		updateFn: func(ctx context.Context, actor *domain.User, in ports.UpdateEmployeeInput) (*domain.Employee, error) {
			got = in
			return &domain.Employee{ID: in.ID, Name: "Jane", Email: "new@example.com", DateJoined: joined}, nil
		},
	}
	handler := NewEmployeeHandler(stub)

	c, rec := newRequestContext(http.MethodPut, "/employees/3", `{"email":"new@example.com","department":null}`, adminUser)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if got.ID != 3 || got.Name != nil || got.Email == nil || *got.Email != "new@example.com" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if !got.DepartmentSet || got.Department != nil {
		t.Fatalf("department should be cleared: %+v", got)
	}
	if got.RoleSet {
		t.Fatalf("role must stay untouched: %+v", got)
	}
}

func TestEmployeeHandler_Update_Errors(t *testing.T) {
	for _, want := range []error{domain.ErrEmployeeNotFound, domain.ErrEmployeeEmailExists, domain.ErrForbidden} {
		stub := &stubEmployeeService{
			updateFn: func(ctx context.Context, actor *domain.User, in ports.UpdateEmployeeInput) (*domain.Employee, error) {
				return nil, want
			},
		}
		handler := NewEmployeeHandler(stub)

		c, _ := newRequestContext(http.MethodPut, "/employees/3", `{"name":"X"}`, adminUser)
		c.SetParamNames("id")
		c.SetParamValues("3")
		if err := handler.Update(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestEmployeeHandler_Delete(t *testing.T) {
	deleted := int64(0)
	stub := &stubEmployeeService{
		deleteFn: func(ctx context.Context, actor *domain.User, id int64) error {
			if actor != adminUser {
				t.Fatalf("actor not forwarded")
			}
			deleted = id
			return nil
		},
	}
	handler := NewEmployeeHandler(stub)

	c, rec := newRequestContext(http.MethodDelete, "/employees/8", "", adminUser)
	c.SetParamNames("id")
	c.SetParamValues("8")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != 8 {
		t.Fatalf("expected 204 deleting 8, got %d deleting %d", rec.Code, deleted)
	}
}

func TestEmployeeHandler_List_RejectsPageBeyondMaximum(t *testing.T) {
	stub := &stubEmployeeService{
		listFn: func(ctx context.Context, in ports.ListEmployeesInput) (*ports.EmployeePage, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewEmployeeHandler(stub)

	for _, page := range []string{"2147483648", "1844674407370955161"} {
		c, _ := newRequestContext(http.MethodGet, "/employees/?page="+page, "", plainUser)

		var ve *ValidationError
		if err := handler.List(c); !errors.As(err, &ve) {
			t.Fatalf("page %s: expected ValidationError, got %v", page, err)
		}
		if ve.Fields[0].Field != "page" {
			t.Fatalf("page %s: expected error on page, got %+v", page, ve.Fields)
		}
	}
}

func TestEmployeeHandler_List_AcceptsLargestPage(t *testing.T) {
	stub := &stubEmployeeService{
		listFn: func(ctx context.Context, in ports.ListEmployeesInput) (*ports.EmployeePage, error) {
			if in.Page != domain.MaxPage {
				t.Fatalf("unexpected page %d", in.Page)
			}
			return &ports.EmployeePage{Items: []*domain.Employee{}, Page: in.Page, PageSize: in.PageSize}, nil
		},
	}
	handler := NewEmployeeHandler(stub)

	c, rec := newRequestContext(http.MethodGet, "/employees/?page=2147483647", "", plainUser)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestEmployeeHandler_List_LongFiltersPassThrough(t *testing.T) {
	long := strings.Repeat("d", 80)
	stub := &stubEmployeeService{
		listFn: func(ctx context.Context, in ports.ListEmployeesInput) (*ports.EmployeePage, error) {
			if in.Filter.Department != long || in.Filter.Role != long {
				t.Fatalf("filters not forwarded: %+v", in.Filter)
			}
			return &ports.EmployeePage{Items: []*domain.Employee{}, Page: 1, PageSize: 10}, nil
		},
	}
	handler := NewEmployeeHandler(stub)

	c, rec := newRequestContext(http.MethodGet, "/employees/?department="+long+"&role="+long, "", plainUser)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestEmployeeHandler_WrongJSONTypeIsFieldError(t *testing.T) {
	stub := &stubEmployeeService{
		createFn: func(ctx context.Context, actor *domain.User, in ports.CreateEmployeeInput) (*domain.Employee, error) {
			t.Fatalf("create should not be called")
			return nil, nil
		},
		updateFn: func(ctx context.Context, actor *domain.User, in ports.UpdateEmployeeInput) (*domain.Employee, error) {
			t.Fatalf("update should not be called")
			return nil, nil
		},
	}
	handler := NewEmployeeHandler(stub)

	cases := []struct {
		name      string
		method    string
		body      string
		call      func(echo.Context) error
		wantField string
		wantMsg   string
	}{
		{"create name", http.MethodPost, `{"name":5,"email":"jane@example.com"}`, handler.Create, "name", "must be a string"},
		{"create department", http.MethodPost, `{"name":"Jane","email":"jane@example.com","department":["Sales"]}`, handler.Create, "department", "must be a string"},
		{"update email", http.MethodPut, `{"email":true}`, handler.Update, "email", "must be a string"},
		{"update department", http.MethodPut, `{"department":5}`, handler.Update, "department", "must be a string"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newRequestContext(tc.method, "/employees/3", tc.body, adminUser)
			c.SetParamNames("id")
			c.SetParamValues("3")

			var ve *ValidationError
			if err := tc.call(c); !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(ve.Fields) != 1 || ve.Fields[0].Field != tc.wantField || ve.Fields[0].Message != tc.wantMsg {
				t.Fatalf("unexpected details %+v", ve.Fields)
			}
		})
	}
}

func TestEmployeeHandler_MalformedJSONIsBadRequest(t *testing.T) {
	handler := NewEmployeeHandler(&stubEmployeeService{})

	for _, body := range []string{`{"name":`, `["not","an","object"]`} {
		c, _ := newRequestContext(http.MethodPost, "/employees/", body, adminUser)
		if code := httpErrorCode(handler.Create(c)); code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, code)
		}
	}
}
