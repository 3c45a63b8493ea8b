package handler

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// ErrorResponse is the standard error envelope returned on all 4xx/5xx responses.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// optionalString distinguishes an absent JSON field from an explicit null.
// Set is true whenever the key was present; Value is nil for null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// optionalStringValue exposes the wrapped string to the validator; nil for
// absent or null so omitempty skips it.
func optionalStringValue(field reflect.Value) any {
	o, ok := field.Interface().(optionalString)
	if !ok || o.Value == nil {
		return nil
	}
	return *o.Value
}

// --- Request / Response types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type createEmployeeRequest struct {
	Name       string  `json:"name"        validate:"required,max=100"`
	Email      string  `json:"email"       validate:"required,email,max=255"`
	Department *string `json:"department"  validate:"omitnil,max=50"`
	Role       *string `json:"role"        validate:"omitnil,max=50"`
	DateJoined *string `json:"date_joined" validate:"omitnil,datetime=2006-01-02" example:"2024-02-01"`
}

// updateEmployeeRequest applies only the keys present in the body. A null
// name or email is ignored; a null department or role clears it.
type updateEmployeeRequest struct {
	Name       *string        `json:"name"       validate:"omitnil,min=1,max=100"`
	Email      *string        `json:"email"      validate:"omitnil,email,max=255"`
	Department optionalString `json:"department" validate:"omitempty,max=50" swaggertype:"string"`
	Role       optionalString `json:"role"       validate:"omitempty,max=50" swaggertype:"string"`
}

type listEmployeesQuery struct {
	Page       int    `query:"page"      validate:"min=1,max=2147483647"`
	PageSize   int    `query:"page_size" validate:"min=1,max=100"`
	Department string `query:"department"`
	Role       string `query:"role"`
}

type employeeResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
	DateJoined string  `json:"date_joined" example:"2024-02-01"`
}

type employeePageResponse struct {
	Items    []employeeResponse `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	NextPage *int               `json:"next_page"`
	PrevPage *int               `json:"prev_page"`
}
