package handler

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// pagination is the paging metadata returned with every list response.
type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// listResponse wraps one page of results.
type listResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination pagination `json:"pagination"`
}

func newListResponse[T any](data []T, p domain.PaginationParams, total int64) listResponse[T] {
	if data == nil {
		data = []T{}
	}
	return listResponse[T]{
		Data:       data,
		Pagination: pagination{Page: p.Page, Limit: p.Limit, Total: total},
	}
}

// bindPagination reads the optional ?page= and ?limit= query parameters.
func bindPagination(r *http.Request) (domain.PaginationParams, error) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		return domain.PaginationParams{}, fmt.Errorf("%w: page: %v", domain.ErrValidation, err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		return domain.PaginationParams{}, fmt.Errorf("%w: limit: %v", domain.ErrValidation, err)
	}
	return domain.NewPaginationParams(page, limit), nil
}

// bindString reads an optional string query parameter.
func bindString(r *http.Request, name string) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrValidation, name, err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}
