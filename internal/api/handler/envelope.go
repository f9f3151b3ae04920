package handler

import (
	"github.com/labstack/echo/v4"
)

// Meta is the status block present on every response.
type Meta struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Envelope is the stable JSON shape of every API response:
// {"meta": {...}, "result": ...}.
type Envelope struct {
	Meta   Meta `json:"meta"`
	Result any  `json:"result,omitempty"`
}

func respond(c echo.Context, code int, message string, result any) error {
	return c.JSON(code, Envelope{Meta: Meta{Success: true, Message: message}, Result: result})
}

// Fail renders an error envelope. The central error handler is its only
// caller outside this package.
func Fail(c echo.Context, code int, message string, errs []string) error {
	return c.JSON(code, Envelope{Meta: Meta{Success: false, Message: message, Errors: errs}})
}

// pagination mirrors domain.Page without the items.
type pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
	Limit       int   `json:"limit"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

func newPagination(page, limit, totalPages int, total int64) pagination {
	return pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		Limit:       limit,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
