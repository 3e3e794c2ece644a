// Package errors renders API failures as RFC 7807 problem documents.
package errors

import (
	"net/http"
)

// Problem is an RFC 7807 problem document (https://www.rfc-editor.org/rfc/rfc7807).
type Problem struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Status   int            `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	Fields   map[string]any `json:"invalidParams,omitempty"`
}

func (p Problem) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return p.Title + ": " + p.Detail
}

// Problem type URIs, relative so a deployment can prefix its own base.
const (
	typeValidation   = "/problems/validation"
	typeInvalidID    = "/problems/invalid-identifier"
	typeNotFound     = "/problems/not-found"
	typeStateChange  = "/problems/illegal-state-change"
	typeStock        = "/problems/insufficient-stock"
	typeForbidden    = "/problems/forbidden"
	typeUnauthorized = "/problems/unauthenticated"
	typeInternal     = "/problems/internal"
)

// Validation reports a 400 caused by malformed or invalid input. fields may be
// nil when no per-field breakdown exists.
func Validation(detail string, fields map[string]any) Problem {
	return Problem{
		Type:   typeValidation,
		Title:  "Invalid Request",
		Status: http.StatusBadRequest,
		Detail: detail,
		Fields: fields,
	}
}

// InvalidID reports a 400 caused by a malformed resource identifier.
func InvalidID(detail string) Problem {
	return Problem{
		Type:   typeInvalidID,
		Title:  "Invalid Identifier",
		Status: http.StatusBadRequest,
		Detail: detail,
	}
}

// NotFound reports a 404.
func NotFound(detail string) Problem {
	return Problem{
		Type:   typeNotFound,
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: detail,
	}
}

// StateConflict reports a 409 caused by an illegal lifecycle transition.
func StateConflict(detail string) Problem {
	return Problem{
		Type:   typeStateChange,
		Title:  "Illegal State Change",
		Status: http.StatusConflict,
		Detail: detail,
	}
}

// InsufficientStock reports a 409 caused by a stock shortage.
func InsufficientStock(detail string) Problem {
	return Problem{
		Type:   typeStock,
		Title:  "Insufficient Stock",
		Status: http.StatusConflict,
		Detail: detail,
	}
}

// Forbidden reports a 403 for an authenticated caller acting outside its role.
func Forbidden(detail string) Problem {
	return Problem{
		Type:   typeForbidden,
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: detail,
	}
}

// Unauthenticated reports a 401 when caller identity is missing.
func Unauthenticated(detail string) Problem {
	return Problem{
		Type:   typeUnauthorized,
		Title:  "Unauthenticated",
		Status: http.StatusUnauthorized,
		Detail: detail,
	}
}

// Internal reports a 500. The detail is intentionally generic so server
// internals never leak to clients.
func Internal() Problem {
	return Problem{
		Type:   typeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: "an unexpected error occurred",
	}
}
