package dto

import (
	"net/http"
	"strings"
)

// General error codes used by the HTTP layer itself. Domain errors carry
// their own codes and are mapped through HTTPStatus below.
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
)

// errorCodeHTTPStatus maps well-known domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	"NOT_FOUND":       http.StatusNotFound,
	"LINE_NOT_FOUND":  http.StatusNotFound,
	"SPLIT_NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_STATE":         http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":    http.StatusUnprocessableEntity,
	"EXCEEDS_OUTSTANDING":   http.StatusUnprocessableEntity,
	"NO_LINES":              http.StatusUnprocessableEntity,
	"NO_CUSTOMER":           http.StatusUnprocessableEntity,
	"NO_PARTICIPANTS":       http.StatusUnprocessableEntity,
	"NO_CHANGE":             http.StatusUnprocessableEntity,
	"SETTLED_SPLITS":        http.StatusUnprocessableEntity,
	"SPLITS_EXCEED_EXPENSE": http.StatusUnprocessableEntity,
}

// HTTPStatus returns the HTTP status code for a domain error code.
// Codes not in the explicit map fall back on naming conventions:
// INVALID_* codes are client errors, DUPLICATE_* codes are conflicts.
func HTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "DUPLICATE_"):
		return http.StatusConflict
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
