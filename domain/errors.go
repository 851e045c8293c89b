package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
)

// BadRequestError marks error kinds that map to HTTP 400. Implemented by the
// user-facing orderbook error types (invalid order, invalid range, claim
// preconditions).
type BadRequestError interface {
	error
	IsBadRequest()
}

// GetStatusCode returns status code given error
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var badRequest BadRequestError
	if errors.As(err, &badRequest) {
		return http.StatusBadRequest
	}

	switch err {
	case ErrInternalServerError:
		return http.StatusInternalServerError
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadParamInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// SameDenomError represents an error when a market is configured with the
// same base and quote denom.
type SameDenomError struct {
	DenomA string
	DenomB string
}

// Error implements the error interface.
func (e SameDenomError) Error() string {
	return fmt.Sprintf("denom a (%s) equals denom b (%s)", e.DenomA, e.DenomB)
}
