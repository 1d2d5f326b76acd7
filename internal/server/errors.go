package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/navinkumarg9/pro-resume-mentor/internal/export"
	"github.com/navinkumarg9/pro-resume-mentor/internal/library"
	"github.com/navinkumarg9/pro-resume-mentor/internal/schemas"
	"github.com/navinkumarg9/pro-resume-mentor/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a collaborator the route needs was not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not available", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		unavailable   *ErrUnavailable
		commandErr    *store.CommandError
		schemaErr     *schemas.ValidationError
		importErr     *library.ImportError
		exportErr     *export.Error
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &commandErr),
		errors.Is(err, library.ErrEmptyName), errors.Is(err, export.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.Is(err, library.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, export.ErrExportInProgress):
		return http.StatusConflict
	case errors.As(err, &schemaErr), errors.As(err, &importErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
