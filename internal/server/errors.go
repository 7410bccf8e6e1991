package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/fm-scout/internal/ingestion"
	"github.com/jonathan/fm-scout/internal/ranking"
	"github.com/jonathan/fm-scout/internal/report"
	"github.com/jonathan/fm-scout/internal/similarity"
)

// ErrNotLoaded indicates the requested table has not been loaded
type ErrNotLoaded struct {
	Origin string
}

func (e *ErrNotLoaded) Error() string {
	return fmt.Sprintf("no %s table loaded", e.Origin)
}

// ErrNotFound indicates a named resource does not exist
type ErrNotFound struct {
	Kind string
	Name string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature that needs configuration the server lacks
type ErrUnavailable struct {
	Message string
}

func (e *ErrUnavailable) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code and error code for an error
func HTTPStatus(err error) (int, string) {
	var (
		validation  *ErrValidation
		notLoaded   *ErrNotLoaded
		notFound    *ErrNotFound
		unavailable *ErrUnavailable
		fields      validator.ValidationErrors
		rankErr     *ranking.ValidationError
		simErr      *similarity.ValidationError
		ambiguous   *similarity.AmbiguousError
		noReference *similarity.NotFoundError
		apiCall     *report.APICallError
		badReview   *report.ParseError
		badExport   *ingestion.SchemaError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, "BAD_REQUEST"
	case errors.As(err, &notLoaded), errors.As(err, &notFound), errors.As(err, &noReference):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.As(err, &fields), errors.As(err, &rankErr), errors.As(err, &simErr), errors.As(err, &ambiguous),
		errors.As(err, &badExport):
		return http.StatusUnprocessableEntity, "VALIDATION_FAILED"
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable, "UNAVAILABLE"
	case errors.As(err, &apiCall), errors.As(err, &badReview):
		return http.StatusBadGateway, "UPSTREAM_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
