package intake

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/vouch/internal/judgements"
	"github.com/JaimeStill/vouch/internal/photos"
)

// Stage failure categories.
var (
	ErrValidation  = errors.New("invalid upload")
	ErrStorage     = errors.New("photo storage failed")
	ErrExtraction  = errors.New("text extraction failed")
	ErrPersistence = errors.New("judgement could not be saved")
)

var errInternal = errors.New("internal server error")

// StageError reports the terminal state a pipeline run stopped in and its cause.
// It matches both the stage category (ErrValidation, ErrStorage, ...) and the cause.
type StageError struct {
	State State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.State, e.Err)
}

func (e *StageError) Unwrap() []error {
	if kind := e.kind(); kind != nil {
		return []error{kind, e.Err}
	}
	return []error{e.Err}
}

func (e *StageError) kind() error {
	switch e.State {
	case ValidationFailed:
		return ErrValidation
	case StorageFailed:
		return ErrStorage
	case ExtractionFailed:
		return ErrExtraction
	case PersistenceFailed:
		return ErrPersistence
	}
	return nil
}

// MapHTTPStatus maps intake errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		if errors.Is(err, photos.ErrTooLarge) {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusBadRequest
	case errors.Is(err, ErrStorage):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrExtraction):
		return http.StatusBadGateway
	case errors.Is(err, judgements.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// publicError returns the error exposed in a response body. Client errors keep
// their cause; server errors are reduced to their category.
func publicError(err error) error {
	var se *StageError
	switch {
	case errors.Is(err, ErrValidation) && errors.As(err, &se):
		return se.Err
	case errors.Is(err, judgements.ErrNotFound):
		return judgements.ErrNotFound
	case errors.Is(err, ErrStorage):
		return ErrStorage
	case errors.Is(err, ErrExtraction):
		return ErrExtraction
	case errors.Is(err, ErrPersistence):
		return ErrPersistence
	}
	return errInternal
}
