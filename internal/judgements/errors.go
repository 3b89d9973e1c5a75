package judgements

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound       = errors.New("judgement not found")
	ErrDuplicate      = errors.New("judgement already exists")
	ErrInvalidCommand = errors.New("invalid judgement")
	ErrPersistence    = errors.New("judgement persistence failed")
)

// MapHTTPStatus maps judgement errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidCommand) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
