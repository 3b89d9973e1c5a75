package photos

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidImage = errors.New("unsupported image: jpg, jpeg, or png required")
	ErrTooLarge     = errors.New("image exceeds maximum upload size")
	ErrStorage      = errors.New("photo storage unavailable")
)

// IsRejected reports whether err came from validating the upload rather
// than from storing it.
func IsRejected(err error) bool {
	return errors.Is(err, ErrInvalidImage) || errors.Is(err, ErrTooLarge)
}

// MapHTTPStatus maps photo errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, ErrStorage):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
