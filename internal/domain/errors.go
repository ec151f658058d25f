package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Base error categories. Feature packages wrap these so callers can branch
// with errors.Is on either the category or the specific failure.
var (
	ErrValidation   = errors.New("validation")
	ErrNotFound     = errors.New("not_found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrFull         = errors.New("full")
	ErrInternal     = errors.New("internal")
)

var (
	ErrSelfRequest      = fmt.Errorf("%w: cannot target yourself", ErrValidation)
	ErrAlreadyFriends   = fmt.Errorf("%w: already friends", ErrConflict)
	ErrDuplicateRequest = fmt.Errorf("%w: request already pending", ErrConflict)
	ErrAlreadyJoined    = fmt.Errorf("%w: already a participant", ErrConflict)
	ErrInvalidState     = fmt.Errorf("%w: invalid state for this action", ErrConflict)
	ErrOwnerCannotLeave = fmt.Errorf("%w: owner cannot leave, cancel instead", ErrConflict)
)

// HTTPStatus maps a domain error to the status the routing layer should
// respond with. Unknown errors are treated as internal failures.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrFull):
		return http.StatusConflict
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
