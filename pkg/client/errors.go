// AngelaMos | 2026
// errors.go

package client

import (
	"errors"
	"fmt"
	"net/http"
)

const codeMemberLimitExceeded = "member_limit_exceeded"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrNoSession           = errors.New("no active session")
	ErrMemberLimitExceeded = errors.New("team would exceed the member limit")
)

// APIError is a non-2xx answer from the API. errors.Is matches it against
// the package sentinels by status and error code.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %d %s", e.Status, e.Code)
	}
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrMemberLimitExceeded:
		return e.Code == codeMemberLimitExceeded
	}
	return false
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
