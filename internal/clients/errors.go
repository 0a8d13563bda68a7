package clients

import (
	"errors"
	"fmt"

	"shop_client/internal/domain"
)

const (
	DefaultErrorMessage = "An error occurred"
	NetworkErrorMessage = "Network error. Please check your connection."
)

// ErrCancelled is returned when the caller's context was cancelled before the
// response arrived. It is not a failure and is never wrapped in an APIError.
var ErrCancelled = errors.New("request cancelled")

// Kind classifies an APIError.
type Kind int

const (
	KindAPI Kind = iota
	KindNetwork
	KindUnauthenticated
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindValidation:
		return "validation"
	default:
		return "api"
	}
}

// TransportError is a raw transport outcome: Status is 0 when no response
// was received, otherwise the HTTP status of a non-2xx response.
type TransportError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("transport: no response: %v", e.Err)
	}
	return fmt.Sprintf("transport: status %d", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is the single failure shape callers see.
type APIError struct {
	Status  int
	Message string
	Errors  []domain.FieldError

	kind  Kind
	cause error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.cause }

func (e *APIError) Kind() Kind { return e.kind }

func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func IsUnauthenticated(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.kind == KindUnauthenticated
}
