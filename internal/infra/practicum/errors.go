// internal/infra/practicum/errors.go
package practicum

import (
	"fmt"
	"net/http"
)

// RequestError is a transport-level failure while calling the Practicum API
// (connection refused, timeout, DNS). It keeps the original error reachable
// through Unwrap.
type RequestError struct {
	cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("ошибка при запросе к практикуму: %v", e.cause)
}

func (e *RequestError) Unwrap() error {
	return e.cause
}

// UnreachableEndpointError means the endpoint answered with a non-200 status.
type UnreachableEndpointError struct {
	StatusCode int
	Header     http.Header
	Body       string
}

func (e *UnreachableEndpointError) Error() string {
	return fmt.Sprintf("эндпоинт практикума не доступен, код запроса: %d", e.StatusCode)
}
