// internal/domain/homework/errors.go
package homework

import "fmt"

// Shape errors reported by CheckResponse.
var ErrResponseNotObject = fmt.Errorf("practicum response is not a JSON object")
var ErrHomeworksNotList = fmt.Errorf("practicum response field \"homeworks\" is not a list")

// Record errors reported by ParseStatus.
var ErrMalformedReply = fmt.Errorf("homework record is missing \"status\" or \"homework_name\"")
var ErrUnknownStatus = fmt.Errorf("unknown homework status")

// APIError is a failure the API reported inside an otherwise well-formed
// 200 response, via its "code" field.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("practicum API error (code=%s): %s", e.Code, e.Message)
}
