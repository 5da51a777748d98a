// internal/domain/homework/homework.go
package homework

import (
	"fmt"
)

// Status is a homework review state as reported by the Practicum API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdicts maps every known review status to its human-readable verdict
// sentence. The table is fixed at startup and never modified.
var Verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось.",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// CheckResponse validates the shape of a decoded API response and returns the
// list of homework records it carries. The top-level value must be a JSON
// object and "homeworks" must be a list; a "code" field of
// "not_authenticated" or "UnknownError" means the API itself reported a
// failure. An empty homeworks list is valid and yields an empty slice.
func CheckResponse(payload any) ([]any, error) {
	response, ok := payload.(map[string]any)
	if !ok {
		return nil, ErrResponseNotObject
	}

	if code, ok := response["code"].(string); ok {
		switch code {
		case "not_authenticated":
			return nil, &APIError{Code: code, Message: "ошибка авторизации"}
		case "UnknownError":
			return nil, &APIError{Code: code, Message: "неизвестная ошибка"}
		}
	}

	homeworks, ok := response["homeworks"].([]any)
	if !ok {
		return nil, ErrHomeworksNotList
	}

	return homeworks, nil
}

// ParseStatus interprets a single homework record and builds the notification
// text for it. The record must be an object carrying both "status" and
// "homework_name"; the status must be one of the known review states.
func ParseStatus(record any) (string, error) {
	hw, ok := record.(map[string]any)
	if !ok {
		return "", ErrMalformedReply
	}

	rawStatus, ok := hw["status"]
	if !ok {
		return "", ErrMalformedReply
	}
	rawName, ok := hw["homework_name"]
	if !ok {
		return "", ErrMalformedReply
	}

	status, ok := rawStatus.(string)
	if !ok {
		return "", ErrMalformedReply
	}
	name, ok := rawName.(string)
	if !ok {
		return "", ErrMalformedReply
	}

	verdict, ok := Verdicts[Status(status)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	return fmt.Sprintf("Changed review status of work %q. %s", name, verdict), nil
}
