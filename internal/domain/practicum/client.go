package practicum

import "context"

// Client defines an interface for querying the Practicum homework-review API.
// This helps in decoupling the review cycle from the concrete HTTP client.
type Client interface {
	// HomeworkStatuses fetches review statuses changed at or after fromDate
	// (Unix seconds) and returns the decoded JSON body verbatim. Shape
	// validation is the caller's concern.
	HomeworkStatuses(ctx context.Context, fromDate int64) (any, error)
}
