// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// maxErrorBodyBytes caps how much of a failed response body is logged.
const maxErrorBodyBytes = 2048

// httpDoer is the slice of *http.Client the client needs; tests swap it out.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls how the client reaches the Practicum API.
type Config struct {
	Endpoint   string
	Token      string // OAuth credential for the Authorization header
	HTTPClient *http.Client
	Timeout    time.Duration // applied only when HTTPClient is nil
}

// Client queries the Practicum homework-statuses endpoint.
type Client struct {
	endpoint   string
	token      string
	httpClient httpDoer
	logger     *logrus.Logger
}

// NewClient constructs a Practicum API client with the provided configuration.
func NewClient(cfg Config, logger *logrus.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		token:      cfg.Token,
		httpClient: httpClient,
		logger:     logger,
	}
}

// HomeworkStatuses issues an authenticated GET with from_date set to fromDate
// and returns the decoded JSON body verbatim. Transport failures come back as
// *RequestError, non-200 statuses as *UnreachableEndpointError after the
// status, headers and body have been logged.
func (c *Client) HomeworkStatuses(ctx context.Context, fromDate int64) (any, error) {
	c.logger.Debugf("Requesting homework statuses since %d.", fromDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error building practicum request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	q := req.URL.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		bodyText := strings.TrimSpace(string(body))
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"headers":     resp.Header,
			"body":        bodyText,
		}).Error("Practicum endpoint is unreachable.")
		return nil, &UnreachableEndpointError{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       bodyText,
		}
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error decoding practicum response: %w", err)
	}

	c.logger.Debug("Practicum response received.")
	return payload, nil
}
