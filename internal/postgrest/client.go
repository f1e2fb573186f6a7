// Package postgrest stores folders through a PostgREST endpoint, as exposed by
// hosted Postgres backends, instead of a direct database connection.
package postgrest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/lernapp-2025/studycards-v3/internal/config"
)

const (
	acceptObject = "application/vnd.pgrst.object+json"
	retryDelay   = 100 * time.Millisecond
)

// StatusError is a non-2xx PostgREST response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.Status, e.Body)
}

// Client issues PostgREST requests with the service credentials attached.
type Client struct {
	http     *resty.Client
	attempts uint
}

// NewClient creates a Client for the endpoint in cfg.
func NewClient(cfg config.PostgRESTConfig) *Client {
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(cfg.URL, "/"))
	c.SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		c.SetHeader("apikey", cfg.APIKey)
		c.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	return &Client{http: c, attempts: max(cfg.RetryAttempts, 1)}
}

func (c *Client) Close() error {
	return c.http.Close()
}

// request describes one call. Only idempotent methods are retried.
type request struct {
	method string
	path   string
	query  map[string]string
	header map[string]string
	body   any
	result any
}

func (c *Client) do(ctx context.Context, req request) (*resty.Response, error) {
	var resp *resty.Response
	call := func() error {
		r := c.http.R().
			SetContext(ctx).
			SetQueryParams(req.query).
			SetHeaders(req.header)
		if req.body != nil {
			r.SetBody(req.body)
		}
		if req.result != nil {
			r.SetResult(req.result)
		}

		var err error
		resp, err = r.Execute(req.method, req.path)
		if err != nil {
			return fmt.Errorf("%s %s: %w", req.method, req.path, err)
		}
		if resp.IsError() {
			return &StatusError{Status: resp.StatusCode(), Body: resp.String()}
		}
		return nil
	}

	if !idempotent(req.method) {
		return resp, call()
	}
	err := retry.Do(
		func() error {
			err := call()
			if err != nil && !isRetryable(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	return resp, err
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPatch:
		return true
	}
	return false
}

// isRetryable reports whether err is a transport failure, a server error or rate limiting.
func isRetryable(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return true
	}
	return statusErr.Status >= 500 || statusErr.Status == http.StatusTooManyRequests
}

// count reads the total from a Content-Range header such as "0-24/120" or "*/0".
func count(resp *resty.Response) (int, error) {
	contentRange := resp.Header().Get("Content-Range")
	_, total, ok := strings.Cut(contentRange, "/")
	if !ok || total == "*" {
		return 0, fmt.Errorf("missing count in Content-Range %q", contentRange)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("parse Content-Range %q: %w", contentRange, err)
	}
	return n, nil
}

// notFound maps PostgREST's 406, returned when a singular request matches no
// row, to the given sentinel.
func notFound(err, sentinel error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotAcceptable {
		return sentinel
	}
	return err
}

func eq(v string) string {
	return "eq." + v
}
