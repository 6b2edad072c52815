package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/flight-emissions/internal/emissions"
)

var validate = validator.New()

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// maxErrorBody bounds how much of a failed response body is read for its message.
const maxErrorBody = 64 << 10

// newBreaker returns a circuit breaker that trips after repeated network failures.
// HTTP error statuses do not count: only requests that never got a response do.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// do executes req exactly once through the circuit breaker.
// Failures to get any response become TransportErrors; the response is returned
// whatever its status code.
func do(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) (*http.Response, error) {
	if client == nil {
		return nil, &emissions.TransportError{Message: "Failed to reach emissions service", Err: errNoHTTPClient}
	}

	// Ensure the request obeys context cancellation.
	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		return client.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &emissions.TransportError{
				Message: "Emissions service is temporarily unavailable",
				Err:     fmt.Errorf("%w: %v", errCircuitOpen, err),
			}
		}
		return nil, &emissions.TransportError{Message: "Failed to reach emissions service", Err: err}
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// newJSONRequest builds a POST request carrying body as JSON.
func newJSONRequest(url string, body any) (*http.Request, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// upstreamFailure builds an UpstreamError from a non-2xx response, taking the
// message from the body via extract when the upstream supplied one.
func upstreamFailure(resp *http.Response, extract func([]byte) string, fallback string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := ""
	if len(body) > 0 {
		msg = extract(body)
	}
	if msg == "" {
		msg = fallback
	}
	return &emissions.UpstreamError{Message: msg, StatusCode: resp.StatusCode}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// probe issues a GET against url; any HTTP response counts as reachable.
// cb must not be the breaker guarding submissions.
func probe(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, url string) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := do(ctx, client, cb, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return nil
}
