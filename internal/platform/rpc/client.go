// Package rpc is the envelope-aware HTTP client used for every required
// service-to-service call. Calls run through a circuit breaker and are
// single-attempt: there are no retries anywhere in the saga.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/anshmittal0811/Royal-Commerce/internal/platform/api"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/identity"
)

var (
	// ErrNotFound maps a downstream 404 onto a sentinel the caller can
	// translate into its own not-found error.
	ErrNotFound = errors.New("remote resource not found")
	// ErrConflict maps a downstream 409 (insufficient stock, not in cart,
	// empty cart) onto a sentinel; the envelope message carries the detail.
	ErrConflict = errors.New("remote operation rejected")
)

// CallError marks a failed remote call on a required saga step: transport
// error, downstream 5xx, or open circuit. Callers surface it as a
// 502-equivalent.
type CallError struct {
	Service string
	Op      string
	Err     error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("call %s.%s: %v", e.Service, e.Op, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

type Client struct {
	service string
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*api.Envelope]
}

// NewClient builds a client for one downstream service. The breaker only
// counts transport-level failures; business rejections (404/409) pass
// through without tripping it.
func NewClient(service, baseURL string, timeout time.Duration) *Client {
	settings := gobreaker.Settings{
		Name: service,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict)
		},
	}
	return &Client{
		service: service,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[*api.Envelope](settings),
	}
}

func (c *Client) Get(ctx context.Context, op, path string, out interface{}) error {
	return c.do(ctx, op, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, op, path string, body, out interface{}) error {
	return c.do(ctx, op, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, op, path string, body, out interface{}) error {
	return c.do(ctx, op, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, op, path string, out interface{}) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &CallError{Service: c.service, Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &CallError{Service: c.service, Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if id, ok := identity.FromContext(ctx); ok {
		identity.ApplyHeaders(req.Header, id)
	}

	env, err := c.breaker.Execute(func() (*api.Envelope, error) {
		return c.roundTrip(req)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
			return err
		}
		return &CallError{Service: c.service, Op: op, Err: err}
	}

	if out != nil {
		if err := env.DecodeData(out); err != nil {
			return &CallError{Service: c.service, Op: op, Err: err}
		}
	}
	return nil
}

func (c *Client) roundTrip(req *http.Request) (*api.Envelope, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env api.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope (http %d): %w", resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, env.Message)
	case resp.StatusCode == http.StatusConflict:
		return nil, fmt.Errorf("%w: %s", ErrConflict, env.Message)
	case resp.StatusCode >= 400 || !env.IsSuccess():
		return nil, fmt.Errorf("downstream returned %s (http %d): %s", env.Status, resp.StatusCode, env.Message)
	}
	return &env, nil
}
