package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	errs "github.com/servly/admin-console/internal/errors"
)

// Envelope is the uniform wire wrapper every CRUD endpoint responds with.
// Business-rule failures arrive inside a nominally successful transport
// response: success is false and the human-readable reason sits in data
// (when it is a string) or message. Callers must check success even on 200.
type Envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Reason extracts the display message for a failed envelope, preferring a
// string payload in data over the message field.
func (e *Envelope) Reason() string {
	var s string
	if len(e.Data) > 0 && json.Unmarshal(e.Data, &s) == nil && s != "" {
		return s
	}
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}

// BusinessError is an application-level rejection reported inside an
// otherwise successful transport response.
type BusinessError struct {
	Code    int
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

func (e *BusinessError) Unwrap() error { return errs.ErrBusinessRule }

// HTTPError is a non-2xx transport outcome, carrying the envelope message
// when one could be decoded.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// Get fetches path and decodes the envelope's data into T.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return roundTrip[T](ctx, c, http.MethodGet, path, nil, "")
}

// Post sends body as JSON and decodes the envelope's data into T.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var zero T
	buf, err := json.Marshal(body)
	if err != nil {
		return zero, errors.Wrapf(err, "[api.Post] encoding body for %s", path)
	}
	return roundTrip[T](ctx, c, http.MethodPost, path, bytes.NewReader(buf), "application/json")
}

// Put sends body as JSON and decodes the envelope's data into T.
func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var zero T
	buf, err := json.Marshal(body)
	if err != nil {
		return zero, errors.Wrapf(err, "[api.Put] encoding body for %s", path)
	}
	return roundTrip[T](ctx, c, http.MethodPut, path, bytes.NewReader(buf), "application/json")
}

// Delete issues a DELETE and checks the envelope for embedded failures. The
// envelope's data carries nothing useful on success, so none is returned.
func Delete(ctx context.Context, c *Client, path string) error {
	_, err := roundTrip[json.RawMessage](ctx, c, http.MethodDelete, path, nil, "")
	return err
}

// GetRaw fetches path and decodes the whole body directly into T. The
// dashboard metrics endpoints respond with bare DTOs, not envelopes.
func GetRaw[T any](ctx context.Context, c *Client, path string) (T, error) {
	var zero T

	resp, err := c.Do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, errors.Wrapf(err, "[api.GetRaw] reading %s", path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, &HTTPError{Status: resp.StatusCode, Message: messageFrom(body)}
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, errors.Wrapf(errs.ErrBadEnvelope, "[api.GetRaw] decoding %s: %v", path, err)
	}
	return out, nil
}

func roundTrip[T any](ctx context.Context, c *Client, method, path string, body io.Reader, contentType string) (T, error) {
	var zero T

	resp, err := c.Do(ctx, method, path, body, contentType)
	if err != nil {
		return zero, err
	}
	return decodeEnvelope[T](resp, method, path)
}

func decodeEnvelope[T any](resp *http.Response, method, path string) (T, error) {
	var zero T

	defer resp.Body.Close() //nolint:errcheck
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, errors.Wrapf(err, "[api.decodeEnvelope] reading %s %s", method, path)
	}

	var env Envelope
	envErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if envErr == nil {
			msg = env.Reason()
		}
		return zero, &HTTPError{Status: resp.StatusCode, Message: msg}
	}
	if envErr != nil {
		return zero, errors.Wrapf(errs.ErrBadEnvelope, "[api.decodeEnvelope] %s %s: %v", method, path, envErr)
	}
	if !env.Success {
		return zero, &BusinessError{Code: env.Code, Message: env.Reason()}
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return zero, nil
	}
	if err := json.Unmarshal(env.Data, &zero); err != nil {
		var out T
		return out, errors.Wrapf(errs.ErrBadEnvelope, "[api.decodeEnvelope] data of %s %s: %v", method, path, err)
	}
	return zero, nil
}

func messageFrom(body []byte) string {
	var env Envelope
	if json.Unmarshal(body, &env) == nil {
		return env.Reason()
	}
	return ""
}
