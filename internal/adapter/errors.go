// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrNotReady means the requested DIP has not finished dissemination
	// yet. Callers are expected to poll and retry after a delay.
	ErrNotReady = errors.New("dip is not ready")

	// ErrOffsetMismatch is the sentinel matched by [OffsetError] via
	// errors.Is. An offset mismatch is not recoverable without resuming
	// from the server-reported offset.
	ErrOffsetMismatch = errors.New("upload offset mismatch")
)

// TransportError wraps a connection-level failure (DNS, dial, TLS,
// timeout). The request never produced an HTTP status.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response from the service, carrying the status
// code and the (trimmed) response body.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// IsStatus reports whether err is a [StatusError] with the given status
// code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// OffsetError reports a desynchronization between the client's upload
// offset and the one acknowledged by the server. Got is -1 when the server
// did not report an offset.
type OffsetError struct {
	Expected int64
	Got      int64
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("upload offset mismatch: expected %d, server reported %d", e.Expected, e.Got)
}

func (e *OffsetError) Is(target error) bool { return target == ErrOffsetMismatch }

// statusError maps a completed resty response to a *StatusError, or nil
// for a 2xx status.
func statusError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	return &StatusError{
		Method:     resp.Request.Method,
		URL:        resp.Request.URL,
		StatusCode: resp.StatusCode(),
		Body:       body,
	}
}
