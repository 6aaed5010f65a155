package roadsight

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/roadsight/roadsight-go/models"
)

// Kind classifies a transport failure.
type Kind int

const (
	// KindNetwork means the request never got an HTTP response
	// (connection refused, DNS failure, reset).
	KindNetwork Kind = iota + 1
	// KindTimeout means the request or its context deadline expired.
	KindTimeout
	// KindRateLimited is HTTP 429.
	KindRateLimited
	// KindClient is any other 4xx. Never retried.
	KindClient
	// KindServer is any 5xx.
	KindServer
	// KindMalformed means the response body was not valid JSON. Terminal.
	KindMalformed
	// KindUnavailable means the circuit breaker is open and the call
	// failed fast without reaching the backend.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindRateLimited:
		return "rate_limited"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindMalformed:
		return "malformed"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is the classified failure returned by the transport layer.
type Error struct {
	Kind       Kind
	StatusCode int           // 0 when no HTTP response was received
	Message    string
	RequestID  string        // X-Request-ID sent with the failed request
	RetryAfter time.Duration // from a 429 Retry-After header, 0 otherwise
	Cause      error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("roadsight: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("roadsight: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the failure is transient and worth another
// attempt. 4xx other than 429 and malformed bodies are terminal.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindNetwork, KindTimeout, KindRateLimited, KindServer:
		return true
	default:
		return false
	}
}

// AsError unwraps err into a *Error if the chain contains one.
func AsError(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ErrSuperseded is returned by Searcher when a newer search was issued
// before this one resolved.
var ErrSuperseded = errors.New("roadsight: search superseded by a newer request")

// classifyStatus maps a non-2xx HTTP response to an Error. The body may
// carry a JSON error message; anything unparseable falls back to a
// generic message for the status class.
func classifyStatus(statusCode int, body []byte, header http.Header) *Error {
	var er models.ErrorResponse
	message := ""
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		message = er.Error
	}
	if message == "" {
		switch {
		case statusCode == http.StatusTooManyRequests:
			message = "rate limit exceeded"
		case statusCode >= 500:
			message = "server error"
		default:
			message = http.StatusText(statusCode)
		}
	}

	e := &Error{StatusCode: statusCode, Message: message}
	switch {
	case statusCode == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.RetryAfter = parseRetryAfter(header.Get("Retry-After"))
	case statusCode >= 500:
		e.Kind = KindServer
	default:
		e.Kind = KindClient
	}
	return e
}

// parseRetryAfter handles the delay-seconds form only; HTTP-date values
// yield 0 and the normal backoff applies.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
