package roadsight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// RetryPolicy controls how transient transport failures are retried.
// Attempts counts the initial request, so MaxAttempts=3 means at most
// two retries.
type RetryPolicy struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	JitterFraction float64
}

// DefaultRetryPolicy returns the shared policy: 3 attempts, exponential
// backoff starting at 1s, capped at 10s, with ±10% jitter.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		BaseDelay:      1 * time.Second,
		MaxDelay:       10 * time.Second,
		JitterFraction: 0.10,
	}
}

// delay computes the backoff before retry number attempt (0-based).
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay * time.Duration(1<<uint(attempt))
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	if p.JitterFraction > 0 {
		jitter := (jitterRand.Float64()*2 - 1) * p.JitterFraction
		d = time.Duration(float64(d) * (1 + jitter))
	}
	return d
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

var jitterRand = &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}

// transport performs HTTP calls against the backend with retry and a
// circuit breaker. It is the only place requests are issued.
type transport struct {
	baseURL    string
	httpClient *http.Client
	policy     RetryPolicy
	breaker    *gobreaker.CircuitBreaker
	log        *logrus.Logger
}

func newTransport(baseURL string, httpClient *http.Client, policy RetryPolicy, log *logrus.Logger) *transport {
	settings := gobreaker.Settings{
		Name:        "roadsight-backend",
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &transport{
		baseURL:    baseURL,
		httpClient: httpClient,
		policy:     policy,
		breaker:    gobreaker.NewCircuitBreaker(settings),
		log:        log,
	}
}

// payload is one prepared request body. Bodies must be replayable across
// retries, so they are held as bytes and re-wrapped per attempt.
type payload struct {
	contentType string
	body        []byte
}

func jsonPayload(v interface{}) (payload, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return payload{}, fmt.Errorf("marshal request body: %w", err)
	}
	return payload{contentType: "application/json", body: b}, nil
}

// do issues method path against the backend, retrying per the policy,
// and decodes a 2xx JSON body into out. Failures come back as *Error.
// Only transport-level failures count against the circuit breaker;
// terminal 4xx and malformed bodies are the caller's problem, not a
// sign the backend is down.
func (t *transport) do(ctx context.Context, method, path string, p payload, out interface{}) error {
	requestID := uuid.NewString()

	var terminal *Error
	_, err := t.breaker.Execute(func() (interface{}, error) {
		if e := t.doAttempts(ctx, method, path, p, out, requestID); e != nil {
			if ce, ok := AsError(e); ok && !ce.Retryable() {
				terminal = ce
				return nil, nil
			}
			return nil, e
		}
		return nil, nil
	})
	if err == nil {
		if terminal != nil {
			return terminal
		}
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &Error{
			Kind:      KindUnavailable,
			Message:   "backend circuit open",
			RequestID: requestID,
			Cause:     err,
		}
	}
	return err
}

func (t *transport) doAttempts(ctx context.Context, method, path string, p payload, out interface{}, requestID string) error {
	url := t.baseURL + path

	var lastErr *Error
	for attempt := 0; attempt < t.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			wait := t.policy.delay(attempt - 1)
			if lastErr != nil && lastErr.RetryAfter > wait {
				wait = lastErr.RetryAfter
			}
			t.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"attempt":    attempt + 1,
				"wait":       wait.String(),
				"cause":      lastErr.Kind.String(),
			}).Debug("retrying backend request")
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return &Error{Kind: KindTimeout, Message: "cancelled while waiting to retry", RequestID: requestID, Cause: ctx.Err()}
			}
		}

		lastErr = t.attempt(ctx, method, url, p, out, requestID)
		if lastErr == nil {
			return nil
		}
		if !lastErr.Retryable() {
			return lastErr
		}
	}
	return lastErr
}

// attempt performs exactly one HTTP exchange.
func (t *transport) attempt(ctx context.Context, method, url string, p payload, out interface{}, requestID string) *Error {
	var bodyReader io.Reader
	if p.body != nil {
		bodyReader = bytes.NewReader(p.body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return &Error{Kind: KindClient, Message: "build request: " + err.Error(), RequestID: requestID, Cause: err}
	}
	if p.contentType != "" {
		req.Header.Set("Content-Type", p.contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return t.classifyTransportErr(err, requestID)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "read response: " + err.Error(), RequestID: requestID, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ce := classifyStatus(resp.StatusCode, respBody, resp.Header)
		ce.RequestID = requestID
		return ce
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Kind: KindMalformed, Message: "decode response: " + err.Error(), RequestID: requestID, Cause: err}
		}
	}
	return nil
}

func (t *transport) classifyTransportErr(err error, requestID string) *Error {
	kind := KindNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	} else if te, ok := err.(interface{ Timeout() bool }); ok && te.Timeout() {
		kind = KindTimeout
	} else if errors.Is(err, context.Canceled) {
		kind = KindTimeout
	}
	return &Error{Kind: kind, Message: err.Error(), RequestID: requestID, Cause: err}
}
