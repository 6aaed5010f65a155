package roadsight

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/roadsight/roadsight-go/models"
)

const (
	// EnvBackendURL is the environment variable holding the backend
	// base URL.
	EnvBackendURL = "ROADSIGHT_BACKEND_URL"

	defaultBaseURL = "http://localhost:8000"

	textSearchPath  = "/api/v1/search/text"
	imageSearchPath = "/api/v1/search/image"
	videosPath      = "/api/v1/videos"
	healthPath      = "/health"
)

// Client talks to the Roadsight backend.
type Client struct {
	baseURL   string
	transport *transport
	fallback  *fallbackGenerator
	log       *logrus.Logger
}

type clientConfig struct {
	baseURL    string
	timeout    time.Duration
	policy     RetryPolicy
	httpClient *http.Client
	log        *logrus.Logger
	fallback   bool
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL overrides the backend base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = url }
}

// WithTimeout sets the per-request timeout. Ignored when a custom HTTP
// client is supplied.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.timeout = d }
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *clientConfig) { c.policy = p }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = hc }
}

// WithLogger sets the logger used for transport diagnostics.
func WithLogger(log *logrus.Logger) Option {
	return func(c *clientConfig) { c.log = log }
}

// WithDemoFallback enables serving the built-in sample dataset when the
// backend cannot be reached. Responses produced this way are marked
// DemoMode so callers can surface a warning.
func WithDemoFallback(enabled bool) Option {
	return func(c *clientConfig) { c.fallback = enabled }
}

// NewClient builds a client. The base URL comes from WithBaseURL, the
// ROADSIGHT_BACKEND_URL environment variable, or a localhost default, in
// that order.
func NewClient(opts ...Option) (*Client, error) {
	cfg := clientConfig{
		timeout: 30 * time.Second,
		policy:  DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.baseURL == "" {
		cfg.baseURL = os.Getenv(EnvBackendURL)
	}
	if cfg.baseURL == "" {
		cfg.baseURL = defaultBaseURL
	}
	if cfg.log == nil {
		cfg.log = logrus.New()
		cfg.log.SetOutput(io.Discard)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: cfg.timeout}
	}

	c := &Client{
		baseURL:   cfg.baseURL,
		transport: newTransport(cfg.baseURL, cfg.httpClient, cfg.policy, cfg.log),
		log:       cfg.log,
	}
	if cfg.fallback {
		c.fallback = newFallbackGenerator()
	}
	return c, nil
}

// Search runs a validated query against the backend and returns the
// normalized response. When the backend fails and demo fallback is
// enabled, the returned response is built from sample data, carries
// DemoMode=true and FallbackCause, and err is nil.
func (c *Client) Search(ctx context.Context, q *Query) (*Response, error) {
	var wire models.SearchResponse
	var err error
	if q.IsImage() {
		err = c.searchImage(ctx, q, &wire)
	} else {
		err = c.transport.do(ctx, http.MethodPost, textSearchPath, mustJSON(q.request()), &wire)
	}
	if err != nil {
		if c.fallback != nil {
			c.log.WithError(err).Warn("backend search failed, serving demo fallback")
			return c.fallback.searchResponse(q, err), nil
		}
		return nil, err
	}
	return normalize(&wire), nil
}

// SearchText is shorthand for building a text query and searching.
func (c *Client) SearchText(ctx context.Context, text string, opts ...QueryOption) (*Response, error) {
	q, err := NewTextQuery(text, opts...)
	if err != nil {
		return nil, err
	}
	return c.Search(ctx, q)
}

// SearchImage is shorthand for building an image query and searching.
func (c *Client) SearchImage(ctx context.Context, image []byte, opts ...QueryOption) (*Response, error) {
	q, err := NewImageQuery(image, opts...)
	if err != nil {
		return nil, err
	}
	return c.Search(ctx, q)
}

// ListVideos fetches the footage library. With demo fallback enabled an
// unreachable backend yields the sample library instead of an error.
func (c *Client) ListVideos(ctx context.Context) ([]models.Video, error) {
	var wire models.VideoListResponse
	if err := c.transport.do(ctx, http.MethodGet, videosPath, payload{}, &wire); err != nil {
		if c.fallback != nil {
			c.log.WithError(err).Warn("video listing failed, serving demo library")
			return c.fallback.videos(), nil
		}
		return nil, err
	}
	return wire.Videos, nil
}

// Health probes the backend liveness endpoint. It is never served from
// fallback; callers use it to tell demo mode apart from a live backend.
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	var status models.HealthStatus
	if err := c.transport.do(ctx, http.MethodGet, healthPath, payload{}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) searchImage(ctx context.Context, q *Query, out *models.SearchResponse) error {
	p, err := multipartPayload(q)
	if err != nil {
		return &Error{Kind: KindClient, Message: "build multipart body: " + err.Error(), Cause: err}
	}
	return c.transport.do(ctx, http.MethodPost, imageSearchPath, p, out)
}

// multipartPayload packages an image query as a multipart form: the
// image part plus the scalar request fields as form values.
func multipartPayload(q *Query) (payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="query"`)
	hdr.Set("Content-Type", q.imageMIME)
	part, err := w.CreatePart(hdr)
	if err != nil {
		return payload{}, err
	}
	if _, err := part.Write(q.image); err != nil {
		return payload{}, err
	}

	req := q.request()
	fields := map[string]string{
		"limit":                strconv.Itoa(req.Limit),
		"similarity_threshold": strconv.FormatFloat(req.SimilarityThreshold, 'f', -1, 64),
		"time_of_day":          req.Filters.TimeOfDay,
		"weather":              req.Filters.Weather,
		"camera":               req.Filters.Camera,
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return payload{}, err
		}
	}
	if err := w.Close(); err != nil {
		return payload{}, err
	}
	return payload{contentType: w.FormDataContentType(), body: buf.Bytes()}, nil
}

func mustJSON(v interface{}) payload {
	p, err := jsonPayload(v)
	if err != nil {
		// Wire types marshal by construction; reaching this is a bug.
		panic(err)
	}
	return p
}
