package roadsight

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/roadsight/roadsight-go/models"
)

// Query construction limits.
const (
	MaxQueryLength = 500
	MaxImageBytes  = 10 << 20 // 10 MB

	MaxLimit         = 20
	DefaultLimit     = 10
	DefaultThreshold = 0.2
)

// Builder validation errors.
var (
	ErrEmptyQuery       = errors.New("roadsight: query text is empty")
	ErrQueryTooLong     = fmt.Errorf("roadsight: query text exceeds %d characters", MaxQueryLength)
	ErrEmptyImage       = errors.New("roadsight: image is empty")
	ErrImageTooLarge    = fmt.Errorf("roadsight: image exceeds %d bytes", MaxImageBytes)
	ErrUnsupportedImage = errors.New("roadsight: image must be PNG, JPEG or WEBP")
)

// Query is a validated, transport-ready search. Exactly one of the text
// and image forms is set. Build one with NewTextQuery or NewImageQuery.
type Query struct {
	text      string
	image     []byte
	imageMIME string
	limit     int
	threshold float64
	filters   models.SearchFilters
}

// QueryOption adjusts limit, threshold or filters on a query.
type QueryOption func(*Query)

// WithLimit sets the number of results to return. Values outside [1,20]
// are clamped.
func WithLimit(n int) QueryOption {
	return func(q *Query) {
		if n < 1 {
			n = 1
		}
		if n > MaxLimit {
			n = MaxLimit
		}
		q.limit = n
	}
}

// WithThreshold sets the minimum similarity score. Values outside [0,1]
// are clamped.
func WithThreshold(t float64) QueryOption {
	return func(q *Query) {
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		q.threshold = t
	}
}

// WithFilters narrows the search to matching capture conditions.
func WithFilters(f models.SearchFilters) QueryOption {
	return func(q *Query) {
		q.filters = f
	}
}

func newQuery(opts []QueryOption) *Query {
	q := &Query{
		limit:     DefaultLimit,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// NewTextQuery validates and packages a natural-language query. The text
// must be non-empty after trimming and at most MaxQueryLength characters.
func NewTextQuery(text string, opts ...QueryOption) (*Query, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}
	if len([]rune(text)) > MaxQueryLength {
		return nil, ErrQueryTooLong
	}
	q := newQuery(opts)
	q.text = text
	return q, nil
}

// NewImageQuery validates and packages an example-image query. The bytes
// must sniff as PNG, JPEG or WEBP and be at most MaxImageBytes.
func NewImageQuery(image []byte, opts ...QueryOption) (*Query, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if len(image) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	mime, err := sniffImageMIME(image)
	if err != nil {
		return nil, err
	}
	q := newQuery(opts)
	q.image = image
	q.imageMIME = mime
	return q, nil
}

// IsImage reports whether the query carries an example image rather than
// text.
func (q *Query) IsImage() bool {
	return q.image != nil
}

// request produces the wire form of the query. The image bytes travel
// separately as a multipart part.
func (q *Query) request() models.SearchRequest {
	return models.SearchRequest{
		Query:               q.text,
		Limit:               q.limit,
		SimilarityThreshold: q.threshold,
		Filters:             q.filters,
	}
}

func sniffImageMIME(image []byte) (string, error) {
	switch http.DetectContentType(image) {
	case "image/png":
		return "image/png", nil
	case "image/jpeg":
		return "image/jpeg", nil
	case "image/webp":
		return "image/webp", nil
	default:
		return "", ErrUnsupportedImage
	}
}
