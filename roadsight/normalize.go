package roadsight

import (
	"fmt"
	"sort"
	"time"

	"github.com/roadsight/roadsight-go/models"
)

// Confidence tier thresholds.
const (
	tierExcellent = 0.90
	tierGood      = 0.80
	tierFair      = 0.70
)

// Result is a normalized search hit ready for display. FormattedTimestamp
// and ConfidenceLabel are derived; the rest mirrors the wire result.
type Result struct {
	FrameID          int
	VideoID          int
	VideoFilename    string
	TimestampSeconds float64
	Similarity       float64
	ImageURL         string
	Metadata         map[string]string

	FormattedTimestamp string
	ConfidenceLabel    string
}

// Response is the canonical search outcome consumed by callers. When the
// backend could not be reached and fallback is enabled, DemoMode is true
// and FallbackCause holds the classified transport error so callers can
// surface a warning instead of silently showing fabricated data.
type Response struct {
	Results       []Result
	TotalFound    int
	SearchTime    time.Duration
	DemoMode      bool
	FallbackCause error
}

// normalize converts a wire response into the canonical form: results
// re-sorted by descending similarity (mock paths do not guarantee it),
// missing filenames defaulted, display fields derived. Input is not
// mutated, and normalizing an already-normalized payload is a no-op.
func normalize(wire *models.SearchResponse) *Response {
	results := make([]Result, 0, len(wire.Results))
	for _, r := range wire.Results {
		filename := r.VideoFilename
		if filename == "" {
			filename = fmt.Sprintf("video_%d.mp4", r.VideoID)
		}
		ts := r.TimestampSeconds
		if ts < 0 {
			ts = 0
		}
		results = append(results, Result{
			FrameID:            r.FrameID,
			VideoID:            r.VideoID,
			VideoFilename:      filename,
			TimestampSeconds:   ts,
			Similarity:         r.Similarity,
			ImageURL:           r.ImageURL,
			Metadata:           r.Metadata,
			FormattedTimestamp: FormatTimestamp(ts),
			ConfidenceLabel:    ConfidenceLabel(r.Similarity),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	total := wire.TotalFound
	if total < len(results) {
		total = len(results)
	}

	return &Response{
		Results:    results,
		TotalFound: total,
		SearchTime: time.Duration(wire.SearchTimeMs) * time.Millisecond,
	}
}

// ConfidenceLabel maps a similarity score to its display tier:
// ≥0.90 Excellent, ≥0.80 Good, ≥0.70 Fair, otherwise Weak.
func ConfidenceLabel(similarity float64) string {
	switch {
	case similarity >= tierExcellent:
		return "Excellent"
	case similarity >= tierGood:
		return "Good"
	case similarity >= tierFair:
		return "Fair"
	default:
		return "Weak"
	}
}

// FormatTimestamp renders seconds as m:ss, or h:mm:ss past an hour.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
