package demo

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/roadsight/roadsight-go/models"
)

// Store answers searches over the sample dataset. It is read-only after
// construction and safe for concurrent use.
type Store struct {
	frames   []Frame
	videos   map[int]models.Video
	imageURL string
}

// NewStore builds a store over the built-in dataset. imageBase prefixes
// the thumbnail URLs in results, e.g. "/frames".
func NewStore(imageBase string) *Store {
	byID := make(map[int]models.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	return &Store{frames: frames, videos: byID, imageURL: imageBase}
}

// Search scores every frame against the query, applies threshold,
// filters and limit, and returns results in descending score order.
//
// Scoring is token overlap against the frame tags, weighted into the
// fabricated base score. It is deterministic and query-sensitive, which
// is all a demo needs; it is not a similarity search.
func (s *Store) Search(req models.SearchRequest) models.SearchResponse {
	start := time.Now()
	tokens := tokenize(req.Query)

	matched := make([]models.SearchResult, 0, len(s.frames))
	for _, f := range s.frames {
		if !matchFilters(f, req.Filters) {
			continue
		}
		score := f.BaseScore * overlap(tokens, f.Tags)
		if len(tokens) > 0 && score == 0 {
			continue
		}
		if score < req.SimilarityThreshold {
			continue
		}
		matched = append(matched, s.result(f, score))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Similarity > matched[j].Similarity
	})

	total := len(matched)
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	return models.SearchResponse{
		Results:      matched,
		TotalFound:   total,
		SearchTimeMs: time.Since(start).Milliseconds(),
	}
}

// SampleResults returns the first limit frames as canned results, scored
// by their fabricated base scores. This is what the client falls back to
// when the backend is unreachable.
func (s *Store) SampleResults(limit int) []models.SearchResult {
	if limit <= 0 || limit > len(s.frames) {
		limit = len(s.frames)
	}
	out := make([]models.SearchResult, 0, limit)
	for _, f := range s.frames {
		out = append(out, s.result(f, f.BaseScore))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	return out[:limit]
}

func (s *Store) result(f Frame, score float64) models.SearchResult {
	if score > 1 {
		score = 1
	}
	v := s.videos[f.VideoID]
	return models.SearchResult{
		FrameID:          f.FrameID,
		VideoID:          f.VideoID,
		VideoFilename:    v.Filename,
		TimestampSeconds: f.TimestampSeconds,
		Similarity:       score,
		ImageURL:         fmt.Sprintf("%s/%d.jpg", s.imageURL, f.FrameID),
		Metadata: map[string]string{
			"time_of_day": f.TimeOfDay,
			"weather":     f.Weather,
			"camera":      f.Camera,
		},
	}
}

func matchFilters(f Frame, filters models.SearchFilters) bool {
	if filters.TimeOfDay != "" && filters.TimeOfDay != f.TimeOfDay {
		return false
	}
	if filters.Weather != "" && filters.Weather != f.Weather {
		return false
	}
	if filters.Camera != "" && filters.Camera != f.Camera {
		return false
	}
	return true
}

func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,!?\"'")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// overlap returns the fraction of query tokens present in tags. An empty
// query (image search) matches everything at full weight.
func overlap(tokens, tags []string) float64 {
	if len(tokens) == 0 {
		return 1
	}
	tagSet := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		tagSet[strings.ToLower(t)] = struct{}{}
	}
	hits := 0
	for _, tok := range tokens {
		if _, ok := tagSet[tok]; ok {
			hits++
		}
	}
	if hits == 0 {
		return 0
	}
	// Keep partial matches visible: full overlap keeps the base score,
	// a single hit still lands above typical thresholds.
	return 0.6 + 0.4*float64(hits)/float64(len(tokens))
}
