package roadsight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadsight/roadsight-go/models"
)

func TestNormalize_OrderAndLabels(t *testing.T) {
	wire := models.SearchResponse{
		Results: []models.SearchResult{
			{FrameID: 301, VideoID: 3, VideoFilename: "suburban_left_turns.mp4", TimestampSeconds: 33, Similarity: 0.94},
			{FrameID: 302, VideoID: 3, VideoFilename: "suburban_left_turns.mp4", TimestampSeconds: 190.6, Similarity: 0.89},
		},
		TotalFound:   2,
		SearchTimeMs: 40,
	}

	resp := normalize(&wire)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 301, resp.Results[0].FrameID)
	assert.Equal(t, 302, resp.Results[1].FrameID)
	assert.Equal(t, "Excellent", resp.Results[0].ConfidenceLabel)
	assert.Equal(t, "Good", resp.Results[1].ConfidenceLabel)
}

func TestNormalize_ResortsMockOrdering(t *testing.T) {
	// Mock paths do not guarantee descending similarity.
	wire := models.SearchResponse{
		Results: []models.SearchResult{
			{FrameID: 1, Similarity: 0.71},
			{FrameID: 2, Similarity: 0.93},
			{FrameID: 3, Similarity: 0.85},
		},
	}

	resp := normalize(&wire)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{
		resp.Results[0].FrameID, resp.Results[1].FrameID, resp.Results[2].FrameID,
	})
	// Input untouched.
	assert.Equal(t, 1, wire.Results[0].FrameID)
}

func TestNormalize_Defaults(t *testing.T) {
	wire := models.SearchResponse{
		Results: []models.SearchResult{
			{FrameID: 9, VideoID: 4, TimestampSeconds: -3, Similarity: 0.5},
		},
	}

	resp := normalize(&wire)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "video_4.mp4", resp.Results[0].VideoFilename)
	assert.Equal(t, 0.0, resp.Results[0].TimestampSeconds)
	assert.Equal(t, 1, resp.TotalFound, "total is at least the result count")
}

func TestNormalize_Idempotent(t *testing.T) {
	wire := models.SearchResponse{
		Results: []models.SearchResult{
			{FrameID: 1, VideoID: 2, TimestampSeconds: 83.4, Similarity: 0.62},
			{FrameID: 2, VideoID: 2, VideoFilename: "clip.mp4", TimestampSeconds: 10, Similarity: 0.97},
		},
		TotalFound:   5,
		SearchTimeMs: 9,
	}

	first := normalize(&wire)

	// Feed the normalized results back through as a wire response.
	rewire := models.SearchResponse{
		TotalFound:   first.TotalFound,
		SearchTimeMs: first.SearchTime.Milliseconds(),
	}
	for _, r := range first.Results {
		rewire.Results = append(rewire.Results, models.SearchResult{
			FrameID:          r.FrameID,
			VideoID:          r.VideoID,
			VideoFilename:    r.VideoFilename,
			TimestampSeconds: r.TimestampSeconds,
			Similarity:       r.Similarity,
			ImageURL:         r.ImageURL,
			Metadata:         r.Metadata,
		})
	}
	second := normalize(&rewire)

	assert.Equal(t, first, second)
}

func TestNormalize_Empty(t *testing.T) {
	resp := normalize(&models.SearchResponse{})
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Zero(t, resp.TotalFound)
}

func TestConfidenceLabel(t *testing.T) {
	tests := []struct {
		similarity float64
		want       string
	}{
		{0.94, "Excellent"},
		{0.90, "Excellent"},
		{0.89, "Good"},
		{0.80, "Good"},
		{0.79, "Fair"},
		{0.70, "Fair"},
		{0.69, "Weak"},
		{0, "Weak"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceLabel(tt.similarity), "similarity %v", tt.similarity)
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{9.4, "0:09"},
		{83.4, "1:23"},
		{600, "10:00"},
		{3661, "1:01:01"},
		{-5, "0:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTimestamp(tt.seconds), "seconds %v", tt.seconds)
	}
}
