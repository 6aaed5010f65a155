package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadsight/roadsight-go/models"
)

func TestStore_Search_TokenMatching(t *testing.T) {
	store := NewStore("/frames")

	resp := store.Search(models.SearchRequest{
		Query:               "cars turning left",
		Limit:               10,
		SimilarityThreshold: 0.2,
	})

	require.Len(t, resp.Results, 2)
	assert.Equal(t, 301, resp.Results[0].FrameID)
	assert.Equal(t, 302, resp.Results[1].FrameID)
	assert.InDelta(t, 0.94, resp.Results[0].Similarity, 1e-9)
	assert.InDelta(t, 0.89, resp.Results[1].Similarity, 1e-9)
	assert.Equal(t, "suburban_left_turns.mp4", resp.Results[0].VideoFilename)
}

func TestStore_Search_DescendingOrder(t *testing.T) {
	store := NewStore("/frames")

	resp := store.Search(models.SearchRequest{Query: "highway", Limit: 20})
	require.NotEmpty(t, resp.Results)
	for i := 1; i < len(resp.Results); i++ {
		assert.GreaterOrEqual(t, resp.Results[i-1].Similarity, resp.Results[i].Similarity)
	}
}

func TestStore_Search_Threshold(t *testing.T) {
	store := NewStore("/frames")

	resp := store.Search(models.SearchRequest{
		Query:               "highway",
		Limit:               20,
		SimilarityThreshold: 0.9,
	})
	for _, r := range resp.Results {
		assert.GreaterOrEqual(t, r.Similarity, 0.9)
	}
}

func TestStore_Search_Filters(t *testing.T) {
	store := NewStore("/frames")

	resp := store.Search(models.SearchRequest{
		Query: "rain",
		Limit: 20,
		Filters: models.SearchFilters{
			Weather: models.WeatherRain,
			Camera:  models.CameraFront,
		},
	})
	require.NotEmpty(t, resp.Results)
	for _, r := range resp.Results {
		assert.Equal(t, models.WeatherRain, r.Metadata["weather"])
		assert.Equal(t, models.CameraFront, r.Metadata["camera"])
	}
}

func TestStore_Search_LimitKeepsTotal(t *testing.T) {
	store := NewStore("/frames")

	resp := store.Search(models.SearchRequest{Query: "cars turning left", Limit: 1})
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 2, resp.TotalFound)
	assert.Equal(t, 301, resp.Results[0].FrameID)
}

func TestStore_Search_NoMatches(t *testing.T) {
	store := NewStore("/frames")

	resp := store.Search(models.SearchRequest{
		Query:               "submarine periscope",
		Limit:               10,
		SimilarityThreshold: 0.2,
	})
	assert.Empty(t, resp.Results)
	assert.Zero(t, resp.TotalFound)
}

func TestStore_SampleResults(t *testing.T) {
	store := NewStore("/frames")

	results := store.SampleResults(5)
	require.Len(t, results, 5)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
	for _, r := range results {
		assert.NotEmpty(t, r.VideoFilename)
		assert.NotEmpty(t, r.ImageURL)
	}

	all := store.SampleResults(0)
	assert.NotEmpty(t, all)
}

func TestVideos_ReturnsCopy(t *testing.T) {
	a := Videos()
	require.NotEmpty(t, a)
	a[0].Filename = "mutated.mp4"
	b := Videos()
	assert.NotEqual(t, "mutated.mp4", b[0].Filename)
}
