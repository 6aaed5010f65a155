package roadsight

import (
	"github.com/roadsight/roadsight-go/demo"
	"github.com/roadsight/roadsight-go/models"
)

// fallbackGenerator serves the built-in sample dataset when the backend
// cannot be reached. The scores are fabricated and unrelated to the
// query; responses are therefore always marked DemoMode with the
// transport failure attached, never returned silently.
type fallbackGenerator struct {
	store *demo.Store
}

func newFallbackGenerator() *fallbackGenerator {
	return &fallbackGenerator{store: demo.NewStore("/frames")}
}

func (g *fallbackGenerator) searchResponse(q *Query, cause error) *Response {
	results := g.store.SampleResults(q.limit)
	resp := normalize(&models.SearchResponse{
		Results:      results,
		TotalFound:   len(results),
		SearchTimeMs: 0,
	})
	resp.DemoMode = true
	resp.FallbackCause = cause
	return resp
}

func (g *fallbackGenerator) videos() []models.Video {
	return demo.Videos()
}
