package roadsight

import (
	"context"
	"sync/atomic"
)

// Searcher serializes searches from one UI surface. Each call bumps a
// generation counter; a response that resolves after a newer search has
// started is dropped with ErrSuperseded, so results can never render
// out of order.
//
// A Searcher is safe for concurrent use. Use one per surface that
// displays a single result set.
type Searcher struct {
	client *Client
	gen    atomic.Uint64
}

// NewSearcher wraps a client with stale-response tracking.
func NewSearcher(client *Client) *Searcher {
	return &Searcher{client: client}
}

// Search runs the query and returns its response unless a newer search
// was issued while this one was in flight.
func (s *Searcher) Search(ctx context.Context, q *Query) (*Response, error) {
	gen := s.gen.Add(1)
	resp, err := s.client.Search(ctx, q)
	if s.gen.Load() != gen {
		return nil, ErrSuperseded
	}
	return resp, err
}
