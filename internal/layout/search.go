package layout

import "sync"

// SearchGate tags each dispatched search with a sequence number so stale
// responses can be discarded: only the response of the most recently
// dispatched request is accepted, regardless of arrival order.
type SearchGate struct {
	mu     sync.Mutex
	latest uint64
}

// Begin registers a new dispatch and returns its sequence number.
func (g *SearchGate) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.latest++

	return g.latest
}

// Accept reports whether the response for the given sequence number is
// still current.
func (g *SearchGate) Accept(seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return seq == g.latest
}
