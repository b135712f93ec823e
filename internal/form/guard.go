package form

import "sync"

// DraftGuard enforces at-most-one-in-flight submission per draft. A draft is
// identified by an opaque key (session token plus surface name). Begin
// returns false while a prior submission for the same draft is still in
// flight; the caller must treat that as a no-op, not queue the attempt.
type DraftGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewDraftGuard creates an empty guard.
func NewDraftGuard() *DraftGuard {
	return &DraftGuard{inFlight: make(map[string]struct{})}
}

// Begin marks the draft as in flight. Returns false if it already is.
func (g *DraftGuard) Begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.inFlight[key]; ok {
		return false
	}
	g.inFlight[key] = struct{}{}
	return true
}

// End clears the in-flight flag for the draft.
func (g *DraftGuard) End(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, key)
}
