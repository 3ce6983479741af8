package service

import "sync"

const (
	// usedCodeCap is the point at which the guard trims its history.
	usedCodeCap = 100
	// usedCodeKeep is how many of the most recent codes survive a trim.
	usedCodeKeep = 50
)

// CodeGuard remembers recently redeemed authorization codes so a duplicate
// callback (browser retry, double-submit, proxy replay) is rejected before
// it reaches the provider's token endpoint.
//
// The history is bounded: once it grows past usedCodeCap codes, only the
// usedCodeKeep most recently reserved survive. An authorization code is
// only valid for minutes, so codes old enough to be evicted would be
// rejected by the provider anyway.
type CodeGuard struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string // reservation order, oldest first
}

func NewCodeGuard() *CodeGuard {
	return &CodeGuard{
		seen: make(map[string]struct{}),
	}
}

// CheckAndReserve atomically tests whether code was already redeemed and, if
// not, records it. Returns false when the code was seen before; concurrent
// callers with the same code get exactly one true.
func (g *CodeGuard) CheckAndReserve(code string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, dup := g.seen[code]; dup {
		return false
	}

	g.seen[code] = struct{}{}
	g.order = append(g.order, code)

	if len(g.order) > usedCodeCap {
		g.trimLocked()
	}
	return true
}

// Release forgets a reserved code so the user can retry after a downstream
// failure (the provider never saw the code, or rejected it transiently).
func (g *CodeGuard) Release(code string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seen[code]; !ok {
		return
	}
	delete(g.seen, code)
	for i, c := range g.order {
		if c == code {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Size reports how many codes are currently remembered.
func (g *CodeGuard) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.order)
}

func (g *CodeGuard) trimLocked() {
	keep := g.order[len(g.order)-usedCodeKeep:]
	g.seen = make(map[string]struct{}, len(keep))
	for _, c := range keep {
		g.seen[c] = struct{}{}
	}
	g.order = append([]string(nil), keep...)
}
