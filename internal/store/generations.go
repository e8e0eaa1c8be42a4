package store

import "sync"

// Generations hands out monotonically increasing tokens per key so a slow
// load can detect that a newer load for the same key has started.
type Generations struct {
	mu      sync.Mutex
	current map[string]uint64
}

// NewGenerations constructs an empty counter.
func NewGenerations() *Generations {
	return &Generations{current: make(map[string]uint64)}
}

// Next starts a new generation for key and returns its token.
func (g *Generations) Next(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current[key]++
	return g.current[key]
}

// IsCurrent reports whether token is still the latest generation for key.
func (g *Generations) IsCurrent(key string, token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current[key] == token
}
