package hookline

import (
	"maps"
	"sync"
)

// Counters records how many times each hook was dispatched.
// Counts only grow; an unseen hook counts zero.
type Counters struct {
	mu     sync.RWMutex
	counts map[HookName]int
}

// NewCounters creates an empty set of counters.
func NewCounters() *Counters {
	return &Counters{counts: make(map[HookName]int)}
}

// Get returns the dispatch count of name.
func (c *Counters) Get(name HookName) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[name]
}

// Increment adds one to the dispatch count of name.
func (c *Counters) Increment(name HookName) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name]++
}

// Snapshot returns a copy of all counts.
func (c *Counters) Snapshot() map[HookName]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.counts)
}
