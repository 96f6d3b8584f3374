package nstree

import "sync/atomic"

// nodeCounter tracks the live node count for the metrics gauge. It is
// updated under the mutating operation's own write lock, so a plain atomic
// is sufficient — no separate synchronization is needed.
type nodeCounter struct {
	n int64
}

func (c *nodeCounter) add(delta int64) {
	atomic.AddInt64(&c.n, delta)
}

func (c *nodeCounter) get() int {
	return int(atomic.LoadInt64(&c.n))
}
