package nstree

import "github.com/nbtaylor/nstree/rwmonitor"

// node is one directory: a set of named children plus the monitor that
// coordinates concurrent access to that set (spec.md §3's Node). A node's
// children map is exclusively owned by the node; it is only ever read or
// mutated while the node's own monitor is held, or while an ancestor is held
// in write mode (Remove checks a child's emptiness under the parent's write
// lock, and Move walks and re-links nodes under the LCA's write lock).
type node struct {
	children map[string]*node
	monitor  *rwmonitor.Monitor
}

func newNode() *node {
	return &node{
		children: make(map[string]*node),
		monitor:  rwmonitor.New(),
	}
}

// childNames returns a snapshot of the child names. The caller must already
// hold n's monitor (read or write).
func (n *node) childNames() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	return names
}
