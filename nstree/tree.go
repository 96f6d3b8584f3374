// Package nstree implements an in-memory hierarchical namespace: a tree of
// named directories supporting concurrent Create, Remove, List and Move,
// coordinated by a per-node rwmonitor.Monitor and the root-downward descent
// protocol of spec.md §4.3.
package nstree

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/nbtaylor/nstree/pathutil"
)

// Recorder receives operation outcomes for observability. A nil Recorder
// (the default) disables instrumentation entirely.
type Recorder interface {
	ObserveOperation(op string, err error)
	SetNodeCount(n int)
}

// Tree is a namespace rooted at a single node with no parent, owned by
// whoever created it (spec.md §3).
type Tree struct {
	root    *node
	limits  pathutil.Limits
	rec     Recorder
	nodeCnt *nodeCounter
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithLimits overrides the default path-validation limits.
func WithLimits(l pathutil.Limits) Option {
	return func(t *Tree) { t.limits = l }
}

// WithRecorder attaches an observability Recorder (see internal/metrics).
func WithRecorder(r Recorder) Option {
	return func(t *Tree) { t.rec = r }
}

// New returns a new, empty Tree whose root has no children.
func New(opts ...Option) *Tree {
	t := &Tree{
		root:    newNode(),
		limits:  pathutil.DefaultLimits(),
		nodeCnt: &nodeCounter{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.observeCount()
	return t
}

func (t *Tree) observeCount() {
	if t.rec != nil {
		t.rec.SetNodeCount(t.nodeCnt.get())
	}
}

func (t *Tree) observe(op string, err error) {
	if t.rec != nil {
		t.rec.ObserveOperation(op, err)
	}
}

// descend implements the shared descent protocol: begin_read on every
// traversed ancestor, converting the final acquisition to begin_write when
// write is true. It returns ErrNotExist the moment a component is missing,
// having already released every lock acquired so far.
func (t *Tree) descend(path string, write bool) (*lockedPath, error) {
	comps := pathutil.Components(path)
	lp := &lockedPath{}

	current := t.root
	if len(comps) == 0 {
		if write {
			current.monitor.BeginWrite()
			lp.write = true
		} else {
			current.monitor.BeginRead()
		}
		lp.nodes = append(lp.nodes, current)
		return lp, nil
	}

	current.monitor.BeginRead()
	lp.nodes = append(lp.nodes, current)

	for i, c := range comps {
		child, ok := current.children[c]
		if !ok {
			lp.release()
			return nil, ErrNotExist
		}
		if i == len(comps)-1 && write {
			child.monitor.BeginWrite()
			lp.write = true
		} else {
			child.monitor.BeginRead()
		}
		lp.nodes = append(lp.nodes, child)
		current = child
	}
	return lp, nil
}

// navigateLocked walks comps from n using only the child map (no locking):
// safe only when the caller already holds n's subtree exclusively, as Move
// does once it has write-locked the lowest common ancestor. Mirrors
// original_source/Tree.c's node_find_safe.
func navigateLocked(n *node, comps []string) (*node, bool) {
	current := n
	for _, c := range comps {
		child, ok := current.children[c]
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

func wrap(err error, path string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "path %q", path)
}

// Create adds a new, empty directory at path. path's parent must already
// exist and path itself must not.
func (t *Tree) Create(path string) error {
	err := t.create(path)
	t.observe("create", err)
	return err
}

func (t *Tree) create(path string) error {
	if !t.limits.Valid(path) {
		return wrap(ErrInvalid, path)
	}
	if path == pathutil.Root {
		return wrap(ErrExist, path)
	}
	parentPath, last, _ := pathutil.ToParent(path)

	lp, err := t.descend(parentPath, true)
	if err != nil {
		return wrap(err, path)
	}
	defer lp.release()

	parent := lp.terminal()
	if _, exists := parent.children[last]; exists {
		return wrap(ErrExist, path)
	}
	parent.children[last] = newNode()
	t.nodeCnt.add(1)
	t.observeCount()
	log.WithField("path", path).Debug("nstree: created")
	return nil
}

// Remove deletes the empty directory at path. path must not be root, must
// exist, and must have no children.
func (t *Tree) Remove(path string) error {
	err := t.remove(path)
	t.observe("remove", err)
	return err
}

func (t *Tree) remove(path string) error {
	if !t.limits.Valid(path) {
		return wrap(ErrInvalid, path)
	}
	if path == pathutil.Root {
		return wrap(ErrBusy, path)
	}
	parentPath, last, _ := pathutil.ToParent(path)

	lp, err := t.descend(parentPath, true)
	if err != nil {
		return wrap(err, path)
	}
	defer lp.release()

	parent := lp.terminal()
	target, exists := parent.children[last]
	if !exists {
		return wrap(ErrNotExist, path)
	}
	if len(target.children) > 0 {
		return wrap(ErrNotEmpty, path)
	}
	delete(parent.children, last)
	t.nodeCnt.add(-1)
	t.observeCount()
	log.WithField("path", path).Debug("nstree: removed")
	return nil
}

// List returns a freshly built, comma-joined listing of path's immediate
// children, taken as a snapshot while path is read-locked.
func (t *Tree) List(path string) (string, error) {
	listing, err := t.list(path)
	t.observe("list", err)
	return listing, err
}

func (t *Tree) list(path string) (string, error) {
	if !t.limits.Valid(path) {
		return "", wrap(ErrInvalid, path)
	}

	lp, err := t.descend(path, false)
	if err != nil {
		return "", wrap(err, path)
	}
	defer lp.release()

	return pathutil.JoinContents(lp.terminal().childNames()), nil
}

// Move re-parents the node at source to live under target's parent, named
// with target's final component, per the lowest-common-ancestor protocol of
// spec.md §4.5.
func (t *Tree) Move(source, target string) error {
	err := t.move(source, target)
	t.observe("move", err)
	return err
}

func (t *Tree) move(source, target string) error {
	if !t.limits.Valid(source) || !t.limits.Valid(target) {
		return wrap(ErrInvalid, source+" -> "+target)
	}
	if source == pathutil.Root {
		return wrap(ErrBusy, source)
	}
	if target == pathutil.Root {
		return wrap(ErrExist, target)
	}

	lcaPath := pathutil.CommonPrefix(source, target)
	sourceEqualsLCA := source == lcaPath
	targetEqualsLCA := target == lcaPath

	switch {
	case sourceEqualsLCA && targetEqualsLCA:
		// source == target: resolve by locking the shared path itself as a
		// reader rather than through a separately-released probe (see
		// SPEC_FULL.md's Open Question decision — this closes the TOCTOU
		// window the original implementation accepted).
		lp, err := t.descend(source, false)
		if err != nil {
			return wrap(err, source)
		}
		lp.release()
		return wrap(ErrExist, source)

	case sourceEqualsLCA:
		// source is a proper prefix of target: moving a node inside itself.
		return wrap(ErrNotExist, source)

	case targetEqualsLCA:
		lp, err := t.descend(target, false)
		if err != nil {
			return wrap(err, target)
		}
		lp.release()
		return wrap(ErrExist, target)
	}

	lp, err := t.descend(lcaPath, true)
	if err != nil {
		return wrap(err, lcaPath)
	}
	defer lp.release()
	lca := lp.terminal()

	lcaDepth := len(pathutil.Components(lcaPath))
	sourceRest := pathutil.Components(source)[lcaDepth:]
	targetRest := pathutil.Components(target)[lcaDepth:]

	sParent, ok := navigateLocked(lca, sourceRest[:len(sourceRest)-1])
	if !ok {
		return wrap(ErrNotExist, source)
	}
	sLast := sourceRest[len(sourceRest)-1]
	sNode, exists := sParent.children[sLast]
	if !exists {
		return wrap(ErrNotExist, source)
	}

	tParent, ok := navigateLocked(lca, targetRest[:len(targetRest)-1])
	if !ok {
		return wrap(ErrNotExist, target)
	}
	tLast := targetRest[len(targetRest)-1]
	if _, exists := tParent.children[tLast]; exists {
		return wrap(ErrExist, target)
	}

	tParent.children[tLast] = sNode
	delete(sParent.children, sLast)
	log.WithFields(log.Fields{"source": source, "target": target}).Debug("nstree: moved")
	return nil
}
