package nstree

import "errors"

// Sentinel errors returned at operation boundaries, matching the taxonomy
// of spec.md §7. Errors are produced only where an operation returns to its
// caller; internal descent helpers propagate these unwrapped and the
// exported operation wraps with path context via pkg/errors.
var (
	// ErrInvalid means a supplied path was malformed.
	ErrInvalid = errors.New("nstree: invalid path")
	// ErrExist means create/move's target already exists, or the root was
	// given as create's path or as move's target.
	ErrExist = errors.New("nstree: already exists")
	// ErrNotExist means a referenced node is absent.
	ErrNotExist = errors.New("nstree: does not exist")
	// ErrNotEmpty means remove's target still has children.
	ErrNotEmpty = errors.New("nstree: not empty")
	// ErrBusy means remove or move-as-source was attempted on the root.
	ErrBusy = errors.New("nstree: root is busy")
)
