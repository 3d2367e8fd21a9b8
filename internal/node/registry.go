// internal/node/registry.go
package node

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// Minor space geometry, mirroring a character-device minor range.
// These values are driver-chosen and MUST NOT be configurable.

// MinorBase is the first minor number handed out by the registry.
const MinorBase = 192

// MinorCount is the size of the minor space. Registration fails once
// every slot is taken.
const MinorCount = 16

// Registry errors.
var (
	// ErrNotFound means no node is registered under the requested
	// identity. Consumers see the same error whether the device was
	// never attached or is mid-teardown.
	ErrNotFound = errors.New("node: no such device")

	// ErrNoFreeMinor means the minor space is exhausted.
	ErrNoFreeMinor = errors.New("node: minor space exhausted")
)

// OpenFunc produces one read session for an open of a node. Each call
// snapshots the backing device; the returned file serves that snapshot
// until closed.
type OpenFunc func() (fs.File, error)

// Node is one registered device node.
type Node struct {
	name  string
	minor int
	open  OpenFunc
}

// Name returns the numbered node name, e.g. "co2meter0".
func (n *Node) Name() string { return n.name }

// Minor returns the node's minor number.
func (n *Node) Minor() int { return n.minor }

// Registry is the process-local device model: a table of numbered,
// read-only device nodes. It implements fs.FS, so registered nodes are
// readable with standard file APIs.
//
// The registry owns name and minor allocation only. Session semantics
// belong to the OpenFunc the owner registered.
type Registry struct {
	mu    sync.Mutex
	slots [MinorCount]*Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register allocates the lowest free minor and registers a node named
// by template, which must contain one %d verb (e.g. "co2meter%d").
// Slots are reused after Deregister, so names recycle the way kernel
// minors do.
func (r *Registry) Register(template string, open OpenFunc) (*Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.slots {
		if s != nil {
			continue
		}
		n := &Node{
			name:  fmt.Sprintf(template, i),
			minor: MinorBase + i,
			open:  open,
		}
		r.slots[i] = n
		return n, nil
	}
	return nil, ErrNoFreeMinor
}

// Deregister frees the node's slot. Opens racing a deregister fail with
// ErrNotFound once the slot is cleared. Deregistering a node twice is a
// no-op.
func (r *Registry) Deregister(n *Node) {
	if n == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := n.minor - MinorBase
	if i >= 0 && i < MinorCount && r.slots[i] == n {
		r.slots[i] = nil
	}
}

// OpenMinor opens the node registered at the given minor.
func (r *Registry) OpenMinor(minor int) (fs.File, error) {
	i := minor - MinorBase
	if i < 0 || i >= MinorCount {
		return nil, ErrNotFound
	}

	r.mu.Lock()
	n := r.slots[i]
	r.mu.Unlock()

	if n == nil {
		return nil, ErrNotFound
	}
	return n.open()
}

// Open implements fs.FS over the registered nodes. Failures, including
// a backing device that is not ready yet, surface as *fs.PathError so
// callers can errors.Is against both fs.ErrNotExist-style checks and
// the underlying cause.
func (r *Registry) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	r.mu.Lock()
	var n *Node
	for _, s := range r.slots {
		if s != nil && s.name == name {
			n = s
			break
		}
	}
	r.mu.Unlock()

	if n == nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrNotFound}
	}
	f, err := n.open()
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return f, nil
}

// Names returns the currently registered node names in minor order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var names []string
	for _, s := range r.slots {
		if s != nil {
			names = append(names, s.name)
		}
	}
	return names
}
