// Package interval implements an augmented binary search tree over
// half-open [start, end) intervals, supporting O(log n) insertion and
// O(log n + k) overlap queries. The tree does not self-balance; the
// documented workloads (one document's detections) are not
// adversarial.
package interval

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"phi-redactor/internal/span"
)

// Key identifies a single inserted span for later removal or lookup.
type Key string

func newKey() Key {
	return Key(uuid.NewString())
}

type node struct {
	start, end uint32
	maxEnd     uint32
	spans      map[Key]span.Detection
	left       *node
	right      *node
}

// Tree is an augmented interval BST. All operations are serialized by
// an internal mutex; callers do not need external synchronization.
type Tree struct {
	mu   sync.Mutex
	root *node
	keys map[Key]*node
	n    int
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{keys: make(map[Key]*node)}
}

// Insert adds d to the tree and returns the key used to reference it.
// If a node already exists at (d.CharacterStart, d.CharacterEnd), d is
// appended to that node's span list instead of creating a new node.
func (t *Tree) Insert(d span.Detection) Key {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := newKey()
	t.root = t.insert(t.root, d, key)
	t.keys[key] = t.findNode(t.root, d.CharacterStart, d.CharacterEnd)
	t.n++
	return key
}

func (t *Tree) insert(n *node, d span.Detection, key Key) *node {
	if n == nil {
		nn := &node{start: d.CharacterStart, end: d.CharacterEnd, maxEnd: d.CharacterEnd, spans: map[Key]span.Detection{key: d}}
		return nn
	}
	switch {
	case d.CharacterStart == n.start && d.CharacterEnd == n.end:
		n.spans[key] = d
	case d.CharacterStart < n.start:
		n.left = t.insert(n.left, d, key)
	default:
		n.right = t.insert(n.right, d, key)
	}
	if d.CharacterEnd > n.maxEnd {
		n.maxEnd = d.CharacterEnd
	}
	return n
}

func (t *Tree) findNode(n *node, start, end uint32) *node {
	if n == nil {
		return nil
	}
	if start == n.start && end == n.end {
		return n
	}
	if start < n.start {
		return t.findNode(n.left, start, end)
	}
	return t.findNode(n.right, start, end)
}

// FindOverlaps returns every span whose interval overlaps [start,
// end), deduplicated by key.
func (t *Tree) FindOverlaps(start, end uint32) []span.Detection {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []span.Detection
	t.findOverlaps(t.root, start, end, &out)
	return out
}

func (t *Tree) findOverlaps(n *node, start, end uint32, out *[]span.Detection) {
	if n == nil {
		return
	}
	if n.left != nil && n.left.maxEnd > start {
		t.findOverlaps(n.left, start, end, out)
	}
	if n.start < end && n.end > start {
		for _, d := range n.spans {
			*out = append(*out, d)
		}
	}
	if n.start < end {
		t.findOverlaps(n.right, start, end, out)
	}
}

// Remove deletes the span referenced by key. The owning node becomes
// an empty tombstone if it has no remaining spans; no rebalancing
// occurs.
func (t *Tree) Remove(key Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.keys[key]
	if !ok || n == nil {
		return false
	}
	if _, present := n.spans[key]; !present {
		return false
	}
	delete(n.spans, key)
	delete(t.keys, key)
	t.n--
	return true
}

// Has reports whether key currently references a stored span.
func (t *Tree) Has(key Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.keys[key]
	if !ok {
		return false
	}
	_, present := n.spans[key]
	return present
}

// Get returns the span referenced by key.
func (t *Tree) Get(key Key) (span.Detection, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.keys[key]
	if !ok {
		return span.Detection{}, false
	}
	d, present := n.spans[key]
	return d, present
}

// Size returns the number of live spans in the tree.
func (t *Tree) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}

// Clear empties the tree.
func (t *Tree) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = nil
	t.keys = make(map[Key]*node)
	t.n = 0
}

// GetAllSpans returns every live span currently stored in the tree, in
// no particular order.
func (t *Tree) GetAllSpans() []span.Detection {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []span.Detection
	t.collect(t.root, &out)
	return out
}

func (t *Tree) collect(n *node, out *[]span.Detection) {
	if n == nil {
		return
	}
	t.collect(n.left, out)
	for _, d := range n.spans {
		*out = append(*out, d)
	}
	t.collect(n.right, out)
}

// ErrPoisoned describes a tree whose internal invariants are broken.
// No Tree method returns it: a panic inside a locked section
// propagates to the caller.
type ErrPoisoned struct{ Detail string }

func (e *ErrPoisoned) Error() string { return fmt.Sprintf("interval tree poisoned: %s", e.Detail) }
