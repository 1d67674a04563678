package model

import (
	"strconv"
	"strings"

	"github.com/tsawler/fixedsom/internal/jsonx"
)

// FixedNode identifies one rendered primitive on a fixed page by its
// structural path. Path[0] is the page index and every following entry is
// the child index at the next nesting level (canvas, then element, ...).
//
// A FixedNode is immutable; all accessors return copies.
type FixedNode struct {
	path []int
}

// NewFixedNode creates a node for the given page and child path
func NewFixedNode(page int, childPath ...int) FixedNode {
	path := make([]int, 0, len(childPath)+1)
	path = append(path, page)
	path = append(path, childPath...)
	return FixedNode{path: path}
}

// FixedNodeFromPath creates a node from a full path (page first)
func FixedNodeFromPath(path []int) FixedNode {
	if len(path) == 0 {
		return FixedNode{}
	}
	cp := make([]int, len(path))
	copy(cp, path)
	return FixedNode{path: cp}
}

// IsZero reports whether the node has no path at all
func (n FixedNode) IsZero() bool {
	return len(n.path) == 0
}

// Page returns the page index, or -1 for the zero node
func (n FixedNode) Page() int {
	if len(n.path) == 0 {
		return -1
	}
	return n.path[0]
}

// Path returns a copy of the full path (page first)
func (n FixedNode) Path() []int {
	cp := make([]int, len(n.path))
	copy(cp, n.path)
	return cp
}

// ChildPath returns a copy of the path below the page
func (n FixedNode) ChildPath() []int {
	if len(n.path) <= 1 {
		return nil
	}
	cp := make([]int, len(n.path)-1)
	copy(cp, n.path[1:])
	return cp
}

// Depth returns the nesting depth below the page (1 for a direct child)
func (n FixedNode) Depth() int {
	if len(n.path) == 0 {
		return 0
	}
	return len(n.path) - 1
}

// Compare orders nodes lexicographically by path. Two nodes where one is a
// structural ancestor of the other compare equal: parent and child carry no
// ordering preference relative to each other.
func (n FixedNode) Compare(other FixedNode) int {
	limit := len(n.path)
	if len(other.path) < limit {
		limit = len(other.path)
	}
	for i := 0; i < limit; i++ {
		if n.path[i] < other.path[i] {
			return -1
		}
		if n.path[i] > other.path[i] {
			return 1
		}
	}
	return 0
}

// ComparePrefix compares the node against the subtree rooted at a child
// path prefix (page excluded). It returns 0 when the node lies inside the
// subtree, -1 when it precedes every node of the subtree and 1 when it
// follows all of them. The prefix node itself counts as preceding.
func (n FixedNode) ComparePrefix(prefix []int) int {
	child := n.path
	if len(child) > 0 {
		child = child[1:]
	}
	for i := 0; i < len(prefix); i++ {
		if i >= len(child) {
			return -1
		}
		if child[i] < prefix[i] {
			return -1
		}
		if child[i] > prefix[i] {
			return 1
		}
	}
	if len(child) == len(prefix) {
		return -1
	}
	return 0
}

// Equal reports whether both nodes have exactly the same path
func (n FixedNode) Equal(other FixedNode) bool {
	if len(n.path) != len(other.path) {
		return false
	}
	for i := range n.path {
		if n.path[i] != other.path[i] {
			return false
		}
	}
	return true
}

// Key returns a string usable as a map key
func (n FixedNode) Key() string {
	return n.String()
}

// String returns the path as "page/child/child"
func (n FixedNode) String() string {
	parts := make([]string, len(n.path))
	for i, v := range n.path {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "/")
}

// MarshalJSON encodes the node as its path array
func (n FixedNode) MarshalJSON() ([]byte, error) {
	if n.path == nil {
		return []byte("[]"), nil
	}
	return jsonx.Marshal(n.path)
}

// UnmarshalJSON decodes a path array
func (n *FixedNode) UnmarshalJSON(data []byte) error {
	var path []int
	if err := jsonx.Unmarshal(data, &path); err != nil {
		return err
	}
	*n = FixedNodeFromPath(path)
	return nil
}
