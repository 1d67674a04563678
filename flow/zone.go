package flow

import (
	"github.com/pkg/errors"
)

var (
	// ErrDuplicatePosition reports two distinct nodes holding the same
	// flow position
	ErrDuplicatePosition = errors.New("flow: duplicate flow position")

	// ErrUnknownNode reports a node that does not belong to the zone
	ErrUnknownNode = errors.New("flow: node not in zone")

	// ErrUnbalancedScope reports a Start without its End or the reverse
	ErrUnbalancedScope = errors.New("flow: unbalanced scope")
)

// Zone is an ordered flow sequence. Node positions always equal their
// index in the zone; inserting or removing renumbers every following node.
type Zone struct {
	nodes     []*Node
	lastScope int
}

// NewZone creates an empty zone
func NewZone() *Zone {
	return &Zone{}
}

// NewScope allocates a scope id for a Start/End pair
func (z *Zone) NewScope() int {
	z.lastScope++
	return z.lastScope
}

// Len returns the number of nodes
func (z *Zone) Len() int {
	return len(z.nodes)
}

// Nodes returns the nodes in flow order
func (z *Zone) Nodes() []*Node {
	out := make([]*Node, len(z.nodes))
	copy(out, z.nodes)
	return out
}

// At returns the node at a flow position
func (z *Zone) At(fp int) (*Node, bool) {
	if fp < 0 || fp >= len(z.nodes) {
		return nil, false
	}
	return z.nodes[fp], true
}

// Append adds a node at the end of the flow
func (z *Zone) Append(typ Type, scope int, payload any) *Node {
	n := newNode(typ, scope, payload)
	n.setFp(len(z.nodes))
	z.nodes = append(z.nodes, n)
	return n
}

// Insert adds a node at flow position fp, shifting the following nodes
func (z *Zone) Insert(fp int, typ Type, scope int, payload any) (*Node, error) {
	if fp < 0 || fp > len(z.nodes) {
		return nil, errors.Errorf("flow: insert position %d out of range [0, %d]", fp, len(z.nodes))
	}
	for _, next := range z.nodes[fp:] {
		next.increaseFp()
	}

	n := newNode(typ, scope, payload)
	n.setFp(fp)
	z.nodes = append(z.nodes, nil)
	copy(z.nodes[fp+1:], z.nodes[fp:])
	z.nodes[fp] = n
	return n, nil
}

// InsertBefore adds a node directly in front of ref
func (z *Zone) InsertBefore(ref *Node, typ Type, scope int, payload any) (*Node, error) {
	if !z.owns(ref) {
		return nil, ErrUnknownNode
	}
	return z.Insert(ref.fp, typ, scope, payload)
}

// Remove takes a node out of the flow, shifting the following nodes back
func (z *Zone) Remove(n *Node) error {
	if !z.owns(n) {
		return ErrUnknownNode
	}
	fp := n.fp
	for _, next := range z.nodes[fp+1:] {
		next.decreaseFp()
	}
	z.nodes = append(z.nodes[:fp], z.nodes[fp+1:]...)
	n.setFp(-1)
	return nil
}

func (z *Zone) owns(n *Node) bool {
	return n != nil && n.fp >= 0 && n.fp < len(z.nodes) && z.nodes[n.fp] == n
}

// Validate checks that positions are unique and match the zone order and
// that every Start is closed by a matching End
func (z *Zone) Validate() error {
	var open []int
	for i, n := range z.nodes {
		if i > 0 && z.nodes[i-1].Equal(n) {
			return errors.Wrapf(ErrDuplicatePosition, "%s and %s", z.nodes[i-1], n)
		}
		if n.fp != i {
			return errors.Errorf("flow: node %s found at position %d", n, i)
		}

		switch n.Type {
		case Start:
			open = append(open, n.ScopeID)
		case End:
			if len(open) == 0 || open[len(open)-1] != n.ScopeID {
				return errors.Wrapf(ErrUnbalancedScope, "end of scope %d at %d", n.ScopeID, i)
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return errors.Wrapf(ErrUnbalancedScope, "scope %d never closed", open[len(open)-1])
	}
	return nil
}
