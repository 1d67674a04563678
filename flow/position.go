package flow

import (
	"sort"

	"github.com/tsawler/fixedsom/model"
)

// FixedPosition is a character position inside a fixed page primitive.
// Offset counts characters from the start of the glyph run; it is 0 for
// images.
type FixedPosition struct {
	Node   model.FixedNode
	Offset int
}

// FlowPosition is a position in the flow: a node and a character offset
// into its text
type FlowPosition struct {
	Fp     int
	Offset int
}

type mapEntry struct {
	node   model.FixedNode
	start  int
	end    int
	fp     int
	offset int
	object bool
}

// Mapping translates between fixed and flow positions of a built zone
type Mapping struct {
	zone    *Zone
	entries []mapEntry
}

// NewMapping indexes the Run and Object nodes of a zone
func NewMapping(z *Zone) *Mapping {
	m := &Mapping{zone: z}
	for _, n := range z.nodes {
		switch n.Type {
		case Run:
			offset := 0
			for _, e := range n.Elements() {
				m.entries = append(m.entries, mapEntry{
					node:   e.Node,
					start:  e.StartIndex,
					end:    e.EndIndex,
					fp:     n.fp,
					offset: offset,
				})
				offset += e.EndIndex - e.StartIndex
			}
		case Object:
			if e, ok := n.Object(); ok {
				m.entries = append(m.entries, mapEntry{node: e.Node, fp: n.fp, object: true})
			}
		}
	}

	sort.SliceStable(m.entries, func(i, j int) bool {
		a, b := m.entries[i], m.entries[j]
		if !a.node.Equal(b.node) {
			return pathLess(a.node, b.node)
		}
		return a.start < b.start
	})
	return m
}

// FlowPosition finds the flow position of a fixed position
func (m *Mapping) FlowPosition(pos FixedPosition) (FlowPosition, bool) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return !pathLess(m.entries[i].node, pos.Node)
	})
	for ; i < len(m.entries) && m.entries[i].node.Equal(pos.Node); i++ {
		e := m.entries[i]
		if e.object {
			return FlowPosition{Fp: e.fp}, true
		}
		if pos.Offset >= e.start && pos.Offset <= e.end {
			return FlowPosition{Fp: e.fp, Offset: e.offset + pos.Offset - e.start}, true
		}
	}
	return FlowPosition{}, false
}

// FixedPosition finds the fixed position of a flow position. An offset on
// the boundary between two elements maps to the start of the second.
func (m *Mapping) FixedPosition(pos FlowPosition) (FixedPosition, bool) {
	n, ok := m.zone.At(pos.Fp)
	if !ok {
		return FixedPosition{}, false
	}

	switch n.Type {
	case Object:
		e, ok := n.Object()
		if !ok {
			return FixedPosition{}, false
		}
		return FixedPosition{Node: e.Node}, true
	case Run:
		elems := n.Elements()
		offset := pos.Offset
		for i, e := range elems {
			length := e.EndIndex - e.StartIndex
			if offset < length || (offset == length && i == len(elems)-1) {
				return FixedPosition{Node: e.Node, Offset: e.StartIndex + offset}, offset >= 0
			}
			offset -= length
		}
	}
	return FixedPosition{}, false
}

// NodesFor returns the flow nodes showing content of a primitive
func (m *Mapping) NodesFor(node model.FixedNode) []*Node {
	var out []*Node
	i := sort.Search(len(m.entries), func(i int) bool {
		return !pathLess(m.entries[i].node, node)
	})
	for ; i < len(m.entries) && m.entries[i].node.Equal(node); i++ {
		n := m.zone.nodes[m.entries[i].fp]
		if len(out) == 0 || out[len(out)-1] != n {
			out = append(out, n)
		}
	}
	return out
}
