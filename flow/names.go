package flow

import (
	"sort"

	"github.com/tsawler/fixedsom/model"
)

// NameTable resolves markup names of one page to primitive indices. A
// table belongs to a single DSBuilder invocation.
type NameTable struct {
	page     *model.FixedPage
	names    map[string]int
	canvases map[string][]int

	// primitive indices sorted by node path
	order []int
}

// NewNameTable indexes the named primitives and canvases of a page. When a
// name is used twice the first occurrence wins.
func NewNameTable(fp *model.FixedPage) *NameTable {
	t := &NameTable{
		page:     fp,
		names:    make(map[string]int),
		canvases: make(map[string][]int),
	}
	if fp == nil {
		return t
	}

	t.order = make([]int, len(fp.Primitives))
	for i := range fp.Primitives {
		t.order[i] = i
		name := fp.Primitives[i].Name
		if _, dup := t.names[name]; name != "" && !dup {
			t.names[name] = i
		}
	}
	sort.SliceStable(t.order, func(a, b int) bool {
		return pathLess(t.node(a), t.node(b))
	})

	for _, c := range fp.Canvases {
		if _, dup := t.canvases[c.Name]; c.Name != "" && !dup {
			t.canvases[c.Name] = c.Node.ChildPath()
		}
	}
	return t
}

// pathLess orders nodes by path, ancestors before their descendants
func pathLess(a, b model.FixedNode) bool {
	if c := a.Compare(b); c != 0 {
		return c < 0
	}
	return a.Depth() < b.Depth()
}

func (t *NameTable) node(i int) model.FixedNode {
	return t.page.Primitives[t.order[i]].Node
}

// Len returns the number of resolvable names
func (t *NameTable) Len() int {
	return len(t.names) + len(t.canvases)
}

// Lookup returns the primitives a name stands for, in path order. A
// primitive name yields that primitive; a canvas name yields every
// primitive below the canvas.
func (t *NameTable) Lookup(name string) ([]int, bool) {
	if i, ok := t.names[name]; ok {
		return []int{i}, true
	}
	prefix, ok := t.canvases[name]
	if !ok {
		return nil, false
	}

	lo := sort.Search(len(t.order), func(i int) bool {
		return t.node(i).ComparePrefix(prefix) >= 0
	})
	hi := sort.Search(len(t.order), func(i int) bool {
		return t.node(i).ComparePrefix(prefix) > 0
	})
	out := make([]int, hi-lo)
	copy(out, t.order[lo:hi])
	return out, true
}
