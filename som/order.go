package som

import (
	"sort"
)

// Compare orders two boxes of the page in reading order. It returns -1 when
// a reads before b, 1 when it reads after and 0 only for the same box or two
// elements that coincide.
//
// Elements are ordered line by line. Containers go through four tiers:
// strict spatial, overlap-aware spatial, markup adjacency and finally an
// absolute tiebreak on top edge, leading edge and first markup index. The
// horizontal axis is read right to left only when both boxes are
// right-to-left by majority.
func (p *Page) Compare(a, b NodeID) (int, error) {
	return p.compareIn(nil, a, b)
}

func (p *Page) compareIn(parent composite, a, b NodeID) (int, error) {
	ba, ok := p.Box(a)
	if !ok {
		return 0, &InvalidComparisonError{A: a, B: b, Reason: "unknown first box", Err: ErrUnknownNode}
	}
	bb, ok := p.Box(b)
	if !ok {
		return 0, &InvalidComparisonError{A: a, B: b, Reason: "unknown second box", Err: ErrUnknownNode}
	}
	if a == b {
		return 0, nil
	}

	ea, leafA := ba.(*Element)
	eb, leafB := bb.(*Element)
	switch {
	case leafA && leafB:
		rtl := ea.IsRTL() && eb.IsRTL()
		if blk, ok := parent.(*FixedBlock); ok {
			rtl = blk.IsRTL()
		} else if ea.parent != NoNode && ea.parent == eb.parent {
			rtl = p.isRTL(ea.parent)
		}
		return compareLeaf(ea.rect, eb.rect, rtl), nil
	case leafA || leafB:
		return 0, &InvalidComparisonError{A: a, B: b, Reason: "element compared with container"}
	}

	if ba.Kind() == KindPage || bb.Kind() == KindPage {
		return 0, &InvalidComparisonError{A: a, B: b, Reason: "page is not orderable"}
	}
	return p.compareContainers(a, b)
}

func (p *Page) compareContainers(a, b NodeID) (int, error) {
	ra := p.boxes[a].BoundingRect()
	rb := p.boxes[b].BoundingRect()
	if ra.IsEmpty() || rb.IsEmpty() {
		return 0, &InvalidComparisonError{A: a, B: b, Reason: "empty bounds"}
	}

	rtl := p.isRTL(a) && p.isRTL(b)
	ver := CompareVertical(ra, rb)
	hor := CompareHorizontal(ra, rb, rtl)
	if c, tier := compareSpatial(ver, hor); tier != tierUndecided {
		return c, nil
	}

	firstA, lastA := p.markupSpan(a)
	firstB, lastB := p.markupSpan(b)
	if firstA >= 0 && firstB >= 0 {
		if firstB-lastA == 1 {
			return -1, nil
		}
		if firstA-lastB == 1 {
			return 1, nil
		}
	}

	switch {
	case ra.Top() < rb.Top():
		return -1, nil
	case ra.Top() > rb.Top():
		return 1, nil
	}
	if rtl {
		switch {
		case ra.Right() > rb.Right():
			return -1, nil
		case ra.Right() < rb.Right():
			return 1, nil
		}
	} else {
		switch {
		case ra.Left() < rb.Left():
			return -1, nil
		case ra.Left() > rb.Left():
			return 1, nil
		}
	}
	if firstA >= 0 && firstB >= 0 && firstA != firstB {
		if firstA < firstB {
			return -1, nil
		}
		return 1, nil
	}

	return 0, &InvalidComparisonError{A: a, B: b, Reason: "no rule decided the order"}
}

// SortChildren reorders the children of a container in reading order. The
// sort is stable; the first comparison error aborts it and leaves the order
// unchanged.
func (p *Page) SortChildren(id NodeID) error {
	c, ok := lookup[composite](p, id)
	if !ok {
		return &InvalidComparisonError{A: id, B: NoNode, Reason: "not a container", Err: ErrUnknownNode}
	}

	cont := c.cont()
	sorted := cont.Children()
	var cmpErr error
	sort.SliceStable(sorted, func(i, j int) bool {
		if cmpErr != nil {
			return false
		}
		r, err := p.compareIn(c, sorted[i], sorted[j])
		if err != nil {
			cmpErr = err
			return false
		}
		return r < 0
	})
	if cmpErr != nil {
		return cmpErr
	}
	cont.children = sorted
	return nil
}

// SortTree sorts every container below id, id included. Table rows and
// cells keep their grid order.
func (p *Page) SortTree(id NodeID) error {
	var err error
	p.Walk(id, func(b Box, _ int) bool {
		switch b.Kind() {
		case KindElement, KindTable, KindTableRow:
			return true
		}
		err = p.SortChildren(b.ID())
		return err == nil
	})
	return err
}
