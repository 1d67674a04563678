package som

import (
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// FlowDirection is the inline progression of reconstructed content
type FlowDirection int

const (
	LeftToRight FlowDirection = iota
	RightToLeft
)

func (d FlowDirection) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Properties are the presentation properties a consumer stamps onto the
// flow element produced for a box
type Properties struct {
	FlowDirection   FlowDirection
	Language        language.Tag
	ColumnSpan      int
	BorderThickness float64
}

// Properties computes the presentation properties of a box. Direction comes
// from the nearest direction-carrying box (the box itself first), language
// from the page and border from the enclosing table.
func (p *Page) Properties(id NodeID) (Properties, error) {
	b, ok := p.Box(id)
	if !ok {
		return Properties{}, errors.Wrapf(ErrUnknownNode, "properties of %d", id)
	}

	props := Properties{
		FlowDirection: LeftToRight,
		Language:      p.Language,
		ColumnSpan:    1,
	}
	if c, ok := b.(*TableCell); ok {
		props.ColumnSpan = c.ColumnSpan
	}

	direction := NoNode
	for cur := id; cur != NoNode; cur = p.boxes[cur].Parent() {
		if direction == NoNode && p.carriesDirection(cur) {
			direction = cur
		}
		if t, ok := p.boxes[cur].(*Table); ok {
			props.BorderThickness = t.BorderThickness
			break
		}
	}
	if direction != NoNode && p.isRTL(direction) {
		props.FlowDirection = RightToLeft
	}
	return props, nil
}

// carriesDirection reports whether a box has counted any direction vote
func (p *Page) carriesDirection(id NodeID) bool {
	switch b := p.boxes[id].(type) {
	case *Element:
		return !b.IsImage() && !b.IsWhiteSpace()
	case *FixedBlock:
		return b.vote.LTR+b.vote.RTL > 0
	case *Group:
		return b.vote.LTR+b.vote.RTL > 0
	case *Table:
		return b.vote.LTR+b.vote.RTL > 0
	}
	return false
}
