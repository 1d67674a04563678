package ruling

import (
	"testing"

	"github.com/tsawler/fixedsom/model"
)

func lineTo(x, y float64) model.Segment {
	return model.Segment{Type: model.SegmentLine, Points: []model.Point{{X: x, Y: y}}}
}

func rectFigure(x, y, w, h float64) model.PathFigure {
	return model.PathFigure{
		Start: model.Point{X: x, Y: y},
		Segments: []model.Segment{
			lineTo(x+w, y),
			lineTo(x+w, y+h),
			lineTo(x, y+h),
		},
		Closed: true,
	}
}

func pathPage(prims ...model.Primitive) *model.FixedPage {
	page := model.NewFixedPage(0, 600, 800)
	for _, p := range prims {
		p.Kind = model.PrimitivePath
		page.AddPrimitive(p)
	}
	return page
}

func TestNewExtractor(t *testing.T) {
	e := NewExtractor()
	if e.AngleTolerance != 0.5 {
		t.Errorf("Expected AngleTolerance 0.5, got %f", e.AngleTolerance)
	}
	if e.MaxRuleThickness != 3.0 {
		t.Errorf("Expected MaxRuleThickness 3.0, got %f", e.MaxRuleThickness)
	}
}

func TestExtract_StrokedLine(t *testing.T) {
	page := pathPage(model.Primitive{
		Stroked:   true,
		LineWidth: 1,
		Figures: []model.PathFigure{{
			Start:    model.Point{X: 10, Y: 100},
			Segments: []model.Segment{lineTo(200, 100)},
		}},
	})

	result := NewExtractor().Extract(page)
	if len(result.Lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(result.Lines))
	}
	line := result.Lines[0]
	if !line.IsHorizontal || line.IsVertical {
		t.Errorf("Expected horizontal line, got %+v", line)
	}
	if line.Length() != 190 {
		t.Errorf("Expected length 190, got %f", line.Length())
	}
	if !line.Source.Equal(model.NewFixedNode(0, 0)) {
		t.Errorf("Unexpected source %s", line.Source)
	}
}

func TestExtract_TransformApplied(t *testing.T) {
	page := pathPage(model.Primitive{
		Stroked:   true,
		Transform: model.Translate(5, 50),
		Figures: []model.PathFigure{{
			Start:    model.Point{X: 0, Y: 0},
			Segments: []model.Segment{lineTo(0, 100)},
		}},
	})

	result := NewExtractor().Extract(page)
	verticals := result.Verticals()
	if len(verticals) != 1 {
		t.Fatalf("Expected 1 vertical, got %d", len(verticals))
	}
	if verticals[0].Start != (model.Point{X: 5, Y: 50}) || verticals[0].End != (model.Point{X: 5, Y: 150}) {
		t.Errorf("Unexpected vertical %+v", verticals[0])
	}
}

func TestExtract_DiagonalIgnored(t *testing.T) {
	page := pathPage(model.Primitive{
		Stroked: true,
		Figures: []model.PathFigure{{
			Start:    model.Point{X: 0, Y: 0},
			Segments: []model.Segment{lineTo(100, 100)},
		}},
	})

	result := NewExtractor().Extract(page)
	if len(result.Lines) != 0 {
		t.Errorf("Expected diagonal to be dropped, got %d lines", len(result.Lines))
	}
}

func TestExtract_StrokedRectangle(t *testing.T) {
	page := pathPage(model.Primitive{
		Stroked: true,
		Figures: []model.PathFigure{rectFigure(0, 0, 100, 50)},
	})

	result := NewExtractor().Extract(page)
	if len(result.Rectangles) != 1 {
		t.Fatalf("Expected 1 rectangle, got %d", len(result.Rectangles))
	}
	if got := result.Rectangles[0].BBox; got != model.NewRect(0, 0, 100, 50) {
		t.Errorf("Unexpected bbox %+v", got)
	}
	if len(result.Horizontals()) != 2 || len(result.Verticals()) != 2 {
		t.Errorf("Expected 2+2 edges, got %d horizontals and %d verticals",
			len(result.Horizontals()), len(result.Verticals()))
	}
}

func TestExtract_ThinFilledRectangleIsRule(t *testing.T) {
	page := pathPage(
		model.Primitive{Filled: true, Figures: []model.PathFigure{rectFigure(0, 99, 300, 2)}},
		model.Primitive{Filled: true, Figures: []model.PathFigure{rectFigure(149, 0, 2, 200)}},
	)

	result := NewExtractor().Extract(page)
	if len(result.Rectangles) != 0 {
		t.Errorf("Thin rules should not be kept as rectangles, got %d", len(result.Rectangles))
	}

	h := result.Horizontals()
	if len(h) != 1 || h[0].Start.Y != 100 {
		t.Fatalf("Expected one horizontal rule at y=100, got %+v", h)
	}
	v := result.Verticals()
	if len(v) != 1 || v[0].Start.X != 150 {
		t.Fatalf("Expected one vertical rule at x=150, got %+v", v)
	}
}

func TestExtract_CurveIsNotRectangle(t *testing.T) {
	page := pathPage(model.Primitive{
		Stroked: true,
		Figures: []model.PathFigure{{
			Start: model.Point{X: 0, Y: 0},
			Segments: []model.Segment{
				{Type: model.SegmentCurve, Points: []model.Point{{X: 10, Y: 5}, {X: 20, Y: 5}, {X: 30, Y: 0}}},
			},
		}},
	})

	result := NewExtractor().Extract(page)
	if len(result.Rectangles) != 0 {
		t.Error("Curve should not be detected as rectangle")
	}
	if len(result.Lines) != 1 || !result.Lines[0].IsHorizontal {
		t.Errorf("Expected the curve chord as a horizontal line, got %+v", result.Lines)
	}
}

func TestExtract_IgnoresOtherPrimitives(t *testing.T) {
	page := model.NewFixedPage(0, 100, 100)
	page.AddPrimitive(model.Primitive{Kind: model.PrimitiveGlyphs, Text: "x"})
	if got := NewExtractor().Extract(page); len(got.Lines) != 0 {
		t.Errorf("Expected no lines, got %d", len(got.Lines))
	}
	if got := NewExtractor().Extract(nil); got == nil || len(got.Lines) != 0 {
		t.Error("nil page should give an empty result")
	}
}
