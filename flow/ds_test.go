package flow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/som"
)

func named(name, s string, r model.Rect) model.Primitive {
	return model.Primitive{Kind: model.PrimitiveGlyphs, Name: name, Text: s, Bounds: r, FontSize: r.Height}
}

func structuredPage() *model.FixedPage {
	fp := model.NewFixedPage(0, 600, 800)
	fp.AddPrimitive(named("t", "Title", model.NewRect(0, 0, 100, 20)))
	fp.AddPrimitive(named("m1", "•", model.NewRect(0, 40, 5, 50)))
	fp.AddPrimitive(named("li", "item", model.NewRect(10, 40, 50, 50)))
	fp.AddPrimitive(named("", "tail", model.NewRect(0, 100, 40, 110)))
	link := named("", "link", model.NewRect(0, 120, 40, 130))
	link.NavigateURI = "https://example.com"
	fp.AddPrimitive(link)
	fp.AddPrimitive(model.Primitive{Kind: model.PrimitivePath, Stroked: true})
	fp.AddPrimitive(named("b", "body", model.NewRect(0, 20, 100, 30)))

	item := model.NewStructureNode(model.StructureListItem, model.NamedElement("li"))
	item.Marker = "m1"
	fp.Structure = model.NewStructureNode(model.StructureSection,
		model.NewStructureNode(model.StructureParagraph, model.NamedElement("t"), model.NamedElement("b")),
		model.NewStructureNode(model.StructureList, item),
		model.NamedElement("missing"),
	)
	return fp
}

func TestDSBuilderPasses(t *testing.T) {
	fp := structuredPage()

	b := NewBuilder(nil)
	require.NoError(t, b.AddStructuredPage(fp, nil))
	z, err := b.Finish()
	require.NoError(t, err)

	want := []step{
		{Type: Boundary},
		{Start, "Section"},
		{Start, "Section"},
		{Start, "Paragraph"},
		{Run, "Title"},
		{Run, "body"},
		{End, "Paragraph"},
		{Start, "List"},
		{Start, "ListItem"},
		{Start, "Paragraph"},
		{Run, "item"},
		{End, "Paragraph"},
		{End, "ListItem"},
		{End, "List"},
		{End, "Section"},
		{Start, "Paragraph"},
		{Run, "tail"},
		{End, "Paragraph"},
		{Start, "Paragraph"},
		{Start, "Hyperlink"},
		{Run, "link"},
		{End, "Hyperlink"},
		{End, "Paragraph"},
		{End, "Section"},
		{Type: Boundary},
	}
	if diff := cmp.Diff(want, summarize(z)); diff != "" {
		t.Errorf("flow mismatch (-want +got):\n%s", diff)
	}
	requireTotalOrder(t, z)
}

func TestDSBuilderVisitsEverything(t *testing.T) {
	fp := structuredPage()
	d := NewDSBuilder(fp, NewNameTable(fp), nil)
	require.NoError(t, d.Build(NewZone()))

	for i := range fp.Primitives {
		assert.True(t, d.Visited(i), "primitive %d", i)
	}
	assert.False(t, d.Visited(len(fp.Primitives)))
	assert.Error(t, d.Build(NewZone()))
}

func TestDSBuilderWithoutStructure(t *testing.T) {
	fp := model.NewFixedPage(3, 600, 800)
	fp.AddPrimitive(named("", "שלום", model.NewRect(0, 0, 50, 20)))
	fp.AddPrimitive(model.Primitive{Kind: model.PrimitiveImage, Source: "x.png", Bounds: model.NewRect(0, 30, 50, 80)})
	fp.AddPrimitive(named("", "עולם", model.NewRect(0, 90, 50, 110)))

	z := NewZone()
	require.NoError(t, NewDSBuilder(fp, NewNameTable(fp), nil).Build(z))

	want := []step{
		{Start, "Section"},
		{Start, "Paragraph"},
		{Run, "שלום"},
		{Object, "x.png"},
		{Run, "עולם"},
		{End, "Paragraph"},
		{End, "Section"},
	}
	if diff := cmp.Diff(want, summarize(z)); diff != "" {
		t.Errorf("flow mismatch (-want +got):\n%s", diff)
	}

	para, _ := z.At(1)
	scope, _ := para.Scope()
	assert.Equal(t, som.RightToLeft, scope.Properties.FlowDirection)
	assert.Equal(t, 3, scope.Page)
}

func TestBuilderNoopForBlankPage(t *testing.T) {
	fp := model.NewFixedPage(0, 600, 800)
	fp.AddPrimitive(named("", "   ", model.NewRect(0, 0, 50, 20)))
	fp.AddPrimitive(model.Primitive{Kind: model.PrimitivePath, Stroked: true})

	b := NewBuilder(nil)
	require.NoError(t, b.AddStructuredPage(fp, nil))
	z, err := b.Finish()
	require.NoError(t, err)
	assert.Equal(t, []step{{Type: Boundary}, {Noop, "0"}, {Type: Boundary}}, summarize(z))
}

func TestNameTableCanvasRange(t *testing.T) {
	fp := model.NewFixedPage(0, 600, 800)
	add := func(name string, path ...int) {
		fp.AddPrimitive(model.Primitive{Kind: model.PrimitiveGlyphs, Name: name, Node: model.NewFixedNode(0, path...)})
	}
	add("", 3, 1)
	add("", 4)
	add("first", 3, 0)
	add("", 2)
	add("first", 5)
	fp.Canvases = []model.Canvas{
		{Name: "c", Node: model.NewFixedNode(0, 3)},
		{Name: "empty", Node: model.NewFixedNode(0, 9)},
	}

	names := NewNameTable(fp)
	assert.Equal(t, 3, names.Len())

	got, ok := names.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, []int{2, 0}, got)

	got, ok = names.Lookup("first")
	require.True(t, ok)
	assert.Equal(t, []int{2}, got)

	got, ok = names.Lookup("empty")
	require.True(t, ok)
	assert.Empty(t, got)

	_, ok = names.Lookup("missing")
	assert.False(t, ok)
}
