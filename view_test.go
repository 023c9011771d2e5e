package shieldbar

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourRows() []RowDescriptor {
	return []RowDescriptor{
		{Icon: "a", Label: "One", Severity: SeverityOK},
		{Icon: "b", Label: "Two", Severity: SeverityWarn},
		{Icon: "c", Label: "Three", Severity: SeverityError},
		{Icon: "d", Label: "Four", Severity: SeverityUnknown},
	}
}

// TestBuildView_RowOffsets checks the four row scenario: rows of height 40 in
// a 240 high list are stacked down from the top.
func TestBuildView_RowOffsets(t *testing.T) {
	layout := DefaultLayout()
	require.Equal(t, 40.0, layout.RowHeight)
	require.Equal(t, 240.0, layout.ListHeight)

	tree := BuildView(DefaultSize, fourRows(), layout)

	list := tree.Find("list")
	require.NotNil(t, list)
	require.Len(t, list.Children, 4)

	var offsets []float64
	for _, row := range list.Children {
		offsets = append(offsets, row.Frame.MinY())
	}

	assert.Equal(t, []float64{190, 150, 110, 70}, offsets)

	for i, row := range list.Children {
		assert.Equal(t, layout.ListTop()-float64(i+1)*layout.RowHeight, row.Frame.MinY())
		assert.Equal(t, layout.RowHeight, row.Frame.Size.Height)
	}

	// The slot at the bottom of the region stays empty.
	for _, row := range list.Children {
		assert.GreaterOrEqual(t, row.Frame.MinY(), 40.0)
	}
}

func TestBuildView_Deterministic(t *testing.T) {
	a := BuildView(DefaultSize, fourRows(), DefaultLayout())
	b := BuildView(DefaultSize, fourRows(), DefaultLayout())

	assert.Equal(t, a, b)
}

// TestBuildView_NoAliasing verifies that trees built from the same input can
// be mutated independently.
func TestBuildView_NoAliasing(t *testing.T) {
	rows := fourRows()
	a := BuildView(DefaultSize, rows, DefaultLayout())
	b := BuildView(DefaultSize, rows, DefaultLayout())

	label := a.Find("row-0-label")
	require.NotNil(t, label)
	label.Text = "changed"
	a.Find("list").Children[1].Frame.Origin.Y = -1

	assert.Equal(t, "One", b.Find("row-0-label").Text)
	assert.Equal(t, 150.0, b.Find("row-1").Frame.MinY())

	seen := make(map[*View]bool)
	a.Walk(func(v *View) bool {
		seen[v] = true
		return true
	})
	b.Walk(func(v *View) bool {
		assert.False(t, seen[v], "node %q is shared", v.Name)
		return true
	})
}

func TestBuildView_Structure(t *testing.T) {
	size := DefaultSize
	layout := DefaultLayout()
	tree := BuildView(size, fourRows(), layout)

	assert.Equal(t, KindEffect, tree.Kind)
	assert.Equal(t, NewRect(0, 0, size.Width, size.Height), tree.Frame)

	names := make([]string, 0, len(tree.Children))
	for _, child := range tree.Children {
		names = append(names, child.Name)
	}
	assert.Equal(t, []string{"header", "divider", "list", "footer"}, names)

	header := tree.Find("header")
	assert.Equal(t, KindText, header.Kind)
	assert.Equal(t, layout.Title, header.Text)
	assert.Greater(t, header.Frame.MinY(), tree.Find("divider").Frame.MinY())

	divider := tree.Find("divider")
	assert.Equal(t, KindSeparator, divider.Kind)
	assert.Equal(t, 1.0, divider.Frame.Size.Height)
	assert.GreaterOrEqual(t, divider.Frame.MinY(), tree.Find("list").Frame.MaxY())

	list := tree.Find("list")
	assert.Equal(t, KindScroll, list.Kind)
	assert.Equal(t, NewRect(0, layout.FooterHeight, size.Width, layout.ListHeight), list.Frame)

	footer := tree.Find("footer")
	assert.Equal(t, NewRect(0, 0, size.Width, layout.FooterHeight), footer.Frame)
	assert.Equal(t, KindSymbol, tree.Find("footer-logo").Kind)
	assert.Equal(t, "Version "+layout.Version, tree.Find("footer-version").Text)
}

func TestBuildView_RowComposition(t *testing.T) {
	rows := fourRows()
	tree := BuildView(DefaultSize, rows, DefaultLayout())

	for i, row := range rows {
		name := fmt.Sprintf("row-%d", i)

		node := tree.Find(name)
		require.NotNil(t, node, name)
		require.Len(t, node.Children, 3)

		icon, label, status := node.Children[0], node.Children[1], node.Children[2]

		assert.Equal(t, KindSymbol, icon.Kind)
		assert.Equal(t, row.Icon, icon.Symbol)

		assert.Equal(t, KindText, label.Kind)
		assert.Equal(t, row.Label, label.Text)

		assert.Equal(t, KindIndicator, status.Kind)
		assert.Equal(t, row.Severity.Color(), status.Color)

		assert.Less(t, icon.Frame.Origin.X, label.Frame.Origin.X)
		assert.Less(t, label.Frame.Origin.X+label.Frame.Size.Width, status.Frame.Origin.X)
	}
}

// TestBuildView_RefreshInert verifies the footer refresh button has no bound
// handler.
func TestBuildView_RefreshInert(t *testing.T) {
	tree := BuildView(DefaultSize, nil, DefaultLayout())

	refresh := tree.Find("footer-refresh")
	require.NotNil(t, refresh)
	assert.Equal(t, KindButton, refresh.Kind)
	assert.Empty(t, refresh.Action)

	tree.Walk(func(v *View) bool {
		assert.Empty(t, v.Action, "node %q has a handler", v.Name)
		return true
	})
}

func TestBuildView_EmptyRows(t *testing.T) {
	tree := BuildView(DefaultSize, nil, DefaultLayout())

	list := tree.Find("list")
	require.NotNil(t, list)
	assert.Empty(t, list.Children)
}

func TestView_FindMissing(t *testing.T) {
	tree := BuildView(DefaultSize, fourRows(), DefaultLayout())

	assert.Nil(t, tree.Find("row-4"))

	var nilView *View
	assert.Nil(t, nilView.Find("header"))
}

func TestLayout_MinSizeFitsDefault(t *testing.T) {
	minSize := DefaultLayout().MinSize()

	assert.LessOrEqual(t, minSize.Width, DefaultSize.Width)
	assert.LessOrEqual(t, minSize.Height, DefaultSize.Height)
}
