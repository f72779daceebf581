package gallery

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func makeItems(ids ...string) []Item {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, Item{ID: id, Title: "Item " + id})
	}
	return items
}

func columnIDs(cols Columns) [][]string {
	out := make([][]string, len(cols))
	for i, col := range cols {
		out[i] = []string{}
		for _, item := range col {
			out[i] = append(out[i], item.ID)
		}
	}
	return out
}

func itemIDs(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestArrangeScenario(t *testing.T) {
	items := makeItems("1", "2", "3", "4")
	cols := Arrange(items, NewIDSet("2"), NewIDSet("4"), 2)

	want := [][]string{{"2", "3"}, {"1"}}
	if diff := cmp.Diff(want, columnIDs(cols)); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestArrangeRoundRobin(t *testing.T) {
	items := makeItems("i0", "i1", "i2", "i3", "i4", "i5", "i6")
	cols := Arrange(items, NewIDSet(), NewIDSet(), 3)

	want := [][]string{
		{"i0", "i3", "i6"},
		{"i1", "i4"},
		{"i2", "i5"},
	}
	if diff := cmp.Diff(want, columnIDs(cols)); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderPinIsStable(t *testing.T) {
	items := makeItems("A", "B", "C")
	got := Order(items, NewIDSet("B"), NewIDSet())
	require.Equal(t, []string{"B", "A", "C"}, itemIDs(got))

	got = Order(makeItems("A", "B", "C", "D", "E"), NewIDSet("D", "B"), NewIDSet())
	require.Equal(t, []string{"B", "D", "A", "C", "E"}, itemIDs(got))
}

func TestArrangeEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		items   []Item
		columns int
		want    [][]string
	}{
		{name: "empty list", items: nil, columns: 3, want: [][]string{{}, {}, {}}},
		{name: "single column", items: makeItems("a", "b", "c"), columns: 1, want: [][]string{{"a", "b", "c"}}},
		{name: "zero columns clamps", items: makeItems("a", "b"), columns: 0, want: [][]string{{"a", "b"}}},
		{name: "more columns than items", items: makeItems("a"), columns: 4, want: [][]string{{"a"}, {}, {}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := Arrange(tt.items, NewIDSet(), NewIDSet(), tt.columns)
			for i, col := range cols {
				require.NotNil(t, col, "column %d", i)
			}
			if diff := cmp.Diff(tt.want, columnIDs(cols)); diff != "" {
				t.Fatalf("columns mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArrangePartitionInvariant(t *testing.T) {
	ids := make([]string, 0, 23)
	for i := 0; i < 23; i++ {
		ids = append(ids, fmt.Sprintf("id-%02d", i))
	}
	items := makeItems(ids...)
	pinned := NewIDSet("id-05", "id-17", "id-22", "missing")
	hidden := NewIDSet("id-03", "id-17", "id-10")

	want := itemIDs(Order(items, pinned, hidden))
	for columns := 1; columns <= 6; columns++ {
		cols := Arrange(items, pinned, hidden, columns)
		require.Len(t, cols, columns)

		seen := map[string]int{}
		for _, col := range cols {
			for _, item := range col {
				seen[item.ID]++
				require.False(t, hidden.Has(item.ID), "hidden item %s in columns=%d", item.ID, columns)
			}
		}
		for id, n := range seen {
			require.Equal(t, 1, n, "item %s appears %d times", id, n)
		}
		require.Equal(t, want, itemIDs(cols.Flatten()), "columns=%d", columns)
	}
}

func TestColumnsLocate(t *testing.T) {
	cols := Arrange(makeItems("a", "b", "c", "d", "e"), NewIDSet(), NewIDSet(), 2)
	col, row := cols.Locate("e")
	require.Equal(t, 0, col)
	require.Equal(t, 2, row)

	col, row = cols.Locate("nope")
	require.Equal(t, -1, col)
	require.Equal(t, -1, row)
}

func TestIDSetToggleAndPrune(t *testing.T) {
	s := NewIDSet()
	require.True(t, s.Toggle("a"))
	require.True(t, s.Toggle("b"))
	require.False(t, s.Toggle("a"))
	require.Equal(t, []string{"b"}, s.IDs())

	s.Add("gone")
	removed := s.Prune(makeItems("b", "c"))
	require.Equal(t, 1, removed)
	require.Equal(t, []string{"b"}, s.IDs())

	var zero IDSet
	require.False(t, zero.Has("x"))
	require.Equal(t, 0, zero.Prune(nil))
}

func TestAspectOf(t *testing.T) {
	require.Equal(t, AspectTall, AspectOf(Item{Featured: true, Category: "landscape"}))
	require.Equal(t, AspectWide, AspectOf(Item{Category: "Landscape"}))
	require.Equal(t, AspectTall, AspectOf(Item{Category: "portrait"}))
	require.Equal(t, AspectSquare, AspectOf(Item{Category: "code"}))
	require.Equal(t, "wide", AspectWide.String())
}

func TestParseSection(t *testing.T) {
	require.Equal(t, SectionBlog, ParseSection(" Posts "))
	require.Equal(t, SectionStories, ParseSection("story"))
	require.Equal(t, SectionProjects, ParseSection("projects"))
	require.Equal(t, SectionPhotos, ParseSection(""))
	require.Equal(t, SectionPhotos, ParseSection("unknown"))
}
