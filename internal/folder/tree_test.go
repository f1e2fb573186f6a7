package folder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sp(s string) *string { return &s }

func rec(id string, parent *string, order int) Folder {
	return Folder{ID: id, Name: "folder " + id, ParentID: parent, OrderIndex: order, UserID: "user-1"}
}

func shape(nodes []*Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		if len(n.Children) == 0 {
			out = append(out, n.ID)
			continue
		}
		out = append(out, map[string][]any{n.ID: shape(n.Children)})
	}
	return out
}

func permutations(in []Folder) [][]Folder {
	if len(in) <= 1 {
		return [][]Folder{append([]Folder(nil), in...)}
	}
	var out [][]Folder
	for i := range in {
		rest := make([]Folder, 0, len(in)-1)
		rest = append(rest, in[:i]...)
		rest = append(rest, in[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]Folder{in[i]}, p...))
		}
	}
	return out
}

func TestBuildTree_OrderIndependent(t *testing.T) {
	records := []Folder{
		rec("1", nil, 0),
		rec("2", sp("1"), 0),
		rec("3", sp("1"), 1),
	}
	want := []any{map[string][]any{"1": {"2", "3"}}}

	for _, p := range permutations(records) {
		assert.Equal(t, want, shape(BuildTree(p)))
	}
}

func TestBuildTree(t *testing.T) {
	tests := []struct {
		name    string
		records []Folder
		want    []any
	}{
		{
			name:    "empty input",
			records: nil,
			want:    []any{},
		},
		{
			name: "orphans become roots",
			records: []Folder{
				rec("a", nil, 1),
				rec("b", sp("gone"), 0),
				rec("c", sp("b"), 0),
			},
			want: []any{map[string][]any{"b": {"c"}}, "a"},
		},
		{
			name: "equal order index keeps input order",
			records: []Folder{
				rec("x", nil, 0),
				rec("y", nil, 0),
				rec("z", nil, -1),
			},
			want: []any{"z", "x", "y"},
		},
		{
			name: "nested siblings sorted",
			records: []Folder{
				rec("r", nil, 0),
				rec("r2", sp("r"), 2),
				rec("r0", sp("r"), 0),
				rec("r1", sp("r"), 1),
				rec("r10", sp("r1"), 0),
			},
			want: []any{map[string][]any{"r": {"r0", map[string][]any{"r1": {"r10"}}, "r2"}}},
		},
		{
			name: "self reference is a root",
			records: []Folder{
				rec("s", sp("s"), 0),
			},
			want: []any{"s"},
		},
		{
			name: "loop is cut at its first record",
			records: []Folder{
				rec("p", sp("q"), 0),
				rec("q", sp("p"), 0),
				rec("root", nil, 5),
			},
			want: []any{map[string][]any{"p": {"q"}}, "root"},
		},
		{
			name: "record hanging off a loop stays under its parent",
			records: []Folder{
				rec("c", sp("a"), 0),
				rec("a", sp("b"), 0),
				rec("b", sp("a"), 0),
			},
			want: []any{map[string][]any{"a": {"c", "b"}}},
		},
		{
			name: "chain leading into a loop",
			records: []Folder{
				rec("c", sp("b"), 0),
				rec("b", sp("a"), 0),
				rec("a", sp("b"), 0),
			},
			want: []any{map[string][]any{"b": {"c", "a"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shape(BuildTree(tt.records)))
		})
	}
}

func TestBuildTree_IsDeterministic(t *testing.T) {
	records := []Folder{rec("a", nil, 0), rec("b", nil, 0), rec("c", sp("a"), 0), rec("d", sp("a"), 0)}
	assert.Equal(t, shape(BuildTree(records)), shape(BuildTree(records)))
}

func TestAttachCardSets(t *testing.T) {
	roots := BuildTree([]Folder{rec("a", nil, 0), rec("b", sp("a"), 0)})
	AttachCardSets(roots, []CardSetSummary{
		{ID: "s1", Name: "Vokabeln", FolderID: sp("b"), CardCount: 3},
		{ID: "s2", Name: "Lose", FolderID: nil},
		{ID: "s3", Name: "Fremd", FolderID: sp("other")},
		{ID: "s4", Name: "Grammatik", FolderID: sp("a"), CardCount: 1},
	})

	require.Len(t, roots, 1)
	assert.Equal(t, []CardSetSummary{{ID: "s4", Name: "Grammatik", FolderID: sp("a"), CardCount: 1}}, roots[0].CardSets)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "s1", roots[0].Children[0].CardSets[0].ID)
}

func TestStatsOf(t *testing.T) {
	roots := BuildTree([]Folder{rec("a", nil, 0), rec("b", sp("a"), 0), rec("c", sp("b"), 0), rec("d", sp("a"), 1)})
	AttachCardSets(roots, []CardSetSummary{
		{ID: "s1", FolderID: sp("a")},
		{ID: "s2", FolderID: sp("b")},
		{ID: "s3", FolderID: sp("c")},
		{ID: "s4", FolderID: sp("c")},
	})

	assert.Equal(t, Stats{CardSetCount: 1, SubfolderCount: 2, TotalCardSets: 4}, StatsOf(Find(roots, "a")))
	assert.Equal(t, Stats{CardSetCount: 2, SubfolderCount: 0, TotalCardSets: 2}, StatsOf(Find(roots, "c")))
	assert.Nil(t, Find(roots, "missing"))
}

func TestExportStructure(t *testing.T) {
	roots := BuildTree([]Folder{
		{ID: "a", Name: "Sprachen", OrderIndex: 0},
		{ID: "b", Name: "Englisch", ParentID: sp("a"), OrderIndex: 0},
		{ID: "c", Name: "Mathe", OrderIndex: 1},
	})
	AttachCardSets(roots, []CardSetSummary{{ID: "s", FolderID: sp("b")}, {ID: "t", FolderID: sp("b")}})

	want := "Folder Structure:\n" +
		"- Sprachen (0 sets)\n" +
		"  - Englisch (2 sets)\n" +
		"- Mathe (0 sets)\n"
	assert.Equal(t, want, ExportStructure(roots))
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "", FormatPath(nil))
	assert.Equal(t, "Sprachen / Englisch / Verben", FormatPath([]Folder{{Name: "Sprachen"}, {Name: "Englisch"}, {Name: "Verben"}}))
}

func TestPalette(t *testing.T) {
	assert.Len(t, Palette, 8)
	assert.True(t, IsPaletteColor("#7EC4FF"))
	assert.False(t, IsPaletteColor("#7ec4ff"))
	for range 20 {
		assert.True(t, IsPaletteColor(RandomColor()))
	}
}
