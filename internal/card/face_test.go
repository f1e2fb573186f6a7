package card

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lernapp-2025/studycards-v3/internal/canvas"
)

func ptr[T any](v T) *T { return &v }

func text(id string, z int) Element {
	return Element{
		ID:       id,
		Kind:     KindText,
		Content:  id,
		Position: canvas.Point{X: 50, Y: 50},
		Size:     canvas.Size{Width: 200, Height: 40},
		ZIndex:   ptr(z),
		Style:    &Style{FontSize: 20, Color: "#ff0000"},
	}
}

func ids(seq []Element) []string {
	out := make([]string, len(seq))
	for i, e := range seq {
		out[i] = e.ID
	}
	return out
}

func TestAddElement(t *testing.T) {
	tests := []struct {
		name  string
		face  Face
		el    Element
		wantZ int
	}{
		{
			name:  "missing zIndex defaults to element count",
			face:  Face{text("a", 0), text("b", 1)},
			el:    Element{ID: "c", Kind: KindImage},
			wantZ: 2,
		},
		{
			name:  "first element gets zero",
			face:  nil,
			el:    Element{ID: "a", Kind: KindText},
			wantZ: 0,
		},
		{
			name:  "explicit zIndex is kept",
			face:  Face{text("a", 0)},
			el:    text("b", 7),
			wantZ: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.face.Clone()
			got := AddElement(tt.face, tt.el)

			require.Len(t, got, len(tt.face)+1)
			assert.Equal(t, tt.el.ID, got[len(got)-1].ID)
			assert.Equal(t, tt.wantZ, got[len(got)-1].Z())
			assert.Equal(t, before, tt.face)
		})
	}
}

func TestRender_StableZOrder(t *testing.T) {
	var face Face
	face = AddElement(face, Element{ID: "A", ZIndex: ptr(0)})
	face = AddElement(face, Element{ID: "B", ZIndex: ptr(0)})
	face = AddElement(face, Element{ID: "C", ZIndex: ptr(1)})

	assert.Equal(t, []string{"A", "B", "C"}, ids(slices.Collect(Render(face))))

	face = Face{text("top", 5), text("x", 1), text("y", 1), {ID: "nil-z"}}
	got := slices.Collect(Render(face))
	assert.Equal(t, []string{"nil-z", "x", "y", "top"}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Z(), got[i].Z())
	}
}

func TestRender_IsRestartableAndReadOnly(t *testing.T) {
	face := Face{text("b", 2), text("a", 1)}
	seq := Render(face)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)

	first[0].Content = "changed"
	first[0].Style.Color = "#00ff00"
	*first[0].ZIndex = 99
	assert.Equal(t, "a", face[1].Content)
	assert.Equal(t, "#ff0000", face[1].Style.Color)
	assert.Equal(t, 1, face[1].Z())
	assert.Equal(t, first[1], slices.Collect(Render(face))[1])
}

func TestRender_StopsEarly(t *testing.T) {
	face := Face{text("a", 0), text("b", 1), text("c", 2)}
	var seen []string
	for e := range Render(face) {
		seen = append(seen, e.ID)
		if e.ID == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestUpdateElement(t *testing.T) {
	face := Face{text("A", 0), text("B", 1)}

	t.Run("missing id is a no-op", func(t *testing.T) {
		got := UpdateElement(face, "missing", Patch{Content: ptr("x")})
		assert.Equal(t, face, got)
	})

	t.Run("only the patched field changes", func(t *testing.T) {
		got := UpdateElement(face, "A", Patch{Rotation: ptr(45.0)})

		want := text("A", 0)
		want.Rotation = 45
		assert.Equal(t, want, got[0])
		assert.Equal(t, face[1], got[1])
		assert.Equal(t, 0.0, face[0].Rotation)
	})

	t.Run("style merges field by field", func(t *testing.T) {
		got := UpdateElement(face, "B", Patch{Style: &Style{FontWeight: "bold"}})

		assert.Equal(t, &Style{FontSize: 20, Color: "#ff0000", FontWeight: "bold"}, got[1].Style)
		assert.Equal(t, "", face[1].Style.FontWeight)
	})

	t.Run("style patch on image without style", func(t *testing.T) {
		img := Face{{ID: "img", Kind: KindImage}}
		got := UpdateElement(img, "img", Patch{Style: &Style{Color: "#111111"}})
		assert.Equal(t, &Style{Color: "#111111"}, got[0].Style)
	})
}

func TestDeleteElement(t *testing.T) {
	face := Face{text("A", 0), text("B", 1), text("C", 2)}

	got := DeleteElement(face, "B")
	assert.Equal(t, []string{"A", "C"}, ids(got))
	assert.Len(t, face, 3)

	assert.Equal(t, face, DeleteElement(face, "missing"))
}

func TestMoveElement(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   canvas.Point
	}{
		{name: "clamps at zero", dx: -1000, dy: -1000, want: canvas.Point{X: 0, Y: 0}},
		{name: "relative offset", dx: 10, dy: -20, want: canvas.Point{X: 60, Y: 30}},
		{name: "no upper clamp", dx: 1000, dy: 500, want: canvas.Point{X: 1050, Y: 550}},
		{name: "clamps one axis only", dx: -60, dy: 5, want: canvas.Point{X: 0, Y: 55}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			face := Face{text("A", 0)}
			got := MoveElement(face, "A", tt.dx, tt.dy)
			assert.Equal(t, tt.want, got[0].Position)
			assert.Equal(t, canvas.Point{X: 50, Y: 50}, face[0].Position)
		})
	}

	face := Face{text("A", 0)}
	assert.Equal(t, face, MoveElement(face, "missing", 5, 5))
}

func TestInsert(t *testing.T) {
	face := Face{text("A", 0)}

	tests := []struct {
		name    string
		el      Element
		wantErr error
	}{
		{name: "adds new element", el: Element{ID: "B", Kind: KindImage}},
		{name: "duplicate id", el: Element{ID: "A", Kind: KindText}, wantErr: ErrDuplicateElementID},
		{name: "empty id", el: Element{Kind: KindText}, wantErr: ErrInvalidElement},
		{name: "unknown kind", el: Element{ID: "C", Kind: "video"}, wantErr: ErrInvalidElement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Insert(face, tt.el)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, face, got)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, 2)
			assert.Equal(t, 1, got[1].Z())
		})
	}
}

func TestDecodeFace(t *testing.T) {
	const element = `{"id":"a","type":"text","content":"Hallo","position":{"x":1,"y":2},"size":{"width":3,"height":4},"rotation":0,"zIndex":0}`

	tests := []struct {
		name    string
		input   string
		wantIDs []string
		wantErr bool
	}{
		{name: "bare array", input: "[" + element + "]", wantIDs: []string{"a"}},
		{name: "wrapped object", input: `{"elements":[` + element + `]}`, wantIDs: []string{"a"}},
		{name: "wrapped without elements", input: `{}`, wantIDs: []string{}},
		{name: "empty", input: "", wantIDs: []string{}},
		{name: "null", input: "null", wantIDs: []string{}},
		{name: "scalar", input: `"text"`, wantErr: true},
		{name: "broken", input: `[{"id":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFace([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}
}

func TestEncodeFace(t *testing.T) {
	data, err := EncodeFace(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	data, err = EncodeFace(Face{{ID: "a", Kind: KindImage, Content: "https://example.com/a.png", ZIndex: ptr(3)}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","type":"image","content":"https://example.com/a.png","position":{"x":0,"y":0},"size":{"width":0,"height":0},"rotation":0,"zIndex":3}]`, string(data))
}
