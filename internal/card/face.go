package card

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"sort"
)

// Face is one side of a flashcard: its elements in insertion order.
//
// The operations below never modify the face they are given; each returns the
// resulting face.
type Face []Element

// Index returns the position of the element with id, or -1.
func (f Face) Index(id string) int {
	return slices.IndexFunc(f, func(e Element) bool { return e.ID == id })
}

// Clone returns a deep copy of f.
func (f Face) Clone() Face {
	if f == nil {
		return nil
	}
	out := make(Face, len(f))
	for i, e := range f {
		out[i] = e.Clone()
	}
	return out
}

// AddElement appends el on top of the face. A missing zIndex becomes the
// current element count. The id is not checked; see Insert.
func AddElement(f Face, el Element) Face {
	el = el.Clone()
	if el.ZIndex == nil {
		z := len(f)
		el.ZIndex = &z
	}
	out := make(Face, 0, len(f)+1)
	out = append(out, f...)
	return append(out, el)
}

// UpdateElement merges patch into the element with id. An unknown id returns f unchanged.
func UpdateElement(f Face, id string, patch Patch) Face {
	i := f.Index(id)
	if i < 0 {
		return f
	}
	out := slices.Clone(f)
	out[i] = patch.Apply(f[i].Clone())
	return out
}

// DeleteElement removes the element with id. An unknown id returns f unchanged.
func DeleteElement(f Face, id string) Face {
	i := f.Index(id)
	if i < 0 {
		return f
	}
	return slices.Delete(slices.Clone(f), i, i+1)
}

// MoveElement shifts the element with id by (dx, dy), keeping both coordinates
// non-negative. There is no upper bound.
func MoveElement(f Face, id string, dx, dy float64) Face {
	i := f.Index(id)
	if i < 0 {
		return f
	}
	out := slices.Clone(f)
	e := f[i].Clone()
	e.Position.X = max(0, e.Position.X+dx)
	e.Position.Y = max(0, e.Position.Y+dy)
	out[i] = e
	return out
}

// Render yields the elements in ascending zIndex, equal values keeping their
// insertion order. Each iteration yields fresh copies.
func Render(f Face) iter.Seq[Element] {
	order := make([]int, len(f))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return f[order[a]].Z() < f[order[b]].Z()
	})
	return func(yield func(Element) bool) {
		for _, i := range order {
			if !yield(f[i].Clone()) {
				return
			}
		}
	}
}

// Insert is the checked entry point used by editing callers: it rejects
// elements that are malformed or whose id is already on the face, then adds.
func Insert(f Face, el Element) (Face, error) {
	if el.ID == "" {
		return f, fmt.Errorf("%w: id is required", ErrInvalidElement)
	}
	if !el.Kind.IsValid() {
		return f, fmt.Errorf("%w: unknown type %q", ErrInvalidElement, el.Kind)
	}
	if f.Index(el.ID) >= 0 {
		return f, fmt.Errorf("%w: %s", ErrDuplicateElementID, el.ID)
	}
	return AddElement(f, el), nil
}

// faceDocument is the stored shape of a face. Older content is a bare element
// array, newer content wraps it in an object.
type faceDocument struct {
	bare    []Element
	wrapped *struct {
		Elements []Element `json:"elements"`
	}
}

func (d *faceDocument) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return nil
	case trimmed[0] == '[':
		return json.Unmarshal(trimmed, &d.bare)
	case trimmed[0] == '{':
		d.wrapped = &struct {
			Elements []Element `json:"elements"`
		}{}
		return json.Unmarshal(trimmed, d.wrapped)
	default:
		return fmt.Errorf("%w: expected an array or an object", ErrInvalidFace)
	}
}

func (d faceDocument) elements() Face {
	if d.wrapped != nil {
		return d.wrapped.Elements
	}
	return d.bare
}

// UnmarshalJSON accepts either stored shape.
func (f *Face) UnmarshalJSON(data []byte) error {
	var doc faceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*f = doc.elements()
	return nil
}

// DecodeFace parses stored face content. Empty content is an empty face.
func DecodeFace(data []byte) (Face, error) {
	var f Face
	if len(bytes.TrimSpace(data)) == 0 {
		return Face{}, nil
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode face: %w", err)
	}
	if f == nil {
		f = Face{}
	}
	return f, nil
}

// EncodeFace serializes a face as a bare element array.
func EncodeFace(f Face) ([]byte, error) {
	if f == nil {
		f = Face{}
	}
	return json.Marshal([]Element(f))
}
