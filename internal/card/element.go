// Package card holds the positioned-element content model of a flashcard face
// and the operations the editor and the viewer run against it.
package card

import (
	"github.com/google/uuid"

	"github.com/lernapp-2025/studycards-v3/internal/canvas"
)

// Kind distinguishes what an element carries.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// IsValid reports whether k is a known element kind.
func (k Kind) IsValid() bool {
	return k == KindText || k == KindImage
}

// Style is the optional text styling of a text element. Empty fields fall back to DefaultStyle.
type Style struct {
	FontSize        float64 `json:"fontSize,omitempty" yaml:"font_size,omitempty"`
	FontWeight      string  `json:"fontWeight,omitempty" yaml:"font_weight,omitempty"`
	FontStyle       string  `json:"fontStyle,omitempty" yaml:"font_style,omitempty"`
	Color           string  `json:"color,omitempty" yaml:"color,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty" yaml:"background_color,omitempty"`
	TextAlign       string  `json:"textAlign,omitempty" yaml:"text_align,omitempty"`
}

// DefaultStyle returns the style new text elements start with.
func DefaultStyle() Style {
	return Style{
		FontSize:   canvas.DefaultFontSize,
		FontWeight: "normal",
		FontStyle:  "normal",
		Color:      "#000000",
		TextAlign:  "left",
	}
}

// Merge overlays the non-empty fields of patch onto s.
func (s Style) Merge(patch Style) Style {
	if patch.FontSize != 0 {
		s.FontSize = patch.FontSize
	}
	if patch.FontWeight != "" {
		s.FontWeight = patch.FontWeight
	}
	if patch.FontStyle != "" {
		s.FontStyle = patch.FontStyle
	}
	if patch.Color != "" {
		s.Color = patch.Color
	}
	if patch.BackgroundColor != "" {
		s.BackgroundColor = patch.BackgroundColor
	}
	if patch.TextAlign != "" {
		s.TextAlign = patch.TextAlign
	}
	return s
}

// Resolved fills unset fields from DefaultStyle. BackgroundColor stays empty
// (transparent) when unset.
func (s *Style) Resolved() Style {
	if s == nil {
		return DefaultStyle()
	}
	return DefaultStyle().Merge(*s)
}

// Element is one text or image unit placed on a card face.
type Element struct {
	ID       string       `json:"id" yaml:"id"`
	Kind     Kind         `json:"type" yaml:"type"`
	Content  string       `json:"content" yaml:"content"`
	Position canvas.Point `json:"position" yaml:"position"`
	Size     canvas.Size  `json:"size" yaml:"size"`
	Rotation float64      `json:"rotation" yaml:"rotation"`
	// ZIndex is nil until the element is placed on a face; stored content may lack it.
	ZIndex *int   `json:"zIndex,omitempty" yaml:"z_index,omitempty"`
	Style  *Style `json:"style,omitempty" yaml:"style,omitempty"`
}

// Z returns the stacking order, treating a missing value as 0.
func (e Element) Z() int {
	if e.ZIndex == nil {
		return 0
	}
	return *e.ZIndex
}

// Clone returns a deep copy of e.
func (e Element) Clone() Element {
	if e.ZIndex != nil {
		z := *e.ZIndex
		e.ZIndex = &z
	}
	if e.Style != nil {
		s := *e.Style
		e.Style = &s
	}
	return e
}

// NewTextElement returns a text element with the editor defaults.
func NewTextElement(content string) Element {
	style := DefaultStyle()
	return Element{
		ID:       "text-" + uuid.NewString(),
		Kind:     KindText,
		Content:  content,
		Position: canvas.Point{X: 50, Y: 50},
		Size:     canvas.Size{Width: 200, Height: 40},
		Style:    &style,
	}
}

// NewImageElement returns an image element referencing uri with the editor defaults.
func NewImageElement(uri string) Element {
	return Element{
		ID:       "image-" + uuid.NewString(),
		Kind:     KindImage,
		Content:  uri,
		Position: canvas.Point{X: 50, Y: 50},
		Size:     canvas.Size{Width: 150, Height: 100},
	}
}

// Patch is a partial element update. Nil fields are left untouched; a
// non-nil Style is merged field by field into the existing style.
type Patch struct {
	Content  *string       `json:"content,omitempty"`
	Position *canvas.Point `json:"position,omitempty"`
	Size     *canvas.Size  `json:"size,omitempty"`
	Rotation *float64      `json:"rotation,omitempty"`
	ZIndex   *int          `json:"zIndex,omitempty"`
	Style    *Style        `json:"style,omitempty"`
}

// Apply returns e with the patch applied.
func (p Patch) Apply(e Element) Element {
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Size != nil {
		e.Size = *p.Size
	}
	if p.Rotation != nil {
		e.Rotation = *p.Rotation
	}
	if p.ZIndex != nil {
		z := *p.ZIndex
		e.ZIndex = &z
	}
	if p.Style != nil {
		var base Style
		if e.Style != nil {
			base = *e.Style
		}
		merged := base.Merge(*p.Style)
		e.Style = &merged
	}
	return e
}
