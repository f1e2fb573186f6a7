package card

import (
	"github.com/lernapp-2025/studycards-v3/internal/canvas"
)

// Placement is an element ready for a viewer: its box as percentages of the
// rendered card. HTML holds a text element's content escaped for insertion as markup.
type Placement struct {
	ID        string     `json:"id"`
	Kind      Kind       `json:"type"`
	Content   string     `json:"content"`
	HTML      string     `json:"html,omitempty"`
	Box       canvas.Box `json:"box"`
	Transform string     `json:"transform"`
	ZIndex    int        `json:"zIndex"`
	// Overflow is set when part of the rotated element lies outside the canvas.
	Overflow bool       `json:"overflow,omitempty"`
	Text     *TextStyle `json:"text,omitempty"`
}

// TextStyle is a resolved text style with the font size as a percentage of the card height.
type TextStyle struct {
	FontSizePercent float64 `json:"fontSizePercent"`
	FontWeight      string  `json:"fontWeight"`
	FontStyle       string  `json:"fontStyle"`
	Color           string  `json:"color"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	TextAlign       string  `json:"textAlign"`
}

// Layout projects the face in render order.
func Layout(f Face) []Placement {
	placements := make([]Placement, 0, len(f))
	for e := range Render(f) {
		p := Placement{
			ID:        e.ID,
			Kind:      e.Kind,
			Content:   e.Content,
			Box:       canvas.Project(e.Position, e.Size),
			Transform: canvas.RotateTransform(e.Rotation),
			ZIndex:    e.Z(),
			Overflow:  canvas.Overflows(e.Position, e.Size, e.Rotation),
		}
		if e.Kind == KindText {
			p.HTML = TextHTML(e.Content)
			s := e.Style.Resolved()
			p.Text = &TextStyle{
				FontSizePercent: canvas.FontSizePercent(s.FontSize),
				FontWeight:      s.FontWeight,
				FontStyle:       s.FontStyle,
				Color:           s.Color,
				BackgroundColor: s.BackgroundColor,
				TextAlign:       s.TextAlign,
			}
		}
		placements = append(placements, p)
	}
	return placements
}
