package card

import (
	"fmt"
	"time"
)

// Side selects one face of a flashcard.
type Side string

const (
	Front Side = "front"
	Back  Side = "back"
)

// ParseSide converts user input to a Side.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case Front, Back:
		return Side(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
}

// Flashcard owns a front and a back face.
type Flashcard struct {
	ID         string    `json:"id"`
	CardSetID  string    `json:"card_set_id"`
	Front      Face      `json:"front_content"`
	Back       Face      `json:"back_content"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Face returns the face on the given side.
func (c *Flashcard) Face(side Side) (Face, error) {
	switch side {
	case Front:
		return c.Front, nil
	case Back:
		return c.Back, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSide, side)
}

// SetFace replaces the face on the given side.
func (c *Flashcard) SetFace(side Side, f Face) error {
	switch side {
	case Front:
		c.Front = f
	case Back:
		c.Back = f
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSide, side)
	}
	return nil
}
