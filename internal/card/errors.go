package card

import "errors"

var (
	// ErrNotFound is returned when a flashcard does not exist for the user.
	ErrNotFound = errors.New("flashcard not found")
	// ErrDuplicateElementID is returned when an element id is already used on the face.
	ErrDuplicateElementID = errors.New("duplicate element id")
	ErrInvalidElement     = errors.New("invalid element")
	ErrInvalidFace        = errors.New("invalid card face")
	ErrUnknownSide        = errors.New("unknown card side")
)
