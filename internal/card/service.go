package card

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// Service runs face edits as load, apply, save against a Repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get returns a flashcard.
func (s *Service) Get(ctx context.Context, id, userID string) (*Flashcard, error) {
	return s.repo.FindByID(ctx, id, userID)
}

// List returns the flashcards of a card set.
func (s *Service) List(ctx context.Context, cardSetID, userID string) ([]Flashcard, error) {
	return s.repo.ListByCardSet(ctx, cardSetID, userID)
}

// Render returns the face's elements in stacking order.
func (s *Service) Render(ctx context.Context, id, userID string, side Side) ([]Element, error) {
	face, err := s.load(ctx, id, userID, side)
	if err != nil {
		return nil, err
	}
	return slices.Collect(Render(face)), nil
}

// Layout returns the face projected for a viewer.
func (s *Service) Layout(ctx context.Context, id, userID string, side Side) ([]Placement, error) {
	face, err := s.load(ctx, id, userID, side)
	if err != nil {
		return nil, err
	}
	return Layout(face), nil
}

// AddElement places el on top of the face and returns it as stored.
func (s *Service) AddElement(ctx context.Context, id, userID string, side Side, el Element) (Element, error) {
	if el.Kind == KindImage && !ValidateImageURI(el.Content) {
		return Element{}, fmt.Errorf("%w: unsupported image reference", ErrInvalidElement)
	}
	face, err := s.edit(ctx, id, userID, side, func(f Face) (Face, error) {
		return Insert(f, el)
	})
	if err != nil {
		return Element{}, err
	}
	return face[len(face)-1], nil
}

// UpdateElement merges patch into an element. An unknown element id leaves the face untouched.
func (s *Service) UpdateElement(ctx context.Context, id, userID string, side Side, elementID string, patch Patch) (Face, error) {
	return s.edit(ctx, id, userID, side, func(f Face) (Face, error) {
		i := f.Index(elementID)
		if i < 0 {
			return f, errUnchanged
		}
		if patch.Content != nil && f[i].Kind == KindImage && !ValidateImageURI(*patch.Content) {
			return f, fmt.Errorf("%w: unsupported image reference", ErrInvalidElement)
		}
		return UpdateElement(f, elementID, patch), nil
	})
}

// MoveElement drags an element by a relative offset.
func (s *Service) MoveElement(ctx context.Context, id, userID string, side Side, elementID string, dx, dy float64) (Face, error) {
	return s.edit(ctx, id, userID, side, func(f Face) (Face, error) {
		if f.Index(elementID) < 0 {
			return f, errUnchanged
		}
		return MoveElement(f, elementID, dx, dy), nil
	})
}

// DeleteElement removes an element.
func (s *Service) DeleteElement(ctx context.Context, id, userID string, side Side, elementID string) (Face, error) {
	return s.edit(ctx, id, userID, side, func(f Face) (Face, error) {
		if f.Index(elementID) < 0 {
			return f, errUnchanged
		}
		return DeleteElement(f, elementID), nil
	})
}

// ReplaceFace stores a whole face document after validating it.
func (s *Service) ReplaceFace(ctx context.Context, id, userID string, side Side, raw []byte) (Face, error) {
	if err := ValidateFaceJSON(raw); err != nil {
		return nil, err
	}
	decoded, err := DecodeFace(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFace, err)
	}

	face := Face{}
	for _, el := range decoded {
		if el.Kind == KindImage && !ValidateImageURI(el.Content) {
			return nil, fmt.Errorf("%w: element %s: unsupported image reference", ErrInvalidElement, el.ID)
		}
		// Stored zIndex values are kept; Insert only fills the missing ones.
		face, err = Insert(face, el)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.SaveFace(ctx, id, userID, side, face); err != nil {
		return nil, err
	}
	s.logger.Debug("replaced card face", "flashcard_id", id, "side", side, "elements", len(face))
	return face, nil
}

func (s *Service) load(ctx context.Context, id, userID string, side Side) (Face, error) {
	c, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return c.Face(side)
}

// errUnchanged tells edit to skip the write and return the loaded face.
var errUnchanged = errors.New("face unchanged")

func (s *Service) edit(ctx context.Context, id, userID string, side Side, fn func(Face) (Face, error)) (Face, error) {
	face, err := s.load(ctx, id, userID, side)
	if err != nil {
		return nil, err
	}
	next, err := fn(face)
	if errors.Is(err, errUnchanged) {
		return face, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveFace(ctx, id, userID, side, next); err != nil {
		return nil, err
	}
	s.logger.Debug("saved card face", "flashcard_id", id, "side", side, "elements", len(next))
	return next, nil
}
