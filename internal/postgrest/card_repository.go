package postgrest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lernapp-2025/studycards-v3/internal/card"
)

var _ card.Repository = (*CardRepository)(nil)

// selectFlashcard embeds the owning card set so rows can be filtered by its user.
const selectFlashcard = "id,card_set_id,front_content,back_content,order_index,created_at,updated_at,card_sets!inner(user_id)"

// CardRepository implements card.Repository over PostgREST.
type CardRepository struct {
	client *Client
	now    func() time.Time
}

func NewCardRepository(client *Client) *CardRepository {
	return &CardRepository{client: client, now: time.Now}
}

// flashcardRow mirrors the table; faces are stored as JSON text.
type flashcardRow struct {
	ID           string    `json:"id"`
	CardSetID    string    `json:"card_set_id"`
	FrontContent *string   `json:"front_content"`
	BackContent  *string   `json:"back_content"`
	OrderIndex   int       `json:"order_index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r flashcardRow) toFlashcard() (*card.Flashcard, error) {
	front, err := decodeFace(r.FrontContent)
	if err != nil {
		return nil, fmt.Errorf("flashcard %s front: %w", r.ID, err)
	}
	back, err := decodeFace(r.BackContent)
	if err != nil {
		return nil, fmt.Errorf("flashcard %s back: %w", r.ID, err)
	}
	return &card.Flashcard{
		ID:         r.ID,
		CardSetID:  r.CardSetID,
		Front:      front,
		Back:       back,
		OrderIndex: r.OrderIndex,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

func decodeFace(content *string) (card.Face, error) {
	if content == nil {
		return card.Face{}, nil
	}
	return card.DecodeFace([]byte(*content))
}

func (r *CardRepository) FindByID(ctx context.Context, id, userID string) (*card.Flashcard, error) {
	var row flashcardRow
	_, err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/flashcards",
		query: map[string]string{
			"select":            selectFlashcard,
			"id":                eq(id),
			"card_sets.user_id": eq(userID),
		},
		header: map[string]string{"Accept": acceptObject},
		result: &row,
	})
	if err != nil {
		return nil, notFound(fmt.Errorf("load flashcard: %w", err), card.ErrNotFound)
	}
	return row.toFlashcard()
}

func (r *CardRepository) ListByCardSet(ctx context.Context, cardSetID, userID string) ([]card.Flashcard, error) {
	var rows []flashcardRow
	_, err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/flashcards",
		query: map[string]string{
			"select":            selectFlashcard,
			"card_set_id":       eq(cardSetID),
			"card_sets.user_id": eq(userID),
			"order":             "order_index.asc",
		},
		result: &rows,
	})
	if err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}

	cards := make([]card.Flashcard, 0, len(rows))
	for _, row := range rows {
		c, err := row.toFlashcard()
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, nil
}

// SaveFace checks ownership with a scoped read, since PATCH cannot filter on
// an embedded resource, then writes the face column.
func (r *CardRepository) SaveFace(ctx context.Context, id, userID string, side card.Side, face card.Face) error {
	column, err := faceColumn(side)
	if err != nil {
		return err
	}
	if _, err := r.FindByID(ctx, id, userID); err != nil {
		return err
	}

	content, err := card.EncodeFace(face)
	if err != nil {
		return fmt.Errorf("encode face: %w", err)
	}
	_, err = r.client.do(ctx, request{
		method: http.MethodPatch,
		path:   "/flashcards",
		query:  map[string]string{"id": eq(id)},
		header: map[string]string{"Prefer": "return=minimal"},
		body:   map[string]any{column: string(content), "updated_at": r.now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("save flashcard face: %w", err)
	}
	return nil
}

func faceColumn(side card.Side) (string, error) {
	switch side {
	case card.Front:
		return "front_content", nil
	case card.Back:
		return "back_content", nil
	}
	return "", fmt.Errorf("%w: %q", card.ErrUnknownSide, side)
}
