package card

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/card/mock_repository.go -package=mock_card

// Repository loads and stores flashcards. Every call is scoped to the user
// owning the flashcard's card set.
type Repository interface {
	FindByID(ctx context.Context, id, userID string) (*Flashcard, error)
	ListByCardSet(ctx context.Context, cardSetID, userID string) ([]Flashcard, error)
	SaveFace(ctx context.Context, id, userID string, side Side, face Face) error
}

type flashcardRow struct {
	ID           string         `db:"id"`
	CardSetID    string         `db:"card_set_id"`
	FrontContent sql.NullString `db:"front_content"`
	BackContent  sql.NullString `db:"back_content"`
	OrderIndex   int            `db:"order_index"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r flashcardRow) toFlashcard() (*Flashcard, error) {
	front, err := DecodeFace([]byte(r.FrontContent.String))
	if err != nil {
		return nil, fmt.Errorf("flashcard %s front: %w", r.ID, err)
	}
	back, err := DecodeFace([]byte(r.BackContent.String))
	if err != nil {
		return nil, fmt.Errorf("flashcard %s back: %w", r.ID, err)
	}
	return &Flashcard{
		ID:         r.ID,
		CardSetID:  r.CardSetID,
		Front:      front,
		Back:       back,
		OrderIndex: r.OrderIndex,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

const selectFlashcards = `SELECT f.id, f.card_set_id, f.front_content, f.back_content, f.order_index, f.created_at, f.updated_at
FROM flashcards f JOIN card_sets s ON s.id = f.card_set_id`

// DBRepository implements Repository over SQL.
type DBRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db, now: time.Now}
}

// FindByID returns the flashcard with id, or ErrNotFound.
func (r *DBRepository) FindByID(ctx context.Context, id, userID string) (*Flashcard, error) {
	var row flashcardRow
	query := r.db.Rebind(selectFlashcards + " WHERE f.id = ? AND s.user_id = ?")
	if err := r.db.GetContext(ctx, &row, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load flashcard: %w", err)
	}
	return row.toFlashcard()
}

// ListByCardSet returns the flashcards of a card set ordered by order_index.
func (r *DBRepository) ListByCardSet(ctx context.Context, cardSetID, userID string) ([]Flashcard, error) {
	var rows []flashcardRow
	query := r.db.Rebind(selectFlashcards + " WHERE f.card_set_id = ? AND s.user_id = ? ORDER BY f.order_index")
	if err := r.db.SelectContext(ctx, &rows, query, cardSetID, userID); err != nil {
		return nil, fmt.Errorf("load flashcards: %w", err)
	}
	cards := make([]Flashcard, 0, len(rows))
	for _, row := range rows {
		c, err := row.toFlashcard()
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, nil
}

// SaveFace overwrites one face of a flashcard.
func (r *DBRepository) SaveFace(ctx context.Context, id, userID string, side Side, face Face) error {
	var column string
	switch side {
	case Front:
		column = "front_content"
	case Back:
		column = "back_content"
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSide, side)
	}

	content, err := EncodeFace(face)
	if err != nil {
		return fmt.Errorf("encode face: %w", err)
	}
	query := r.db.Rebind("UPDATE flashcards SET " + column + " = ?, updated_at = ? " +
		"WHERE id = ? AND card_set_id IN (SELECT id FROM card_sets WHERE user_id = ?)")
	result, err := r.db.ExecContext(ctx, query, string(content), r.now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("update flashcard face: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update flashcard face: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
