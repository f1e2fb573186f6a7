package folder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lernapp-2025/studycards-v3/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/folder/mock_repository.go -package=mock_folder

// Repository persists folder records. Reads and writes are scoped by user,
// except the content counts used to guard deletes.
type Repository interface {
	FindAll(ctx context.Context, userID string) ([]Folder, error)
	FindCardSets(ctx context.Context, userID string) ([]CardSetSummary, error)
	FindByID(ctx context.Context, id, userID string) (*Folder, error)
	Search(ctx context.Context, userID, query string) ([]Folder, error)
	Create(ctx context.Context, f Folder) (*Folder, error)
	Update(ctx context.Context, id, userID string, changes Changes) (*Folder, error)
	UpdateParent(ctx context.Context, id, userID string, parentID *string) (*Folder, error)
	UpdateOrder(ctx context.Context, id, userID string, orderIndex int) error
	Delete(ctx context.Context, id, userID string) error
	CountChildren(ctx context.Context, id string) (int, error)
	CountCardSets(ctx context.Context, id string) (int, error)
	CountSiblings(ctx context.Context, parentID *string, userID string) (int, error)
}

// AtomicReorderer is implemented by repositories that can apply a whole
// reorder in one transaction.
type AtomicReorderer interface {
	ReorderAtomic(ctx context.Context, ids []string, userID string) error
}

// Changes holds the editable folder fields. Nil fields are left untouched.
type Changes struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// IsEmpty reports whether c changes nothing.
func (c Changes) IsEmpty() bool {
	return c.Name == nil && c.Color == nil
}

const folderColumns = "id, name, color, parent_id, order_index, user_id, created_at, updated_at"

// DBRepository implements Repository over SQL.
type DBRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db, now: time.Now}
}

// FindAll returns the user's folders ordered by order_index.
func (r *DBRepository) FindAll(ctx context.Context, userID string) ([]Folder, error) {
	folders := []Folder{}
	query := r.db.Rebind("SELECT " + folderColumns + " FROM folders WHERE user_id = ? ORDER BY order_index")
	if err := r.db.SelectContext(ctx, &folders, query, userID); err != nil {
		return nil, fmt.Errorf("load all folders: %w", err)
	}
	return folders, nil
}

// FindCardSets returns the user's card sets with their flashcard counts.
func (r *DBRepository) FindCardSets(ctx context.Context, userID string) ([]CardSetSummary, error) {
	sets := []CardSetSummary{}
	query := r.db.Rebind(`SELECT s.id, s.name, s.folder_id, COUNT(f.id) AS card_count
FROM card_sets s LEFT JOIN flashcards f ON f.card_set_id = s.id
WHERE s.user_id = ?
GROUP BY s.id, s.name, s.folder_id, s.order_index
ORDER BY s.order_index`)
	if err := r.db.SelectContext(ctx, &sets, query, userID); err != nil {
		return nil, fmt.Errorf("load card sets: %w", err)
	}
	return sets, nil
}

// FindByID returns a folder, or ErrNotFound.
func (r *DBRepository) FindByID(ctx context.Context, id, userID string) (*Folder, error) {
	var f Folder
	query := r.db.Rebind("SELECT " + folderColumns + " FROM folders WHERE id = ? AND user_id = ?")
	if err := r.db.GetContext(ctx, &f, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load folder: %w", err)
	}
	return &f, nil
}

// Search returns folders whose name contains query, ignoring case, ordered by name.
func (r *DBRepository) Search(ctx context.Context, userID, query string) ([]Folder, error) {
	folders := []Folder{}
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	q := r.db.Rebind("SELECT " + folderColumns + " FROM folders WHERE user_id = ? AND LOWER(name) LIKE ? ESCAPE '!' ORDER BY name")
	if err := r.db.SelectContext(ctx, &folders, q, userID, pattern); err != nil {
		return nil, fmt.Errorf("search folders: %w", err)
	}
	return folders, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

// Create inserts f and returns the stored row.
func (r *DBRepository) Create(ctx context.Context, f Folder) (*Folder, error) {
	now := r.now().UTC()
	query := r.db.Rebind("INSERT INTO folders (" + folderColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if _, err := r.db.ExecContext(ctx, query, f.ID, f.Name, f.Color, f.ParentID, f.OrderIndex, f.UserID, now, now); err != nil {
		return nil, fmt.Errorf("insert folder: %w", err)
	}
	return r.FindByID(ctx, f.ID, f.UserID)
}

// Update applies changes and returns the stored row.
func (r *DBRepository) Update(ctx context.Context, id, userID string, changes Changes) (*Folder, error) {
	var sets []string
	var args []any
	if changes.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *changes.Name)
	}
	if changes.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *changes.Color)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, r.now().UTC(), id, userID)

	query := r.db.Rebind("UPDATE folders SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?")
	if err := r.execOne(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("update folder: %w", err)
	}
	return r.FindByID(ctx, id, userID)
}

// UpdateParent moves a folder and returns the stored row.
func (r *DBRepository) UpdateParent(ctx context.Context, id, userID string, parentID *string) (*Folder, error) {
	query := r.db.Rebind("UPDATE folders SET parent_id = ?, updated_at = ? WHERE id = ? AND user_id = ?")
	if err := r.execOne(ctx, query, parentID, r.now().UTC(), id, userID); err != nil {
		return nil, fmt.Errorf("move folder: %w", err)
	}
	return r.FindByID(ctx, id, userID)
}

// UpdateOrder sets the sibling position of one folder.
func (r *DBRepository) UpdateOrder(ctx context.Context, id, userID string, orderIndex int) error {
	query := r.db.Rebind("UPDATE folders SET order_index = ?, updated_at = ? WHERE id = ? AND user_id = ?")
	if err := r.execOne(ctx, query, orderIndex, r.now().UTC(), id, userID); err != nil {
		return fmt.Errorf("reorder folder: %w", err)
	}
	return nil
}

// ReorderAtomic assigns order indexes to all ids in one transaction.
func (r *DBRepository) ReorderAtomic(ctx context.Context, ids []string, userID string) error {
	query := r.db.Rebind("UPDATE folders SET order_index = ?, updated_at = ? WHERE id = ? AND user_id = ?")
	now := r.now().UTC()
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for i, id := range ids {
			result, err := tx.ExecContext(ctx, query, i, now, id, userID)
			if err == nil {
				err = expectOne(result)
			}
			if err != nil {
				return &ReorderError{Applied: 0, FolderID: id, Err: err}
			}
		}
		return nil
	})
}

// Delete removes a folder. It does not check for contents.
func (r *DBRepository) Delete(ctx context.Context, id, userID string) error {
	query := r.db.Rebind("DELETE FROM folders WHERE id = ? AND user_id = ?")
	if err := r.execOne(ctx, query, id, userID); err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return nil
}

// CountChildren counts the direct subfolders of a folder regardless of owner.
func (r *DBRepository) CountChildren(ctx context.Context, id string) (int, error) {
	return r.count(ctx, "count subfolders", "SELECT COUNT(*) FROM folders WHERE parent_id = ?", id)
}

// CountCardSets counts the card sets filed in a folder regardless of owner.
func (r *DBRepository) CountCardSets(ctx context.Context, id string) (int, error) {
	return r.count(ctx, "count card sets", "SELECT COUNT(*) FROM card_sets WHERE folder_id = ?", id)
}

// CountSiblings counts the user's folders directly under parentID, or roots when nil.
func (r *DBRepository) CountSiblings(ctx context.Context, parentID *string, userID string) (int, error) {
	if parentID == nil {
		return r.count(ctx, "count siblings", "SELECT COUNT(*) FROM folders WHERE user_id = ? AND parent_id IS NULL", userID)
	}
	return r.count(ctx, "count siblings", "SELECT COUNT(*) FROM folders WHERE user_id = ? AND parent_id = ?", userID, *parentID)
}

func (r *DBRepository) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (r *DBRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return expectOne(result)
}

// expectOne maps a write that matched no row to ErrNotFound. MySQL connections
// are opened with clientFoundRows so unchanged rows still count.
func expectOne(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
