package postgrest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lernapp-2025/studycards-v3/internal/folder"
)

var (
	_ folder.Repository      = (*FolderRepository)(nil)
	_ folder.AtomicReorderer = (*FolderRepository)(nil)
)

// FolderRepository implements folder.Repository over PostgREST tables named
// like the SQL schema.
type FolderRepository struct {
	client *Client
	now    func() time.Time
}

func NewFolderRepository(client *Client) *FolderRepository {
	return &FolderRepository{client: client, now: time.Now}
}

func (r *FolderRepository) FindAll(ctx context.Context, userID string) ([]folder.Folder, error) {
	folders := []folder.Folder{}
	_, err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/folders",
		query:  map[string]string{"user_id": eq(userID), "order": "order_index.asc"},
		result: &folders,
	})
	if err != nil {
		return nil, fmt.Errorf("load all folders: %w", err)
	}
	return folders, nil
}

type cardSetRow struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	FolderID   *string `json:"folder_id"`
	Flashcards []struct {
		Count int `json:"count"`
	} `json:"flashcards"`
}

// FindCardSets embeds the flashcard count as a PostgREST aggregate.
func (r *FolderRepository) FindCardSets(ctx context.Context, userID string) ([]folder.CardSetSummary, error) {
	var rows []cardSetRow
	_, err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/card_sets",
		query: map[string]string{
			"select":  "id,name,folder_id,flashcards(count)",
			"user_id": eq(userID),
			"order":   "order_index.asc",
		},
		result: &rows,
	})
	if err != nil {
		return nil, fmt.Errorf("load card sets: %w", err)
	}

	sets := make([]folder.CardSetSummary, 0, len(rows))
	for _, row := range rows {
		s := folder.CardSetSummary{ID: row.ID, Name: row.Name, FolderID: row.FolderID}
		if len(row.Flashcards) > 0 {
			s.CardCount = row.Flashcards[0].Count
		}
		sets = append(sets, s)
	}
	return sets, nil
}

func (r *FolderRepository) FindByID(ctx context.Context, id, userID string) (*folder.Folder, error) {
	var f folder.Folder
	_, err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/folders",
		query:  map[string]string{"id": eq(id), "user_id": eq(userID)},
		header: map[string]string{"Accept": acceptObject},
		result: &f,
	})
	if err != nil {
		return nil, notFound(fmt.Errorf("load folder: %w", err), folder.ErrNotFound)
	}
	return &f, nil
}

func (r *FolderRepository) Search(ctx context.Context, userID, query string) ([]folder.Folder, error) {
	folders := []folder.Folder{}
	_, err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/folders",
		query: map[string]string{
			"user_id": eq(userID),
			"name":    "ilike.*" + escapeLike(query) + "*",
			"order":   "name.asc",
		},
		result: &folders,
	})
	if err != nil {
		return nil, fmt.Errorf("search folders: %w", err)
	}
	return folders, nil
}

// escapeLike escapes the LIKE metacharacters of s with Postgres' default escape character.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

func (r *FolderRepository) Create(ctx context.Context, f folder.Folder) (*folder.Folder, error) {
	now := r.now().UTC()
	f.CreatedAt, f.UpdatedAt = now, now

	var created folder.Folder
	_, err := r.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/folders",
		header: map[string]string{"Accept": acceptObject, "Prefer": "return=representation"},
		body:   f,
		result: &created,
	})
	if err != nil {
		return nil, fmt.Errorf("insert folder: %w", err)
	}
	return &created, nil
}

func (r *FolderRepository) Update(ctx context.Context, id, userID string, changes folder.Changes) (*folder.Folder, error) {
	body := map[string]any{"updated_at": r.now().UTC()}
	if changes.Name != nil {
		body["name"] = *changes.Name
	}
	if changes.Color != nil {
		body["color"] = *changes.Color
	}
	f, err := r.patch(ctx, id, userID, body)
	if err != nil {
		return nil, fmt.Errorf("update folder: %w", err)
	}
	return f, nil
}

func (r *FolderRepository) UpdateParent(ctx context.Context, id, userID string, parentID *string) (*folder.Folder, error) {
	f, err := r.patch(ctx, id, userID, map[string]any{"parent_id": parentID, "updated_at": r.now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("move folder: %w", err)
	}
	return f, nil
}

func (r *FolderRepository) UpdateOrder(ctx context.Context, id, userID string, orderIndex int) error {
	if _, err := r.patch(ctx, id, userID, map[string]any{"order_index": orderIndex, "updated_at": r.now().UTC()}); err != nil {
		return fmt.Errorf("reorder folder: %w", err)
	}
	return nil
}

type reorderArgs struct {
	IDs    []string `json:"folder_ids"`
	UserID string   `json:"user_id"`
}

// ReorderAtomic calls the reorder_folders database function, which assigns
// order indexes in a single transaction on the server.
func (r *FolderRepository) ReorderAtomic(ctx context.Context, ids []string, userID string) error {
	_, err := r.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/rpc/reorder_folders",
		body:   reorderArgs{IDs: ids, UserID: userID},
	})
	if err != nil {
		return &folder.ReorderError{Applied: 0, FolderID: firstOrEmpty(ids), Err: err}
	}
	return nil
}

func firstOrEmpty(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func (r *FolderRepository) Delete(ctx context.Context, id, userID string) error {
	_, err := r.client.do(ctx, request{
		method: http.MethodDelete,
		path:   "/folders",
		query:  map[string]string{"id": eq(id), "user_id": eq(userID)},
		header: map[string]string{"Accept": acceptObject, "Prefer": "return=representation"},
	})
	if err != nil {
		return notFound(fmt.Errorf("delete folder: %w", err), folder.ErrNotFound)
	}
	return nil
}

func (r *FolderRepository) CountChildren(ctx context.Context, id string) (int, error) {
	return r.count(ctx, "count subfolders", "/folders", map[string]string{"parent_id": eq(id)})
}

func (r *FolderRepository) CountCardSets(ctx context.Context, id string) (int, error) {
	return r.count(ctx, "count card sets", "/card_sets", map[string]string{"folder_id": eq(id)})
}

func (r *FolderRepository) CountSiblings(ctx context.Context, parentID *string, userID string) (int, error) {
	query := map[string]string{"user_id": eq(userID), "parent_id": "is.null"}
	if parentID != nil {
		query["parent_id"] = eq(*parentID)
	}
	return r.count(ctx, "count siblings", "/folders", query)
}

func (r *FolderRepository) count(ctx context.Context, op, path string, query map[string]string) (int, error) {
	query["select"] = "id"
	query["limit"] = "0"
	resp, err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   path,
		query:  query,
		header: map[string]string{"Prefer": "count=exact"},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := count(resp)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (r *FolderRepository) patch(ctx context.Context, id, userID string, body map[string]any) (*folder.Folder, error) {
	var f folder.Folder
	_, err := r.client.do(ctx, request{
		method: http.MethodPatch,
		path:   "/folders",
		query:  map[string]string{"id": eq(id), "user_id": eq(userID)},
		header: map[string]string{"Accept": acceptObject, "Prefer": "return=representation"},
		body:   body,
		result: &f,
	})
	if err != nil {
		return nil, notFound(err, folder.ErrNotFound)
	}
	return &f, nil
}
