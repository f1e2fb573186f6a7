package folder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// ErrAtomicReorderUnsupported is returned by ReorderAtomic when the repository
// cannot run a reorder in one transaction.
var ErrAtomicReorderUnsupported = errors.New("atomic reorder is not supported by this store")

// Service applies validated structural changes to a user's folders.
type Service struct {
	repo     Repository
	validate *Validator
	logger   *slog.Logger
	newID    func() string
}

// NewService creates a new Service.
func NewService(repo Repository, validate *Validator, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validate,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// CreateParams describes a new folder. An empty Color picks a random palette color.
type CreateParams struct {
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	ParentID *string `json:"parent_id"`
	UserID   string  `json:"-"`
}

// Tree returns the user's folder forest with card sets attached.
func (s *Service) Tree(ctx context.Context, userID string) ([]*Node, error) {
	records, err := s.repo.FindAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	sets, err := s.repo.FindCardSets(ctx, userID)
	if err != nil {
		return nil, err
	}
	roots := BuildTree(records)
	AttachCardSets(roots, sets)
	return roots, nil
}

// Get returns one folder.
func (s *Service) Get(ctx context.Context, id, userID string) (*Folder, error) {
	return s.repo.FindByID(ctx, id, userID)
}

// Search returns the user's folders whose name contains query.
func (s *Service) Search(ctx context.Context, userID, query string) ([]Folder, error) {
	return s.repo.Search(ctx, userID, strings.TrimSpace(query))
}

// Create validates and stores a new folder as the last of its siblings.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Folder, error) {
	name := strings.TrimSpace(p.Name)
	if err := s.validate.ValidateName(p.Name); err != nil {
		return nil, err
	}
	color := p.Color
	if color == "" {
		color = RandomColor()
	} else if err := s.validate.ValidateColor(color); err != nil {
		return nil, err
	}

	if p.ParentID != nil {
		if err := s.checkPlacement(ctx, "", *p.ParentID, p.UserID); err != nil {
			return nil, err
		}
	}

	siblings, err := s.repo.CountSiblings(ctx, p.ParentID, p.UserID)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, Folder{
		ID:         s.newID(),
		Name:       name,
		Color:      color,
		ParentID:   p.ParentID,
		OrderIndex: siblings,
		UserID:     p.UserID,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("created folder", "folder_id", created.ID, "user_id", p.UserID)
	return created, nil
}

// Rename changes a folder's name.
func (s *Service) Rename(ctx context.Context, id, userID, name string) (*Folder, error) {
	return s.Update(ctx, id, userID, Changes{Name: &name})
}

// Update changes a folder's name or color. Only fields present in changes are validated.
func (s *Service) Update(ctx context.Context, id, userID string, changes Changes) (*Folder, error) {
	if changes.Name != nil {
		if err := s.validate.ValidateName(*changes.Name); err != nil {
			return nil, err
		}
		name := strings.TrimSpace(*changes.Name)
		changes.Name = &name
	}
	if changes.Color != nil {
		if err := s.validate.ValidateColorChange(*changes.Color); err != nil {
			return nil, err
		}
	}
	if changes.IsEmpty() {
		return s.repo.FindByID(ctx, id, userID)
	}

	updated, err := s.repo.Update(ctx, id, userID, changes)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("updated folder", "folder_id", id, "user_id", userID)
	return updated, nil
}

// Delete removes an empty folder. Folders with subfolders or card sets are
// never deleted, whoever asks.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	sets, err := s.repo.CountCardSets(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 || sets > 0 {
		s.logger.Warn("refused to delete non-empty folder", "folder_id", id, "subfolders", children, "card_sets", sets)
		return &NotEmptyError{Subfolders: children, CardSets: sets}
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Debug("deleted folder", "folder_id", id, "user_id", userID)
	return nil
}

// Move gives a folder a new parent, or makes it a root when newParentID is nil.
// The move is rejected when the new parent is the folder itself or one of its
// descendants, and when the folder would end up at MaxDepth or deeper. Only
// the moved folder's own depth is checked.
func (s *Service) Move(ctx context.Context, id string, newParentID *string, userID string) (*Folder, error) {
	if newParentID != nil {
		if err := s.checkPlacement(ctx, id, *newParentID, userID); err != nil {
			s.logger.Warn("rejected folder move", "folder_id", id, "parent_id", *newParentID, "error", err)
			return nil, err
		}
	}

	moved, err := s.repo.UpdateParent(ctx, id, userID, newParentID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("moved folder", "folder_id", id, "user_id", userID)
	return moved, nil
}

// Reorder sets each folder's order index to its position in ids, one update
// at a time. A failure stops the loop; earlier updates stay applied and the
// returned *ReorderError says how many.
func (s *Service) Reorder(ctx context.Context, ids []string, userID string) error {
	for i, id := range ids {
		if err := s.repo.UpdateOrder(ctx, id, userID, i); err != nil {
			s.logger.Warn("reorder stopped", "folder_id", id, "applied", i, "error", err)
			return &ReorderError{Applied: i, FolderID: id, Err: err}
		}
	}
	return nil
}

// ReorderAtomic is Reorder applied all-or-nothing.
func (s *Service) ReorderAtomic(ctx context.Context, ids []string, userID string) error {
	atomic, ok := s.repo.(AtomicReorderer)
	if !ok {
		return ErrAtomicReorderUnsupported
	}
	return atomic.ReorderAtomic(ctx, ids, userID)
}

// Path returns the folder and its ancestors, root first. A broken parent
// chain ends the path early without an error.
func (s *Service) Path(ctx context.Context, id, userID string) ([]Folder, error) {
	chain, _, err := s.ancestry(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	slices.Reverse(chain)
	return chain, nil
}

// Depth returns the number of ancestors of a folder.
func (s *Service) Depth(ctx context.Context, id, userID string) (int, error) {
	chain, truncated, err := s.ancestry(ctx, id, userID)
	if err != nil {
		return 0, err
	}
	if len(chain) == 0 {
		return 0, ErrNotFound
	}
	if truncated {
		return len(chain), ErrDepthExceeded
	}
	return len(chain) - 1, nil
}

// Stats counts a folder's card sets and subfolders.
func (s *Service) Stats(ctx context.Context, id, userID string) (Stats, error) {
	roots, err := s.Tree(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	n := Find(roots, id)
	if n == nil {
		return Stats{}, ErrNotFound
	}
	return StatsOf(n), nil
}

// checkPlacement verifies a folder may live under parentID. id is empty for
// folders that do not exist yet.
func (s *Service) checkPlacement(ctx context.Context, id, parentID, userID string) error {
	chain, truncated, err := s.ancestry(ctx, parentID, userID)
	if err != nil {
		return err
	}
	if len(chain) == 0 {
		return fmt.Errorf("parent folder %s: %w", parentID, ErrNotFound)
	}
	if id != "" && slices.ContainsFunc(chain, func(f Folder) bool { return f.ID == id }) {
		return ErrCircularReference
	}
	if truncated || len(chain)-1 >= MaxDepth-1 {
		return ErrDepthExceeded
	}
	return nil
}

// ancestry walks up from id, returning the folder followed by its ancestors.
// The walk reads at most MaxDepth folders; truncated reports that the chain
// continues past that. A missing folder ends the chain as if it were a root.
func (s *Service) ancestry(ctx context.Context, id, userID string) (chain []Folder, truncated bool, err error) {
	current := id
	for len(chain) < MaxDepth {
		f, err := s.repo.FindByID(ctx, current, userID)
		if errors.Is(err, ErrNotFound) {
			return chain, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		chain = append(chain, *f)
		if f.ParentID == nil {
			return chain, false, nil
		}
		current = *f.ParentID
	}
	return chain, true, nil
}
