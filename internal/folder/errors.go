package folder

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("folder not found")
	ErrNotEmpty          = errors.New("folder is not empty")
	ErrCircularReference = errors.New("cannot move a folder into itself or one of its subfolders")
	ErrDepthExceeded     = fmt.Errorf("folders cannot be nested deeper than %d levels", MaxDepth)
)

// ValidationError describes an invalid folder field.
type ValidationError struct {
	Field   string
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotEmptyError is returned when deleting a folder that still has contents.
// It matches ErrNotEmpty.
type NotEmptyError struct {
	Subfolders int
	CardSets   int
}

func (e *NotEmptyError) Error() string {
	if e.Subfolders > 0 {
		return "Cannot delete folder with subfolders. Move or delete subfolders first."
	}
	return "Cannot delete folder with card sets. Move or delete card sets first."
}

func (e *NotEmptyError) Is(target error) bool {
	return target == ErrNotEmpty
}

// ReorderError reports a reorder that stopped part way. Updates before the
// failing folder were already applied and are not rolled back.
type ReorderError struct {
	Applied  int
	FolderID string
	Err      error
}

func (e *ReorderError) Error() string {
	return fmt.Sprintf("reorder stopped at folder %s after %d updates: %v", e.FolderID, e.Applied, e.Err)
}

func (e *ReorderError) Unwrap() error {
	return e.Err
}
