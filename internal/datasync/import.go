package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lernapp-2025/studycards-v3/internal/folder"
)

// FolderCreator creates folders with all structural rules applied.
type FolderCreator interface {
	Create(ctx context.Context, p folder.CreateParams) (*folder.Folder, error)
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	// DryRun validates names, colors and outline depth without writing.
	DryRun bool
	// ParentID places the outline's top-level folders under an existing folder.
	ParentID *string
}

// ImportResult lists the folders created, or that would be created on a dry run.
type ImportResult struct {
	FoldersNew int
	Paths      []string
}

// Importer creates folders from a YAML Outline.
type Importer struct {
	creator  FolderCreator
	validate *folder.Validator
	writer   io.Writer
}

// NewImporter creates a new Importer. Progress lines go to writer.
func NewImporter(creator FolderCreator, validate *folder.Validator, writer io.Writer) *Importer {
	return &Importer{creator: creator, validate: validate, writer: writer}
}

// ReadOutline decodes a YAML outline, rejecting unknown keys.
func ReadOutline(r io.Reader) (Outline, error) {
	var outline Outline
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&outline); err != nil && !errors.Is(err, io.EOF) {
		return Outline{}, fmt.Errorf("decode outline: %w", err)
	}
	return outline, nil
}

// Import creates the folders of the outline read from r, parents before
// children. It stops at the first failure; folders created before it remain.
func (imp *Importer) Import(ctx context.Context, r io.Reader, userID string, opts ImportOptions) (*ImportResult, error) {
	outline, err := ReadOutline(r)
	if err != nil {
		return nil, err
	}

	var result ImportResult
	if err := imp.importFolders(ctx, outline.Folders, opts.ParentID, nil, userID, opts, &result); err != nil {
		return &result, err
	}
	return &result, nil
}

func (imp *Importer) importFolders(ctx context.Context, folders []OutlineFolder, parentID *string, path []string, userID string, opts ImportOptions, result *ImportResult) error {
	for _, of := range folders {
		p := append(path[:len(path):len(path)], strings.TrimSpace(of.Name))
		display := strings.Join(p, " / ")

		var childParent *string
		if opts.DryRun {
			if err := imp.check(of, len(p)); err != nil {
				return fmt.Errorf("import %s: %w", display, err)
			}
		} else {
			created, err := imp.creator.Create(ctx, folder.CreateParams{
				Name:     of.Name,
				Color:    of.Color,
				ParentID: parentID,
				UserID:   userID,
			})
			if err != nil {
				return fmt.Errorf("import %s: %w", display, err)
			}
			childParent = &created.ID
		}

		result.FoldersNew++
		result.Paths = append(result.Paths, display)
		if imp.writer != nil {
			verb := "created"
			if opts.DryRun {
				verb = "would create"
			}
			if _, err := fmt.Fprintf(imp.writer, "%s %s\n", verb, display); err != nil {
				return fmt.Errorf("write progress: %w", err)
			}
		}

		if err := imp.importFolders(ctx, of.Children, childParent, p, userID, opts, result); err != nil {
			return err
		}
	}
	return nil
}

// check applies the rules a dry run can verify without the store. The depth
// of an existing parent is not known here, so only the outline's own nesting
// is checked.
func (imp *Importer) check(of OutlineFolder, level int) error {
	if err := imp.validate.ValidateName(of.Name); err != nil {
		return err
	}
	if err := imp.validate.ValidateColor(of.Color); err != nil {
		return err
	}
	if level > folder.MaxDepth {
		return folder.ErrDepthExceeded
	}
	return nil
}
