package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lernapp-2025/studycards-v3/internal/datasync"
	"github.com/lernapp-2025/studycards-v3/internal/folder"
)

func newFoldersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folders",
		Aliases: []string{"folder"},
		Short:   "Manage the folder tree",
	}
	cmd.AddCommand(
		newFoldersTreeCommand(),
		newFoldersCreateCommand(),
		newFoldersRenameCommand(),
		newFoldersRecolorCommand(),
		newFoldersMoveCommand(),
		newFoldersDeleteCommand(),
		newFoldersReorderCommand(),
		newFoldersPathCommand(),
		newFoldersSearchCommand(),
		newFoldersStatsCommand(),
		newFoldersExportCommand(),
		newFoldersImportCommand(),
	)
	return cmd
}

func newFoldersTreeCommand() *cobra.Command {
	var showIDs bool
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the folder tree with its card sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				roots, err := s.services.Folders.Tree(ctx, s.userID)
				if err != nil {
					return err
				}
				return printTree(cmd.OutOrStdout(), roots, showIDs)
			})
		},
	}
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show folder ids")
	return cmd
}

func printTree(w io.Writer, roots []*folder.Node, showIDs bool) error {
	if len(roots) == 0 {
		_, err := fmt.Fprintln(w, "No folders.")
		return err
	}
	name := color.New(color.Bold)
	faint := color.New(color.Faint)
	var err error
	folder.Walk(roots, func(n *folder.Node, depth int) bool {
		if err != nil {
			return false
		}
		indent := strings.Repeat("  ", depth)
		line := indent + name.Sprint(n.Name)
		if showIDs {
			line += " " + faint.Sprintf("[%s]", n.ID)
		}
		if _, err = fmt.Fprintln(w, line); err != nil {
			return false
		}
		for _, set := range n.CardSets {
			if _, err = fmt.Fprintf(w, "%s  * %s (%d cards)\n", indent, set.Name, set.CardCount); err != nil {
				return false
			}
		}
		return true
	})
	return err
}

func newFoldersCreateCommand() *cobra.Command {
	var parentID, folderColor string
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				p := folder.CreateParams{Name: args[0], Color: folderColor, UserID: s.userID}
				if parentID != "" {
					p.ParentID = &parentID
				}
				created, err := s.services.Folders.Create(ctx, p)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", created.Name, created.ID)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&parentID, "parent", "", "Parent folder id")
	cmd.Flags().StringVar(&folderColor, "color", "", "Palette color, random when empty")
	return cmd
}

func newFoldersRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				updated, err := s.services.Folders.Rename(ctx, args[0], s.userID, args[1])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "renamed %s to %s\n", updated.ID, updated.Name)
				return err
			})
		},
	}
}

func newFoldersRecolorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recolor ID COLOR",
		Short: "Change a folder's color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				updated, err := s.services.Folders.Update(ctx, args[0], s.userID, folder.Changes{Color: &args[1]})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", updated.Name, updated.Color)
				return err
			})
		},
	}
}

func newFoldersMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move ID [PARENT_ID]",
		Short: "Move a folder under a new parent, or to the top level without one",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parentID *string
			if len(args) == 2 {
				parentID = &args[1]
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				moved, err := s.services.Folders.Move(ctx, args[0], parentID, s.userID)
				if err != nil {
					return err
				}
				target := "top level"
				if moved.ParentID != nil {
					target = *moved.ParentID
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "moved %s to %s\n", moved.Name, target)
				return err
			})
		},
	}
}

func newFoldersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an empty folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.services.Folders.Delete(ctx, args[0], s.userID); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return err
			})
		},
	}
}

func newFoldersReorderCommand() *cobra.Command {
	var atomic bool
	cmd := &cobra.Command{
		Use:   "reorder ID...",
		Short: "Order sibling folders as listed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				var err error
				if atomic || s.cfg.Folders.AtomicReorder {
					err = s.services.Folders.ReorderAtomic(ctx, args, s.userID)
				} else {
					err = s.services.Folders.Reorder(ctx, args, s.userID)
				}
				var reorderErr *folder.ReorderError
				if errors.As(err, &reorderErr) {
					return fmt.Errorf("%w; %d of %d folders were already reordered", err, reorderErr.Applied, len(args))
				}
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "reordered %d folders\n", len(args))
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&atomic, "atomic", false, "Apply the new order all-or-nothing")
	return cmd
}

func newFoldersPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path ID",
		Short: "Print the path from the top level to a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				path, err := s.services.Folders.Path(ctx, args[0], s.userID)
				if err != nil {
					return err
				}
				if len(path) == 0 {
					return folder.ErrNotFound
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), folder.FormatPath(path))
				return err
			})
		},
	}
}

func newFoldersSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Find folders by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				found, err := s.services.Folders.Search(ctx, s.userID, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(found) == 0 {
					_, err = fmt.Fprintln(out, "No matching folders.")
					return err
				}
				for _, f := range found {
					if _, err := fmt.Fprintf(out, "%s\t%s\n", f.ID, f.Name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newFoldersStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats ID",
		Short: "Count a folder's card sets and subfolders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				stats, err := s.services.Folders.Stats(ctx, args[0], s.userID)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(),
					"Card sets:        %d\nSubfolders:       %d\nTotal card sets:  %d\n",
					stats.CardSetCount, stats.SubfolderCount, stats.TotalCardSets)
				return err
			})
		},
	}
}

func newFoldersExportCommand() *cobra.Command {
	format := FormatFlag(datasync.FormatText)
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the folder structure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) (err error) {
				roots, err := s.services.Folders.Tree(ctx, s.userID)
				if err != nil {
					return err
				}
				if output == "" {
					return datasync.Export(cmd.OutOrStdout(), roots, datasync.Format(format))
				}

				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer func() {
					if closeErr := file.Close(); closeErr != nil && err == nil {
						err = fmt.Errorf("close %s: %w", output, closeErr)
					}
				}()
				if err := datasync.Export(file, roots, datasync.Format(format)); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
				return err
			})
		},
	}
	cmd.Flags().VarP(&format, "format", "f", "Export format: text, markdown, yaml or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, stdout when empty")
	return cmd
}

func newFoldersImportCommand() *cobra.Command {
	var dryRun bool
	var parentID string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create folders from a YAML outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer func() { _ = file.Close() }()

				out := cmd.OutOrStdout()
				opts := datasync.ImportOptions{DryRun: dryRun}
				if parentID != "" {
					opts.ParentID = &parentID
				}
				importer := datasync.NewImporter(s.services.Folders, s.services.Validator, out)
				result, err := importer.Import(ctx, file, s.userID, opts)
				if err != nil {
					return err
				}

				if _, err := fmt.Fprintln(out, "\nImport Summary:"); err != nil {
					return err
				}
				if opts.DryRun {
					if _, err := fmt.Fprintln(out, "  (dry-run mode, no changes made)"); err != nil {
						return err
					}
				}
				_, err = fmt.Fprintf(out, "  Folders: %d new\n", result.FoldersNew)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the outline without creating folders")
	cmd.Flags().StringVar(&parentID, "parent", "", "Create the outline under this folder")
	return cmd
}
