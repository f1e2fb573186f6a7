package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lernapp-2025/studycards-v3/internal/card"
)

func newCardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cards",
		Aliases: []string{"card"},
		Short:   "Inspect flashcard faces",
	}
	cmd.AddCommand(
		newCardsShowCommand(),
		newCardsLayoutCommand(),
	)
	return cmd
}

func newCardsShowCommand() *cobra.Command {
	var side string
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "List a face's elements in stacking order, bottom first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := card.ParseSide(side)
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, sess *session) error {
				elements, err := sess.services.Cards.Render(ctx, args[0], sess.userID, s)
				if err != nil {
					return err
				}
				if len(elements) == 0 {
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "The %s face is empty.\n", s)
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				if _, err := fmt.Fprintln(w, "Z\tID\tTYPE\tPOSITION\tSIZE\tROTATION\tCONTENT"); err != nil {
					return err
				}
				for _, el := range elements {
					if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s,%s\t%sx%s\t%s\t%s\n",
						el.Z(), el.ID, el.Kind,
						formatNumber(el.Position.X), formatNumber(el.Position.Y),
						formatNumber(el.Size.Width), formatNumber(el.Size.Height),
						formatNumber(el.Rotation), truncate(el.Content, 40)); err != nil {
						return err
					}
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&side, "side", string(card.Front), "Face to show: front or back")
	return cmd
}

func newCardsLayoutCommand() *cobra.Command {
	var side string
	cmd := &cobra.Command{
		Use:   "layout ID",
		Short: "Print a face positioned for a viewer as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := card.ParseSide(side)
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, sess *session) error {
				placements, err := sess.services.Cards.Layout(ctx, args[0], sess.userID, s)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(placements)
			})
		},
	}
	cmd.Flags().StringVar(&side, "side", string(card.Front), "Face to lay out: front or back")
	return cmd
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
