package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configFile string
	debugMode  bool
	userFlag   string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := color.New(color.FgRed).Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "studycards",
		Short:         "Manage flashcard folders and card layouts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")
	rootCommand.PersistentFlags().StringVar(&userFlag, "user", "", "user id (defaults to cli.user_id)")

	rootCommand.AddCommand(
		newMigrateCommand(),
		newFoldersCommand(),
		newCardsCommand(),
	)
	return rootCommand
}
