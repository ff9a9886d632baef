// Package cli implements the cobra command tree for clipnote.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/quill-labs/clipnote-cli/internal/adapters/driven/config/file"
	"github.com/quill-labs/clipnote-cli/internal/core/ports/driven"
	"github.com/quill-labs/clipnote-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose bool

	// cfg supplies path defaults when flags are omitted. Nil when the
	// config directory is unavailable; the CLI then relies on flags.
	cfg driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "clipnote",
	Short: "Annotate e-reader clippings with context from your book library",
	Long: `clipnote turns a Kindle-style "My Clippings.txt" export into a
markdown report in which every highlight and bookmark is annotated
with the surrounding prose recovered from the matching EPUB or PDF
in your local book library.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if !verbose && cfg != nil {
			verbose = cfg.GetBool("verbose")
		}
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	store, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("config unavailable: %v", err)
	} else {
		cfg = store
	}
	return rootCmd.Execute()
}
