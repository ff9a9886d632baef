package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quill-labs/clipnote-cli/internal/adapters/driving/tui"
	"github.com/quill-labs/clipnote-cli/internal/clippings"
	"github.com/quill-labs/clipnote-cli/internal/core/services"
	"github.com/quill-labs/clipnote-cli/internal/extractors/epub"
	"github.com/quill-labs/clipnote-cli/internal/extractors/pdf"
)

var (
	browseClippings string
	browseBooks     string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse clippings interactively",
	Long: `Opens a terminal UI listing every annotation in the export.
Selecting an annotation recovers and displays its context window from
the book library on demand.

Controls:
  ↑/k, ↓/j - Navigate annotations
  Enter    - Show context
  Esc      - Back
  q        - Quit`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseClippings, "clippings", "", "path to the clippings export (My Clippings.txt)")
	browseCmd.Flags().StringVar(&browseBooks, "books", "", "path to the book library directory (epub/pdf)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("browse requires an interactive terminal")
	}

	clippingsPath, booksDir, err := resolvePaths(browseClippings, browseBooks)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(clippingsPath)
	if err != nil {
		return fmt.Errorf("reading clippings export: %w", err)
	}

	annotations := clippings.Parse(string(data))
	locator := services.NewLocator(booksDir, epub.New(), pdf.New())

	program := tea.NewProgram(tui.NewBrowser(annotations, locator), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
