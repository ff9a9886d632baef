package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/quill-labs/clipnote-cli/internal/core/ports/driving"
	"github.com/quill-labs/clipnote-cli/internal/core/services"
	"github.com/quill-labs/clipnote-cli/internal/extractors/epub"
	"github.com/quill-labs/clipnote-cli/internal/extractors/pdf"
	"github.com/quill-labs/clipnote-cli/internal/logger"
	"github.com/quill-labs/clipnote-cli/internal/report"
)

// darwinClippingsPath is where a mounted Kindle exposes its export on
// macOS. Other platforms have no stable mount point, so the flag is
// required there.
const darwinClippingsPath = "/Volumes/Kindle/documents/My Clippings.txt"

var (
	generateClippings string
	generateBooks     string
	generateOutput    string
	generateJSON      bool
	generateWatch     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an annotated notes report from a clippings export",
	Long: `Parses the clippings export, recovers the surrounding prose for each
annotation from the matching book in the library directory, and writes
the report. A note whose book or passage cannot be found is kept with
"Not found" context; only an unreadable export aborts the run.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateClippings, "clippings", "", "path to the clippings export (My Clippings.txt)")
	generateCmd.Flags().StringVar(&generateBooks, "books", "", "path to the book library directory (epub/pdf)")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "output file path (default notes.md)")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "write records as JSON instead of markdown")
	generateCmd.Flags().BoolVar(&generateWatch, "watch", false, "regenerate whenever the clippings file changes")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	clippingsPath, booksDir, err := resolvePaths(generateClippings, generateBooks)
	if err != nil {
		return err
	}
	outputPath := generateOutput
	if outputPath == "" && cfg != nil {
		outputPath = cfg.GetString("output.path")
	}
	if outputPath == "" {
		outputPath = "notes.md"
	}

	generator := newGenerator(booksDir)

	if err := generateOnce(cmd, generator, clippingsPath, outputPath); err != nil {
		return err
	}
	if generateWatch {
		return watchAndRegenerate(cmd, generator, clippingsPath, outputPath)
	}
	return nil
}

// newGenerator wires the locator with the extractors in format
// preference order: EPUB first, then PDF.
func newGenerator(booksDir string) driving.NoteGenerator {
	locator := services.NewLocator(booksDir, epub.New(), pdf.New())
	return services.NewGenerator(locator)
}

// resolvePaths applies the flag > config > platform-default precedence
// for the clippings export and the library directory.
func resolvePaths(clippingsFlag, booksFlag string) (clippingsPath, booksDir string, err error) {
	clippingsPath = clippingsFlag
	if clippingsPath == "" && cfg != nil {
		clippingsPath = cfg.GetString("clippings.path")
	}
	if clippingsPath == "" && runtime.GOOS == "darwin" {
		clippingsPath = darwinClippingsPath
	}
	if clippingsPath == "" {
		return "", "", errors.New("--clippings is required (or set clippings.path in config)")
	}

	booksDir = booksFlag
	if booksDir == "" && cfg != nil {
		booksDir = cfg.GetString("library.path")
	}
	if booksDir == "" {
		return "", "", errors.New("--books is required (or set library.path in config)")
	}
	return clippingsPath, booksDir, nil
}

// generateOnce runs the pipeline end to end. A failure to read the
// export is the only fatal outcome.
func generateOnce(cmd *cobra.Command, generator driving.NoteGenerator, clippingsPath, outputPath string) error {
	data, err := os.ReadFile(clippingsPath)
	if err != nil {
		return fmt.Errorf("reading clippings export: %w", err)
	}

	records := generator.Generate(context.Background(), string(data))

	var out []byte
	if generateJSON {
		out, err = json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding records: %w", err)
		}
		out = append(out, '\n')
	} else {
		out = []byte(report.Render(records))
	}

	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	cmd.Printf("Wrote %d notes to %s\n", len(records), outputPath)
	return nil
}

// watchAndRegenerate reruns the pipeline whenever the export file is
// rewritten. The parent directory is watched because most tools replace
// the file rather than write it in place.
func watchAndRegenerate(cmd *cobra.Command, generator driving.NoteGenerator, clippingsPath, outputPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(clippingsPath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(clippingsPath), err)
	}
	cmd.Printf("Watching %s for changes (ctrl-c to stop)\n", clippingsPath)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != clippingsPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Info("Export changed, regenerating")
			// The file may be mid-rewrite; warn and keep watching.
			if err := generateOnce(cmd, generator, clippingsPath, outputPath); err != nil {
				logger.Warn("regeneration failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}
