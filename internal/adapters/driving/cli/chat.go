package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inkwell-ai/inkwell/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat [pdf...]",
	Short: "Chat with PDFs in the terminal",
	Long: `Open an interactive terminal chat. Any PDF files given as arguments
are indexed first; pick one and ask questions about it.

Examples:
  inkwell chat report.pdf
  inkwell chat docs/*.pdf`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	stack, err := buildStack()
	if err != nil {
		return err
	}
	defer stack.close()

	// Index the given PDFs before opening the UI; the library is
	// in-memory and starts empty.
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		doc, err := stack.library.Upload(cmd.Context(), filepath.Base(path), data)
		if err != nil {
			return fmt.Errorf("indexing %s: %w", path, err)
		}
		cmd.Printf("indexed %s (%d chunks)\n", doc.Filename, doc.ChunkCount)
	}

	app, err := tui.NewApp(&tui.Ports{
		Library: stack.library,
		Chat:    stack.chat,
	})
	if err != nil {
		return err
	}

	return app.WithContext(cmd.Context()).Run()
}
