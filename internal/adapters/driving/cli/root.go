// Package cli provides the inkwell command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-ai/inkwell/internal/adapters/driven/ai"
	"github.com/inkwell-ai/inkwell/internal/adapters/driven/config/file"
	"github.com/inkwell-ai/inkwell/internal/adapters/driven/extract/pdftotext"
	"github.com/inkwell-ai/inkwell/internal/adapters/driven/storage/memory"
	"github.com/inkwell-ai/inkwell/internal/chunker"
	"github.com/inkwell-ai/inkwell/internal/core/domain"
	"github.com/inkwell-ai/inkwell/internal/core/ports/driven"
	"github.com/inkwell-ai/inkwell/internal/core/services"
	"github.com/inkwell-ai/inkwell/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag bool
	configDir   string
)

// Loaded at startup by the root command.
var (
	settingsStore driven.SettingsStore
	settings      domain.Settings
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Chat with your PDFs",
	Long: `Inkwell indexes PDF documents into an in-memory vector store and
answers questions about them with retrieval-augmented generation.`,
	SilenceUsage:      true,
	PersistentPreRunE: initRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.inkwell)")
}

// initRoot loads settings before any command runs.
func initRoot(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	store, err := file.NewSettingsStore(configDir)
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}
	settingsStore = store

	settings, err = store.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// stack bundles the wired core services and their cleanup.
type stack struct {
	library   *services.LibraryService
	retriever *services.RetrieverService
	chat      *services.ChatService
	ai        *ai.InitResult
}

// close releases provider connections.
func (s *stack) close() {
	if s.ai != nil {
		s.ai.Close()
	}
}

// buildStack wires the full pipeline from the loaded settings: PDF
// extraction, chunking, embedding, the in-memory registry, retrieval
// and generation.
func buildStack() (*stack, error) {
	if err := pdftotext.CheckAvailable(); err != nil {
		return nil, fmt.Errorf("%w\n\n%s", err, pdftotext.InstallInstructions())
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		return nil, err
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: no embedding provider configured. Run 'inkwell settings' to fix",
			domain.ErrEmbeddingUnavailable)
	}

	llm, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		embedder.Close()
		return nil, err
	}
	if llm == nil {
		embedder.Close()
		return nil, fmt.Errorf("%w: no LLM provider configured. Run 'inkwell settings' to fix",
			domain.ErrLLMUnavailable)
	}

	splitter, err := chunker.New(
		chunker.WithSize(settings.Chunking.Size),
		chunker.WithOverlap(settings.Chunking.Overlap),
	)
	if err != nil {
		embedder.Close()
		llm.Close()
		return nil, fmt.Errorf("invalid chunking settings: %w", err)
	}

	logger.Debug("embedding: %s (%d dimensions)", embedder.ModelName(), embedder.Dimensions())
	logger.Debug("llm: %s", llm.ModelName())

	registry := memory.NewRegistry()
	library := services.NewLibraryService(pdftotext.New(), splitter, embedder, registry)
	retriever := services.NewRetrieverService(registry, embedder, settings.Retrieval.TopK)
	chat := services.NewChatService(retriever, llm, settings.Retrieval.TopK, driven.ChatOptions{
		MaxTokens:   settings.LLM.MaxTokens,
		Temperature: settings.LLM.Temperature,
	})

	return &stack{
		library:   library,
		retriever: retriever,
		chat:      chat,
		ai:        &ai.InitResult{EmbeddingService: embedder, LLMService: llm},
	}, nil
}
