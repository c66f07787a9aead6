package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inkwell-ai/inkwell/internal/adapters/driven/ai"
	"github.com/inkwell-ai/inkwell/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers, chunking and retrieval options.

Use subcommands to configure specific settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long:  `Configure the embedding provider used to index documents and queries.`,
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider used to generate answers.`,
	RunE:  runSettingsLLM,
}

var settingsRetrievalCmd = &cobra.Command{
	Use:   "retrieval",
	Short: "Configure chunking and retrieval",
	RunE:  runSettingsRetrieval,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsRetrievalCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	cmd.Printf("Settings (%s)\n\n", settingsStore.Path())

	cmd.Println("Server:")
	cmd.Printf("  addr:         %s\n\n", settings.Server.Addr)

	cmd.Println("Chunking:")
	cmd.Printf("  size:         %d\n", settings.Chunking.Size)
	cmd.Printf("  overlap:      %d\n\n", settings.Chunking.Overlap)

	cmd.Println("Retrieval:")
	cmd.Printf("  top_k:        %d\n\n", settings.Retrieval.TopK)

	cmd.Println("Embedding:")
	cmd.Printf("  provider:     %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  model:        %s\n", settings.Embedding.Model)
	cmd.Printf("  api key:      %s\n\n", maskAPIKey(settings.Embedding.APIKey))

	cmd.Println("LLM:")
	cmd.Printf("  provider:     %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  model:        %s\n", settings.LLM.Model)
	cmd.Printf("  api key:      %s\n", maskAPIKey(settings.LLM.APIKey))

	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Embedding providers:")
	cmd.Println("  1. Ollama (local)")
	cmd.Println("  2. OpenAI (cloud)")
	cmd.Print("Choose [1-2, default 2]: ")
	choice := parseChoice(readLine(reader), 2, 2)

	embedding := domain.EmbeddingSettings{}
	switch choice {
	case 1:
		embedding.Provider = domain.AIProviderOllama
		cmd.Print("Model [nomic-embed-text]: ")
		embedding.Model = defaultString(readLine(reader), "nomic-embed-text")
		cmd.Print("Base URL [http://localhost:11434]: ")
		embedding.BaseURL = defaultString(readLine(reader), "http://localhost:11434")
	case 2:
		embedding.Provider = domain.AIProviderOpenAI
		cmd.Print("Model [text-embedding-3-small]: ")
		embedding.Model = defaultString(readLine(reader), "text-embedding-3-small")
		cmd.Print("API key (or leave blank to use OPENAI_API_KEY): ")
		embedding.APIKey = readPassword()
		cmd.Println()
		if embedding.APIKey == "" {
			embedding.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	cmd.Print("Validating... ")
	if err := ai.ValidateEmbeddingConfig(&embedding); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	settings.Embedding = embedding
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n",
		embedding.Provider.Description(), embedding.Model)
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("LLM providers:")
	cmd.Println("  1. Ollama (local)")
	cmd.Println("  2. OpenAI (cloud)")
	cmd.Println("  3. Anthropic (cloud)")
	cmd.Print("Choose [1-3, default 2]: ")
	choice := parseChoice(readLine(reader), 3, 2)

	// Keep generation options; only the provider selection changes here.
	llm := settings.LLM
	llm.BaseURL = ""
	llm.APIKey = ""
	switch choice {
	case 1:
		llm.Provider = domain.AIProviderOllama
		cmd.Print("Model [llama3.2]: ")
		llm.Model = defaultString(readLine(reader), "llama3.2")
		cmd.Print("Base URL [http://localhost:11434]: ")
		llm.BaseURL = defaultString(readLine(reader), "http://localhost:11434")
	case 2:
		llm.Provider = domain.AIProviderOpenAI
		cmd.Print("Model [gpt-4o-mini]: ")
		llm.Model = defaultString(readLine(reader), "gpt-4o-mini")
		cmd.Print("API key (or leave blank to use OPENAI_API_KEY): ")
		llm.APIKey = readPassword()
		cmd.Println()
		if llm.APIKey == "" {
			llm.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case 3:
		llm.Provider = domain.AIProviderAnthropic
		cmd.Print("Model [claude-sonnet-4-20250514]: ")
		llm.Model = defaultString(readLine(reader), "claude-sonnet-4-20250514")
		cmd.Print("API key (or leave blank to use ANTHROPIC_API_KEY): ")
		llm.APIKey = readPassword()
		cmd.Println()
		if llm.APIKey == "" {
			llm.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}

	cmd.Print("Validating... ")
	if err := ai.ValidateLLMConfig(&llm); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	settings.LLM = llm
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Printf("LLM provider configured: %s (%s)\n", llm.Provider.Description(), llm.Model)
	return nil
}

func runSettingsRetrieval(cmd *cobra.Command, _ []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Printf("Chunk size [%d]: ", settings.Chunking.Size)
	settings.Chunking.Size = parseInt(readLine(reader), settings.Chunking.Size)

	cmd.Printf("Chunk overlap [%d]: ", settings.Chunking.Overlap)
	settings.Chunking.Overlap = parseInt(readLine(reader), settings.Chunking.Overlap)

	if settings.Chunking.Overlap >= settings.Chunking.Size {
		return fmt.Errorf("%w: overlap must be smaller than chunk size", domain.ErrInvalidConfig)
	}

	cmd.Printf("Passages per query (top_k) [%d]: ", settings.Retrieval.TopK)
	settings.Retrieval.TopK = parseInt(readLine(reader), settings.Retrieval.TopK)

	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Println("Retrieval settings saved.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func parseInt(input string, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val <= 0 {
		return defaultVal
	}
	return val
}

func defaultString(input, defaultVal string) string {
	if input == "" {
		return defaultVal
	}
	return input
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Read without echo when attached to a terminal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
