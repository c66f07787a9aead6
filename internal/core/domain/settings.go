package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or generation.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// Default configuration values for the indexing pipeline.
const (
	// DefaultChunkSize is the default chunk window in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the default overlap between consecutive
	// chunks in characters.
	DefaultChunkOverlap = 200

	// DefaultTopK is the default number of passages retrieved per query.
	DefaultTopK = 3

	// DefaultListenAddr is the default HTTP listen address.
	DefaultListenAddr = ":8000"
)

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string `toml:"addr"`
}

// ChunkingSettings holds text segmentation configuration.
// These are policy defaults, not algorithmic necessities.
type ChunkingSettings struct {
	// Size is the chunk window in characters.
	Size int `toml:"size"`

	// Overlap is the number of characters shared between consecutive chunks.
	Overlap int `toml:"overlap"`
}

// RetrievalSettings holds retrieval configuration.
type RetrievalSettings struct {
	// TopK is the number of passages retrieved per query.
	TopK int `toml:"top_k"`
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider `toml:"provider"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// BaseURL is the API endpoint (mainly for Ollama).
	BaseURL string `toml:"base_url"`

	// APIKey is the API key (for OpenAI). Usually supplied via
	// environment instead of the config file.
	APIKey string `toml:"api_key,omitempty"`
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds generation provider configuration.
type LLMSettings struct {
	// Provider is the generation service provider.
	Provider AIProvider `toml:"provider"`

	// Model is the generation model name.
	Model string `toml:"model"`

	// BaseURL is the API endpoint (mainly for Ollama).
	BaseURL string `toml:"base_url"`

	// APIKey is the API key (for OpenAI and Anthropic).
	APIKey string `toml:"api_key,omitempty"`

	// MaxTokens caps answer length. Zero uses the provider default.
	MaxTokens int `toml:"max_tokens"`

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64 `toml:"temperature"`
}

// IsConfigured returns true if the generation provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// Settings is the full configuration surface consumed by the core.
// It is loaded at startup and injected at construction time.
type Settings struct {
	Server    ServerSettings    `toml:"server"`
	Chunking  ChunkingSettings  `toml:"chunking"`
	Retrieval RetrievalSettings `toml:"retrieval"`
	Embedding EmbeddingSettings `toml:"embedding"`
	LLM       LLMSettings       `toml:"llm"`
}

// DefaultSettings returns the built-in configuration defaults.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr: DefaultListenAddr,
		},
		Chunking: ChunkingSettings{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Retrieval: RetrievalSettings{
			TopK: DefaultTopK,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOpenAI,
			Model:    "text-embedding-3-small",
		},
		LLM: LLMSettings{
			Provider: AIProviderOpenAI,
			Model:    "gpt-4o-mini",
		},
	}
}
