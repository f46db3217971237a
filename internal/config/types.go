package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// SessionBackend selects where conversational history is kept.
type SessionBackend string

const (
	SessionMemory SessionBackend = "memory"
	SessionSQLite SessionBackend = "sqlite"
)

// Config is the top-level ragchat configuration, corresponding to .ragchat.yml.
type Config struct {
	Port              int            `yaml:"port" koanf:"port"`
	DataDir           string         `yaml:"data_dir" koanf:"data_dir"`
	UploadDir         string         `yaml:"upload_dir" koanf:"upload_dir"`
	VectorDir         string         `yaml:"vector_dir" koanf:"vector_dir"`
	Provider          ProviderType   `yaml:"provider" koanf:"provider"`
	Model             string         `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType   `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string         `yaml:"embedding_model" koanf:"embedding_model"`
	StandardK         int            `yaml:"standard_k" koanf:"standard_k"`
	DeepK             int            `yaml:"deep_k" koanf:"deep_k"`
	MaxHistoryTurns   int            `yaml:"max_history_turns" koanf:"max_history_turns"`
	MaxConcurrency    int            `yaml:"max_concurrency" koanf:"max_concurrency"`
	SessionBackend    SessionBackend `yaml:"session_backend" koanf:"session_backend"`
	AllowAllOrigins   bool           `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
