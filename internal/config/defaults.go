package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:              8000,
		DataDir:           "data",
		UploadDir:         "uploaded_files",
		VectorDir:         "vector_store",
		Provider:          ProviderGroq,
		Model:             "llama-3.3-70b-versatile",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		StandardK:         5,
		DeepK:             10,
		MaxHistoryTurns:   20,
		MaxConcurrency:    5,
		SessionBackend:    SessionSQLite,
		AllowAllOrigins:   true,
	}
}
