package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ragchat/ragchat/internal/answer"
	"github.com/ragchat/ragchat/internal/chat"
	"github.com/ragchat/ragchat/internal/config"
	"github.com/ragchat/ragchat/internal/db"
	"github.com/ragchat/ragchat/internal/embeddings"
	"github.com/ragchat/ragchat/internal/ingest"
	"github.com/ragchat/ragchat/internal/llm"
	"github.com/ragchat/ragchat/internal/server"
	"github.com/ragchat/ragchat/internal/session"
	"github.com/ragchat/ragchat/internal/vectordb"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ragchat HTTP server",
	Long:  `Starts the ragchat backend: document upload and ingestion, and retrieval-augmented chat over the indexed corpus.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// API credentials commonly live in a .env file during development.
		_ = godotenv.Load()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if servePort != 0 {
			cfg.Port = servePort
		}

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		embedder := createEmbedder(cfg)
		registry := vectordb.NewRegistry(cfg.DataDir, cfg.VectorDir, embedder)

		// The default store directory must exist at startup even before
		// the first upload.
		if _, err := registry.ResolvePath(""); err != nil {
			return err
		}

		// A missing LLM credential is surfaced per request, not at
		// startup, so ingestion keeps working without one.
		provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
		if err != nil {
			log.Printf("warning: LLM provider unavailable: %v", err)
			provider = nil
		}

		sessions, closeDB, err := createSessionStore(cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		answerSvc := answer.NewService(registry, sessions, provider, answer.Options{
			StandardK:       cfg.StandardK,
			DeepK:           cfg.DeepK,
			MaxHistoryTurns: cfg.MaxHistoryTurns,
			MaxConcurrency:  cfg.MaxConcurrency,
			ProviderKeyEnv:  config.APIKeyEnvVar(cfg.Provider),
		})

		uploadDir := cfg.UploadDir
		if !filepath.IsAbs(uploadDir) {
			uploadDir = filepath.Join(cfg.DataDir, uploadDir)
		}
		ingestSvc := ingest.NewService(registry, uploadDir)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		})
		ingest.RegisterRoutes(srv.Router(), ingestSvc)
		chat.RegisterRoutes(srv.Router(), answerSvc)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			log.Printf("received %s, shutting down", sig)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// createEmbedder builds the configured embedder, or nil when the needed
// credential is absent; embedding failures then surface at request time.
func createEmbedder(cfg *config.Config) embeddings.Embedder {
	switch cfg.EmbeddingProvider {
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, 768, os.Getenv("OLLAMA_HOST"))
	default:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			log.Printf("warning: OPENAI_API_KEY is not set, embedding will fail until it is")
			return nil
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.EmbeddingModel))
	}
}

func createSessionStore(cfg *config.Config) (session.Store, func(), error) {
	if cfg.SessionBackend == config.SessionMemory {
		return session.NewMemoryStore(), func() {}, nil
	}

	database, err := db.Open(filepath.Join(cfg.DataDir, "ragchat.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening session database: %w", err)
	}
	return session.NewSQLiteStore(database), func() { database.Close() }, nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override the configured HTTP port")
	rootCmd.AddCommand(serveCmd)
}
