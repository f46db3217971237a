// Package answer turns a user query into a generated answer with cited
// sources, either by single-pass retrieval QA with conversational memory
// (standard mode) or by a memory-less map-reduce research pass (deep mode).
package answer

import (
	"context"
	"fmt"
	"log"

	"github.com/ragchat/ragchat/internal/llm"
	"github.com/ragchat/ragchat/internal/session"
	"github.com/ragchat/ragchat/internal/vectordb"
)

// Options tunes retrieval breadth and prompt bounds.
type Options struct {
	StandardK       int    // retrieval depth for standard mode
	DeepK           int    // retrieval depth for deep-research mode
	MaxHistoryTurns int    // most recent turns sent to generation; 0 = all
	MaxConcurrency  int    // parallel map-step summarizations in deep mode
	ProviderKeyEnv  string // env var that supplies the LLM credential, named in errors
}

// Service answers queries against the vector index.
type Service struct {
	registry *vectordb.Registry
	sessions session.Store
	provider llm.Provider
	opts     Options
}

// Result is an answer plus its deduplicated source references.
type Result struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// NewService creates an answer service. provider may be nil when no LLM
// credential is configured; requests then fail with a provider error at
// generation time instead of at startup.
func NewService(registry *vectordb.Registry, sessions session.Store, provider llm.Provider, opts Options) *Service {
	if opts.StandardK < 1 {
		opts.StandardK = 5
	}
	if opts.DeepK < 1 {
		opts.DeepK = 10
	}
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}
	return &Service{
		registry: registry,
		sessions: sessions,
		provider: provider,
		opts:     opts,
	}
}

func (s *Service) checkProvider() error {
	if s.provider == nil {
		if s.opts.ProviderKeyEnv != "" {
			return fmt.Errorf("LLM provider is not configured: set %s or adjust the provider settings", s.opts.ProviderKeyEnv)
		}
		return fmt.Errorf("LLM provider is not configured")
	}
	return nil
}

// complete runs one completion, recording token usage and truncation.
func (s *Service) complete(ctx context.Context, messages []llm.Message) (string, error) {
	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{Messages: messages})
	if err != nil {
		return "", err
	}

	if resp.InputTokens > 0 || resp.OutputTokens > 0 {
		log.Printf("llm usage: provider=%s model=%s input_tokens=%d output_tokens=%d",
			s.provider.Name(), resp.Model, resp.InputTokens, resp.OutputTokens)
	}
	if resp.FinishReason == "length" {
		log.Printf("llm response truncated at the token limit (provider=%s)", s.provider.Name())
	}

	return resp.Content, nil
}

func (s *Service) completePrompt(ctx context.Context, prompt string) (string, error) {
	return s.complete(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
}
