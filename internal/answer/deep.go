package answer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ragchat/ragchat/internal/vectordb"
)

// Deep answers a query with the memory-less research strategy: retrieve a
// wider set of entries, condense them with map-reduce summarization, then
// generate the final answer from the condensed summary alone. The final
// prompt stays bounded regardless of k.
func (s *Service) Deep(ctx context.Context, query, storePath string, k int) (*Result, error) {
	if k < 1 {
		k = s.opts.DeepK
	}

	store, err := s.registry.Get(storePath)
	if err != nil {
		return nil, err
	}

	retrieved, err := store.Query(ctx, query, k)
	if err != nil {
		return nil, err
	}

	summary, err := s.summarize(ctx, retrieved)
	if err != nil {
		return nil, err
	}

	if err := s.checkProvider(); err != nil {
		return nil, err
	}
	answerText, err := s.completePrompt(ctx, fmt.Sprintf(deepAnswerPrompt, summary, query))
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	return &Result{
		Answer:  answerText,
		Sources: RenderSources(retrieved),
	}, nil
}

// summarize runs the map-reduce pass: each retrieved entry is summarized
// independently, then the partial summaries are combined. An empty
// retrieval produces an empty summary without any LLM calls; a single
// entry skips the reduce step.
func (s *Service) summarize(ctx context.Context, retrieved []vectordb.Result) (string, error) {
	if len(retrieved) == 0 {
		return "", nil
	}
	if err := s.checkProvider(); err != nil {
		return "", err
	}

	partials := make([]string, len(retrieved))
	errs := make([]error, len(retrieved))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.opts.MaxConcurrency)
	for i, r := range retrieved {
		wg.Add(1)
		go func(i int, content string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			partials[i], errs[i] = s.completePrompt(ctx, fmt.Sprintf(mapPrompt, content))
		}(i, r.Content)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return "", fmt.Errorf("summarizing retrieved passage: %w", err)
		}
	}

	if len(partials) == 1 {
		return partials[0], nil
	}

	combined, err := s.completePrompt(ctx, fmt.Sprintf(reducePrompt, strings.Join(partials, "\n\n")))
	if err != nil {
		return "", fmt.Errorf("combining summaries: %w", err)
	}
	return combined, nil
}
