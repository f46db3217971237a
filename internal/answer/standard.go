package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ragchat/ragchat/internal/llm"
	"github.com/ragchat/ragchat/internal/session"
	"github.com/ragchat/ragchat/internal/vectordb"
)

// Standard answers a query with single-pass retrieval QA: replay any
// caller-supplied prior history into the session, retrieve supporting
// context, generate with the conversation so far, and record the new turn.
// A replay failure is a client error; the session is not rolled back if a
// later step fails, since replay appends are idempotent from the caller's
// point of view.
func (s *Service) Standard(ctx context.Context, sessionID, query, storePath string, k int, prior []session.Turn) (*Result, error) {
	if len(prior) > 0 {
		if err := s.sessions.Replay(ctx, sessionID, prior); err != nil {
			return nil, err
		}
	}

	if k < 1 {
		k = s.opts.StandardK
	}

	store, err := s.registry.Get(storePath)
	if err != nil {
		return nil, err
	}

	// An empty retrieval is not an error: generation proceeds with no
	// supporting context and typically answers "no information found".
	retrieved, err := store.Query(ctx, query, k)
	if err != nil {
		return nil, err
	}

	history, err := s.sessions.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	history = session.Tail(history, s.opts.MaxHistoryTurns)

	answerText, err := s.generateStandard(ctx, query, retrieved, history)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Append(ctx, sessionID, query, answerText); err != nil {
		return nil, err
	}

	return &Result{
		Answer:  answerText,
		Sources: RenderSources(retrieved),
	}, nil
}

func (s *Service) generateStandard(ctx context.Context, query string, retrieved []vectordb.Result, history []session.Turn) (string, error) {
	if err := s.checkProvider(); err != nil {
		return "", err
	}

	messages := []llm.Message{{Role: llm.RoleSystem, Content: standardSystemPrompt}}
	for _, t := range history {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: t.Question},
			llm.Message{Role: llm.RoleAssistant, Content: t.Answer},
		)
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: buildQuestion(query, retrieved)})

	content, err := s.complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return content, nil
}

func buildQuestion(query string, retrieved []vectordb.Result) string {
	if len(retrieved) == 0 {
		return query
	}

	var sb strings.Builder
	sb.WriteString("Context passages:\n\n")
	for i, r := range retrieved {
		fmt.Fprintf(&sb, "[%d] %s\n\n", i+1, strings.TrimSpace(r.Content))
	}
	sb.WriteString("Question: ")
	sb.WriteString(query)
	return sb.String()
}
