package session

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in an in-process map for the process
// lifetime. No eviction; suitable for tests and single-node dev setups.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]Turn
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]Turn)}
}

func (m *MemoryStore) History(_ context.Context, sessionID string) ([]Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		m.sessions[sessionID] = nil
	}
	turns := m.sessions[sessionID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (m *MemoryStore) Append(_ context.Context, sessionID, question, answer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = append(m.sessions[sessionID], Turn{Question: question, Answer: answer})
	return nil
}

func (m *MemoryStore) Replay(_ context.Context, sessionID string, turns []Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range turns {
		if t.Question == "" {
			continue
		}
		m.sessions[sessionID] = append(m.sessions[sessionID], t)
	}
	return nil
}
