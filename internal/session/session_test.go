package session

import (
	"context"
	"errors"
	"testing"

	"github.com/ragchat/ragchat/internal/db"
)

func storeBackends(t *testing.T) map[string]Store {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": NewSQLiteStore(database),
	}
}

func TestStore_AppendAndHistory(t *testing.T) {
	for name, store := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			turns, err := store.History(ctx, "s1")
			if err != nil {
				t.Fatalf("History: %v", err)
			}
			if len(turns) != 0 {
				t.Fatalf("a fresh session should have no turns, got %d", len(turns))
			}

			if err := store.Append(ctx, "s1", "q1", "a1"); err != nil {
				t.Fatalf("Append: %v", err)
			}
			if err := store.Append(ctx, "s1", "q2", "a2"); err != nil {
				t.Fatalf("Append: %v", err)
			}

			turns, err = store.History(ctx, "s1")
			if err != nil {
				t.Fatalf("History: %v", err)
			}
			if len(turns) != 2 {
				t.Fatalf("expected 2 turns, got %d", len(turns))
			}
			if turns[0].Question != "q1" || turns[1].Answer != "a2" {
				t.Errorf("turns out of order: %+v", turns)
			}

			// Sessions are isolated by id.
			other, err := store.History(ctx, "s2")
			if err != nil {
				t.Fatalf("History(s2): %v", err)
			}
			if len(other) != 0 {
				t.Errorf("session s2 should be empty, got %d turns", len(other))
			}
		})
	}
}

func TestStore_Replay(t *testing.T) {
	for name, store := range storeBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			err := store.Replay(ctx, "s1", []Turn{
				{Question: "q1", Answer: "a1"},
				{Question: "", Answer: "orphan answer"}, // ignored
				{Question: "q2"},                        // missing answer kept as empty
			})
			if err != nil {
				t.Fatalf("Replay: %v", err)
			}

			turns, err := store.History(ctx, "s1")
			if err != nil {
				t.Fatalf("History: %v", err)
			}
			if len(turns) != 2 {
				t.Fatalf("expected 2 replayed turns, got %d: %+v", len(turns), turns)
			}
			if turns[0] != (Turn{Question: "q1", Answer: "a1"}) {
				t.Errorf("unexpected first turn: %+v", turns[0])
			}
			if turns[1] != (Turn{Question: "q2", Answer: ""}) {
				t.Errorf("missing answers should be stored empty, got %+v", turns[1])
			}
		})
	}
}

func TestParseHistory(t *testing.T) {
	turns, err := ParseHistory(`[{"question":"q1","answer":"a1"},{"question":"q2"}]`)
	if err != nil {
		t.Fatalf("ParseHistory: %v", err)
	}
	if len(turns) != 2 || turns[1].Answer != "" {
		t.Fatalf("unexpected turns: %+v", turns)
	}

	for _, raw := range []string{
		`{"question":"q1"}`, // object, not a list
		`"q1"`,
		`not json`,
	} {
		if _, err := ParseHistory(raw); !errors.Is(err, ErrInvalidHistory) {
			t.Errorf("ParseHistory(%q): expected ErrInvalidHistory, got %v", raw, err)
		}
	}
}

func TestTail(t *testing.T) {
	turns := []Turn{{Question: "q1"}, {Question: "q2"}, {Question: "q3"}}

	if got := Tail(turns, 2); len(got) != 2 || got[0].Question != "q2" {
		t.Errorf("Tail(2) should keep the most recent turns, got %+v", got)
	}
	if got := Tail(turns, 5); len(got) != 3 {
		t.Errorf("Tail larger than input should return everything, got %+v", got)
	}
	if got := Tail(turns, 0); len(got) != 3 {
		t.Errorf("Tail(0) disables the cap, got %+v", got)
	}
}
