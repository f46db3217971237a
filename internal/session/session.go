// Package session keeps per-session conversational history: an ordered
// log of (question, answer) turns keyed by an opaque caller-supplied id.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidHistory reports a malformed caller-supplied history payload.
var ErrInvalidHistory = errors.New("invalid chat history")

// Turn is one question/answer exchange.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Store persists conversational history. Implementations must serialize
// mutations to a single session's history with respect to each other.
type Store interface {
	// History returns the session's turns in insertion order, creating an
	// empty session on first reference to an unseen id.
	History(ctx context.Context, sessionID string) ([]Turn, error)

	// Append records one completed turn.
	Append(ctx context.Context, sessionID, question, answer string) error

	// Replay appends caller-supplied prior turns in list order. Turns with
	// an empty question are ignored; a missing answer is stored as empty.
	Replay(ctx context.Context, sessionID string, turns []Turn) error
}

// ParseHistory decodes a JSON-encoded list of {question, answer} objects.
// Any payload that is not such a list fails with ErrInvalidHistory, before
// any session state is touched.
func ParseHistory(raw string) ([]Turn, error) {
	var turns []Turn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON list of {question, answer} objects: %v", ErrInvalidHistory, err)
	}
	return turns, nil
}

// Tail returns at most n of the most recent turns. Callers bound the
// history sent to generation with this; the store itself keeps everything.
func Tail(turns []Turn, n int) []Turn {
	if n <= 0 || len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
