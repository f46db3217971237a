package session

import (
	"context"
	"fmt"

	"github.com/ragchat/ragchat/internal/db"
)

// SQLiteStore persists sessions durably; history survives restarts. No
// TTL-based eviction is applied.
type SQLiteStore struct {
	db *db.DB
}

// NewSQLiteStore creates a session store backed by the given database.
func NewSQLiteStore(database *db.DB) *SQLiteStore {
	return &SQLiteStore{db: database}
}

func (s *SQLiteStore) History(ctx context.Context, sessionID string) ([]Turn, error) {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT question, answer FROM chat_turns WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading history for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.Question, &t.Answer); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

func (s *SQLiteStore) Append(ctx context.Context, sessionID, question, answer string) error {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_turns (session_id, question, answer) VALUES (?, ?, ?)`,
		sessionID, question, answer)
	if err != nil {
		return fmt.Errorf("recording turn for session %s: %w", sessionID, err)
	}
	return nil
}

func (s *SQLiteStore) Replay(ctx context.Context, sessionID string, turns []Turn) error {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting replay: %w", err)
	}
	defer tx.Rollback()

	for _, t := range turns {
		if t.Question == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chat_turns (session_id, question, answer) VALUES (?, ?, ?)`,
			sessionID, t.Question, t.Answer); err != nil {
			return fmt.Errorf("replaying turn for session %s: %w", sessionID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ensureSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO chat_sessions (id) VALUES (?)`, sessionID)
	if err != nil {
		return fmt.Errorf("creating session %s: %w", sessionID, err)
	}
	return nil
}
