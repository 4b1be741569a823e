// Package sqlite provides the audit stores (votes and conversation feedback)
// on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// AuditStore implements ports.VoteStore and ports.FeedbackStore.
// Records are append-style: replaying the same vote overwrites the previous
// row for the same key, which keeps redeliveries idempotent.
type AuditStore struct {
	db *sql.DB
}

// New opens or creates the audit database at the given path.
func New(dbPath string) (*AuditStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &AuditStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *AuditStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS votes (
		chat_id    TEXT NOT NULL,
		message_id INTEGER NOT NULL,
		vote       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (chat_id, message_id)
	);

	CREATE TABLE IF NOT EXISTS feedbacks (
		session_id TEXT NOT NULL,
		chat_id    TEXT NOT NULL,
		topic_id   TEXT NOT NULL,
		vote       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (session_id, chat_id)
	);
	CREATE INDEX IF NOT EXISTS idx_feedbacks_topic ON feedbacks(topic_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveVote records a vote for the message it was cast on.
func (s *AuditStore) SaveVote(ctx context.Context, chatID string, messageID int, vote string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO votes (chat_id, message_id, vote, created_at) VALUES (?, ?, ?, ?)`,
		chatID, messageID, vote, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

// SaveFeedback records end-of-conversation feedback.
func (s *AuditStore) SaveFeedback(ctx context.Context, chatID, sessionID, topicID, vote string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO feedbacks (session_id, chat_id, topic_id, vote, created_at) VALUES (?, ?, ?, ?, ?)`,
		sessionID, chatID, topicID, vote, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *AuditStore) Close() error {
	return s.db.Close()
}
