package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Jason910315/gentle-gains/internal/domain"
)

type ChatStore struct {
	db *sql.DB
}

func NewChatStore(db *sql.DB) *ChatStore {
	return &ChatStore{db: db}
}

// Append adds one turn to the session's log. created_at is assigned by the
// database so ordering is consistent regardless of caller clocks.
func (s *ChatStore) Append(ctx context.Context, sessionID string, role domain.Role, content string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (session_id, role, content) VALUES (?, ?, ?)
	`, sessionID, role, content)
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// RecentBySession returns up to limit of the session's most recent messages
// in chronological order (oldest first). The query fetches newest-first to
// apply the limit, then the page is reversed before returning so the model
// reads the conversation in the order it happened.
func (s *ChatStore) RecentBySession(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content, created_at FROM chat_messages
		WHERE session_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat messages: %w", err)
	}

	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	return msgs, nil
}
