package postgres

import (
	"context"
	"database/sql"
	"time"

	"helpmatch-backend/internal/domain"
	"helpmatch-backend/internal/repository"
)

type chatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, m *domain.ChatMessage) error {
	// sent_at comes from the database clock; the column default is NOW().
	query := `INSERT INTO chat_messages (request_id, sender_id, recipient_id, body, read)
	          VALUES ($1, $2, $3, $4, FALSE) RETURNING id, sent_at`
	return r.db.QueryRowContext(ctx, query, m.RequestID, m.SenderID, m.RecipientID, m.Body).Scan(&m.ID, &m.SentAt)
}

func (r *chatRepository) MarkRead(ctx context.Context, messageID, recipientID int32) (bool, error) {
	query := `UPDATE chat_messages SET read = TRUE WHERE id = $1 AND recipient_id = $2`
	result, err := r.db.ExecContext(ctx, query, messageID, recipientID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *chatRepository) ListByRequest(ctx context.Context, requestID int32) ([]domain.ChatMessage, error) {
	query := `SELECT id, request_id, sender_id, recipient_id, body, read, sent_at
	          FROM chat_messages WHERE request_id = $1 ORDER BY sent_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var sentAt time.Time
		if err := rows.Scan(&m.ID, &m.RequestID, &m.SenderID, &m.RecipientID, &m.Body, &m.Read, &sentAt); err != nil {
			return nil, err
		}
		m.SentAt = sentAt
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
