package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rferreira/batepapo/internal/domain/message"
	"github.com/rferreira/batepapo/internal/repository"
)

// MessageRepository implements message.Repository for SQLite
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	query := `
		INSERT INTO messages (id, sender, recipient, text, kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, m.ID, m.From, m.To, m.Text, m.Kind, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// Get retrieves a message by ID
func (r *MessageRepository) Get(ctx context.Context, id string) (*message.Message, error) {
	query := `
		SELECT id, sender, recipient, text, kind, created_at
		FROM messages
		WHERE id = ?
	`

	var m message.Message
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID,
		&m.From,
		&m.To,
		&m.Text,
		&m.Kind,
		&m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return &m, nil
}

// List returns all messages in insertion order
func (r *MessageRepository) List(ctx context.Context) ([]message.Message, error) {
	query := `
		SELECT id, sender, recipient, text, kind, created_at
		FROM messages
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []message.Message
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.From, &m.To, &m.Text, &m.Kind, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

// Update replaces the mutable fields of a message
func (r *MessageRepository) Update(ctx context.Context, m *message.Message) error {
	query := `
		UPDATE messages
		SET recipient = ?, text = ?, kind = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, m.To, m.Text, m.Kind, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a message by ID
func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
