package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rferreira/batepapo/internal/domain/participant"
	"github.com/rferreira/batepapo/internal/repository"
)

// ParticipantRepository implements participant.Repository for SQLite
type ParticipantRepository struct {
	db *DB
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Create inserts a new participant
func (r *ParticipantRepository) Create(ctx context.Context, p *participant.Participant) error {
	query := `INSERT INTO participants (name, last_seen) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, p.Name, p.LastSeen)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}

	return nil
}

// Get retrieves a participant by name
func (r *ParticipantRepository) Get(ctx context.Context, name string) (*participant.Participant, error) {
	query := `SELECT name, last_seen FROM participants WHERE name = ?`

	var p participant.Participant
	err := r.db.QueryRowContext(ctx, query, name).Scan(&p.Name, &p.LastSeen)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return &p, nil
}

// List returns all participants
func (r *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	query := `SELECT name, last_seen FROM participants ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []participant.Participant
	for rows.Next() {
		var p participant.Participant
		if err := rows.Scan(&p.Name, &p.LastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	return participants, nil
}

// Touch refreshes last_seen, inserting the row if it is missing. Keyed by
// the primary key, so it can never leave two records for one name.
func (r *ParticipantRepository) Touch(ctx context.Context, name string, seen time.Time) error {
	query := `
		INSERT INTO participants (name, last_seen) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET last_seen = excluded.last_seen
	`

	_, err := r.db.ExecContext(ctx, query, name, seen)
	if err != nil {
		return fmt.Errorf("failed to touch participant: %w", err)
	}

	return nil
}

// Delete removes a participant by name
func (r *ParticipantRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
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

// ListStale returns participants last seen before the cutoff
func (r *ParticipantRepository) ListStale(ctx context.Context, before time.Time) ([]participant.Participant, error) {
	query := `SELECT name, last_seen FROM participants WHERE last_seen < ?`

	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale participants: %w", err)
	}
	defer rows.Close()

	var participants []participant.Participant
	for rows.Next() {
		var p participant.Participant
		if err := rows.Scan(&p.Name, &p.LastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	return participants, nil
}
