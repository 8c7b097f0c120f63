package participant

import (
	"context"
	"time"

	"github.com/rferreira/batepapo/internal/domain/message"
)

// Repository provides participant persistence.
type Repository interface {
	Create(ctx context.Context, p *Participant) error
	Get(ctx context.Context, name string) (*Participant, error)
	List(ctx context.Context) ([]Participant, error)
	// Touch refreshes last_seen for name, inserting the record if it no
	// longer exists so a name never owns more than one live record.
	Touch(ctx context.Context, name string, seen time.Time) error
	Delete(ctx context.Context, name string) error
	// ListStale returns participants whose last_seen is before the cutoff.
	ListStale(ctx context.Context, before time.Time) ([]Participant, error)
}

// MessageLog appends system status messages for join/leave events.
type MessageLog interface {
	Create(ctx context.Context, m *message.Message) error
}
