package message

import "context"

// Repository provides message persistence.
type Repository interface {
	Create(ctx context.Context, m *Message) error
	Get(ctx context.Context, id string) (*Message, error)
	// List returns every message in insertion order.
	List(ctx context.Context) ([]Message, error)
	Update(ctx context.Context, m *Message) error
	Delete(ctx context.Context, id string) error
}

// PresenceChecker reports whether a name currently belongs to a live
// participant.
type PresenceChecker interface {
	IsLive(ctx context.Context, name string) (bool, error)
}
