package message

import "time"

// Kind classifies a message for visibility purposes.
// The values are the wire vocabulary of the chat protocol.
type Kind string

const (
	// KindPublic is a room-wide chat message, readable by anyone.
	KindPublic Kind = "message"
	// KindPrivate is addressed to a single participant; only the
	// sender and the recipient may read it.
	KindPrivate Kind = "private_message"
	// KindStatus is a system-generated join/leave event. Clients
	// can never author one.
	KindStatus Kind = "status"
)

// Broadcast is the reserved recipient meaning "all participants".
const Broadcast = "Todos"

// Message is a single chat entry.
type Message struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Text      string    `json:"text"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
