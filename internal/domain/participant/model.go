package participant

import "time"

// Participant is a connected chat member. The display name is the identity;
// there is no separate identifier.
type Participant struct {
	Name     string    `json:"name"`
	LastSeen time.Time `json:"last_seen"`
}
