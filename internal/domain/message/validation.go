package message

import (
	"strings"

	"github.com/rferreira/batepapo/internal/validation"
)

// PostRequest is the client payload for posting or editing a message.
type PostRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Kind Kind   `json:"kind"`
}

// ValidatePost validates a post/edit payload, collecting every violated
// field. Clients may only author public and private messages; status is
// reserved for the presence tracker.
func ValidatePost(req PostRequest) error {
	var fields []string
	if strings.TrimSpace(req.To) == "" {
		fields = append(fields, "to")
	}
	if strings.TrimSpace(req.Text) == "" {
		fields = append(fields, "text")
	}
	if req.Kind != KindPublic && req.Kind != KindPrivate {
		fields = append(fields, "kind")
	}
	if len(fields) > 0 {
		return &validation.Error{Fields: fields}
	}
	return nil
}
