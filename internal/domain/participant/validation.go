package participant

import (
	"strings"

	"github.com/rferreira/batepapo/internal/validation"
)

// ValidateName validates a registration payload.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &validation.Error{Fields: []string{"name"}}
	}
	return nil
}
