// Package validation carries the field-collecting validation error shared
// by the domain packages.
package validation

import (
	"fmt"
	"strings"
)

// Error reports every violated field of a payload, not just the first.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}
