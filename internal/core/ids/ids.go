// Package ids generates and validates resource identifiers.
// Posts and comments are keyed by canonical lowercase UUID strings on every backend.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh time-ordered (version 7) identifier.
// Ids generated by this process sort in creation order, including within the
// same millisecond, so they break createdAt ties in insertion order.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Valid reports whether id is a well-formed identifier in canonical form.
// uuid.Parse also accepts braced and urn forms; those are rejected here so an
// id has exactly one spelling.
func Valid(id string) bool {
	if len(id) != 36 || strings.ToLower(id) != id {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
