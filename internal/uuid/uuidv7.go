// Package uuid generates request identifiers.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a time-ordered version 7 UUID, so request ids sort by
// arrival in the logs. It falls back to a random version 4 UUID if the
// clock-based generator fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}
