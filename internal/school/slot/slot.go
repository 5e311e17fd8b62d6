// Package slot is the durable home of the serialized session: one named
// location that survives process restarts. The daemon writes the sealed
// session token into it on login and clears it on logout.
package slot

import "errors"

// ErrEmpty reports that the slot holds nothing.
var ErrEmpty = errors.New("slot: empty")

// Slot stores a single string value. Implementations are synchronous and
// safe for concurrent use.
type Slot interface {
	// Get returns the stored value, or ErrEmpty.
	Get() (string, error)

	// Set replaces the stored value.
	Set(value string) error

	// Remove clears the slot. Clearing an empty slot is a no-op.
	Remove() error
}
