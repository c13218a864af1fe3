package util

import "github.com/oklog/ulid/v2"

// NewRequestID returns a ULID string. Safe for concurrent use.
func NewRequestID() string {
	return ulid.Make().String()
}
