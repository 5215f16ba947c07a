package id

import "github.com/google/uuid"

// RequestID returns a new UUID v7 string, falling back to v4 when the clock
// based generator fails.
func RequestID() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}

// IsValid reports whether s parses as a UUID.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
