package errors

import (
	"strings"
	"unicode"
)

// ValidateTitle validates a sketch title.
// Titles must be non-empty after trimming and free of control characters.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return New(ErrCodeInvalidInput, "sketch title cannot be empty")
	}

	if len(trimmed) > 256 {
		return New(ErrCodeInvalidInput, "sketch title too long (max 256 characters)")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "sketch title contains invalid control characters")
		}
	}

	return nil
}

// ValidateActorName validates a single cast member name.
// Empty names are rejected; they usually indicate a malformed cast column.
func ValidateActorName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "cast member name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "cast member name contains invalid control characters")
		}
	}
	return nil
}
