package domain

import (
	"errors"
	"strings"
)

// Length limits for user-supplied text fields.
const (
	MaxLabelLength       = 100
	MaxDescriptionLength = 1000
)

// Label and description validation errors
var (
	ErrEmptyLabel         = errors.New("label cannot be empty")
	ErrLabelTooLong       = errors.New("label cannot exceed 100 characters")
	ErrDescriptionTooLong = errors.New("description cannot exceed 1000 characters")
)

// NormalizeLabel trims a short user-facing name and validates it is
// non-empty and at most MaxLabelLength characters.
func NormalizeLabel(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrEmptyLabel
	}
	if len([]rune(trimmed)) > MaxLabelLength {
		return "", ErrLabelTooLong
	}
	return trimmed, nil
}

// NormalizeDescription trims an optional free-text description. The empty
// string is allowed; absence normalizes to empty.
func NormalizeDescription(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if len([]rune(trimmed)) > MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	return trimmed, nil
}
