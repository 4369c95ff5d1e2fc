package moderation

import (
	"errors"
	"strings"
)

// MaxBodyLength is counted in runes on the trimmed, pre-mask body.
const MaxBodyLength = 500

var (
	ErrEmptyBody   = errors.New("message body is empty")
	ErrBodyTooLong = errors.New("message body exceeds maximum length")
)

// Validate trims the raw body and enforces the 1..MaxBodyLength rule. Masking
// happens after validation, so masked output never changes whether a message
// was accepted.
func Validate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyBody
	}
	if len([]rune(trimmed)) > MaxBodyLength {
		return "", ErrBodyTooLong
	}
	return trimmed, nil
}
