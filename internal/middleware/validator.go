package middleware

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var userIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// maxContextLen caps the free-text hint forwarded to the models.
const maxContextLen = 2000

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// SanitizeContext cleans the optional user context and truncates it.
func SanitizeContext(input string) string {
	s := SanitizeString(input)
	if r := []rune(s); len(r) > maxContextLen {
		s = string(r[:maxContextLen])
	}
	return s
}

// ValidateUserID allows alphanumeric, dash, underscore (max 64 chars).
// User ids become object key prefixes, so nothing else is accepted.
func ValidateUserID(user string) error {
	if user == "" {
		return fmt.Errorf("user ID cannot be empty")
	}
	if !userIDPattern.MatchString(user) {
		return fmt.Errorf("invalid user ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}
	return nil
}

// ValidateID accepts share and audit ids, which are always uuids.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid id format: %w", err)
	}
	return nil
}

// ValidateImage requires an image payload. Bare base64 without the data URL
// header is accepted and treated as PNG.
func ValidateImage(image string) error {
	if strings.TrimSpace(image) == "" {
		return fmt.Errorf("image is required")
	}
	return nil
}
