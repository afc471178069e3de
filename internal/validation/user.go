// Package validation holds boundary checks for user-supplied input.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	emailaddress "github.com/mcnijman/go-emailaddress"
)

// MinNameLength is the shortest accepted display name, in characters.
const MinNameLength = 2

// ValidateName checks a trimmed display name.
func ValidateName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < MinNameLength {
		return fmt.Errorf("Name must be at least %d characters", MinNameLength)
	}
	return nil
}

// ValidateEmail checks that email parses as a single address.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("Email is required")
	}
	if _, err := emailaddress.Parse(email); err != nil {
		return fmt.Errorf("Invalid email address")
	}
	return nil
}
