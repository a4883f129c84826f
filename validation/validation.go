package validation

import (
	"context"
	"fmt"
	"regexp"

	"event-registration/storage"
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~\-]+@[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)+$`)
	textRe  = regexp.MustCompile(`^[a-zA-Z0-9\s.\-]+$`)
)

// IsValidEmail checks basic address syntax: a local part, an @, and a dotted
// domain.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidTextField accepts only ASCII letters, digits, whitespace, dots and
// hyphens. Unicode letters are rejected on purpose; the restriction is part
// of the product behavior, not an oversight.
func IsValidTextField(s string) bool {
	return textRe.MatchString(s)
}

// IsDuplicate reports whether a registration with the same email and event
// date already exists.
func IsDuplicate(ctx context.Context, store *storage.RegistrationStore, email, eventDate string) (bool, error) {
	return store.Exists(ctx, email, eventDate)
}

// FieldErrorMessage is the shared template for text field failures.
func FieldErrorMessage(fieldLabel string) string {
	return fmt.Sprintf("The %s field contains invalid characters. Only letters, numbers, spaces, dots, and hyphens are allowed.", fieldLabel)
}
