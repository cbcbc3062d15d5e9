package validation

import (
	"regexp"
	"strings"
	"time"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Username pattern - alphanumeric only, 4 to 30 characters
	UsernamePattern = `^[a-zA-Z0-9]{4,30}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Username *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	Username: regexp.MustCompile(UsernamePattern),
}

// IsValidEmail reports whether the address matches the email pattern.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// IsValidUsername reports whether the username is alphanumeric and within length bounds.
func IsValidUsername(username string) bool {
	return CompiledPatterns.Username.MatchString(username)
}

// IsValidPassword reports whether the password satisfies the minimum length.
func IsValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}

// IsValidFullName reports whether the name is within length bounds after trimming.
func IsValidFullName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= NameMinLength && n <= NameMaxLength
}

// IsDateInFuture reports whether the given date is today or later (UTC day granularity).
func IsDateInFuture(date time.Time) bool {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return !date.UTC().Truncate(24 * time.Hour).Before(today)
}
