package validation

import (
	"testing"
	"time"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"member@example.com",
		"first.last@sub.domain.org",
		"Upper.Case@Example.COM",
		"  spaced@example.com  ",
	}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{
		"",
		"no-at-sign.com",
		"missing@tld",
		"@example.com",
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUsername(t *testing.T) {
	if !IsValidUsername("user1234") {
		t.Error("alphanumeric username should be valid")
	}
	if IsValidUsername("abc") {
		t.Error("username below 4 characters should be invalid")
	}
	if IsValidUsername("user name") {
		t.Error("username with spaces should be invalid")
	}
	if IsValidUsername("user@name") {
		t.Error("username with symbols should be invalid")
	}
}

func TestIsValidPassword(t *testing.T) {
	if IsValidPassword("short") {
		t.Error("password below minimum length should be invalid")
	}
	if !IsValidPassword("longenough") {
		t.Error("password at or above minimum length should be valid")
	}
}

func TestIsValidFullName(t *testing.T) {
	if IsValidFullName(" a ") {
		t.Error("single character name should be invalid")
	}
	if !IsValidFullName("Tran Van Anh") {
		t.Error("normal full name should be valid")
	}
}

func TestIsDateInFuture(t *testing.T) {
	if !IsDateInFuture(time.Now().UTC()) {
		t.Error("today should count as in the future")
	}
	if !IsDateInFuture(time.Now().UTC().Add(48 * time.Hour)) {
		t.Error("a later day should be in the future")
	}
	if IsDateInFuture(time.Now().UTC().Add(-48 * time.Hour)) {
		t.Error("a past day should not be in the future")
	}
}
