package email

import (
	"strings"
	"testing"
	"time"
)

func TestPasswordResetTemplate(t *testing.T) {
	subject, body := PasswordResetTemplate("Anh Tran", "tok123", "https://app.example.com")

	if !strings.Contains(subject, "Reset Your Password") {
		t.Errorf("unexpected subject: %q", subject)
	}
	if !strings.Contains(body, "Anh Tran") {
		t.Error("body does not greet the recipient")
	}
	if !strings.Contains(body, "https://app.example.com/api/v1/auth/reset-password?token=tok123") {
		t.Error("body does not contain the reset URL")
	}
	if !strings.Contains(body, "tok123") {
		t.Error("body does not contain the reset code")
	}
}

func TestProgramInvitationTemplate(t *testing.T) {
	date := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	subject, body := ProgramInvitationTemplate("Minh", "Say No Workshop", date, "room-42", "https://app.example.com")

	if !strings.Contains(subject, "Say No Workshop") {
		t.Errorf("subject does not name the program: %q", subject)
	}
	if !strings.Contains(body, "June 15, 2025") {
		t.Error("body does not contain the formatted program date")
	}
	if !strings.Contains(body, "https://app.example.com/programs/join/room-42") {
		t.Error("body does not contain the join URL")
	}
}

func TestCourseCompletionTemplate(t *testing.T) {
	subject, body := CourseCompletionTemplate("Lan", "Awareness Basics")

	if !strings.Contains(subject, "Awareness Basics") {
		t.Errorf("subject does not name the course: %q", subject)
	}
	if !strings.Contains(body, "Lan") {
		t.Error("body does not greet the recipient")
	}
	if !strings.Contains(body, "passed the final exam") {
		t.Error("body does not mention passing the exam")
	}
}
