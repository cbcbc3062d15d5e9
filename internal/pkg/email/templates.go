package email

import (
	"fmt"
	"time"
)

// PasswordResetTemplate builds the subject and HTML body for a password
// reset email.
func PasswordResetTemplate(toName, token, baseURL string) (subject, body string) {
	subject = "Reset Your Password - ClearPath"

	resetURL := fmt.Sprintf("%s/api/v1/auth/reset-password?token=%s", baseURL, token)

	body = fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Password Reset Request</h2>
				<p>Hello %s,</p>
				<p>We received a request to reset the password for your ClearPath account. Click the button below to choose a new password:</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Password</a>
				</div>

				<p>Alternatively, you can use this reset code: <strong>%s</strong></p>

				<p>This link and code will expire shortly. If you did not request a password reset, please ignore this email.</p>

				<p>Best regards,<br>The ClearPath Team</p>
			</div>
		</body>
		</html>
	`, toName, resetURL, token)

	return subject, body
}

// ProgramInvitationTemplate builds the subject and HTML body for a
// community program invitation.
func ProgramInvitationTemplate(toName, programName string, programDate time.Time, meetingRoomID, baseURL string) (subject, body string) {
	subject = fmt.Sprintf("You're Invited: %s - ClearPath", programName)

	joinURL := fmt.Sprintf("%s/programs/join/%s", baseURL, meetingRoomID)

	body = fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Community Program Invitation</h2>
				<p>Hello %s,</p>
				<p>You are registered for the community program <strong>%s</strong>, taking place on <strong>%s</strong>.</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Join the Session</a>
				</div>

				<p>Please remember to complete the pre-program survey before joining, and the post-program survey afterwards.</p>

				<p>Best regards,<br>The ClearPath Team</p>
			</div>
		</body>
		</html>
	`, toName, programName, programDate.Format("January 2, 2006"), joinURL)

	return subject, body
}

// CourseCompletionTemplate builds the subject and HTML body for a course
// completion email.
func CourseCompletionTemplate(toName, courseName string) (subject, body string) {
	subject = fmt.Sprintf("Congratulations on Completing %s - ClearPath", courseName)

	body = fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Course Completed!</h2>
				<p>Hello %s,</p>
				<p>Congratulations! You have passed the final exam and completed the course <strong>%s</strong>.</p>

				<p>Keep up the great work. Browse our catalog for more courses to continue your journey.</p>

				<p>Best regards,<br>The ClearPath Team</p>
			</div>
		</body>
		</html>
	`, toName, courseName)

	return subject, body
}
