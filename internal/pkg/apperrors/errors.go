package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")
)

// Account errors
var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrUsernameAlreadyTaken = errors.New("username already taken")
	ErrRoleNotFound         = errors.New("role not found")
)

// Program errors
var (
	ErrProgramNotFound    = errors.New("community program not found")
	ErrAlreadyRegistered  = errors.New("account already registered for this program")
	ErrAttendeeNotFound   = errors.New("program attendee not found")
	ErrProgramDateInPast  = errors.New("program date cannot be in the past")
	ErrProgramHasNoRoom   = errors.New("program has no meeting room")
)

// Survey errors
var (
	ErrSurveyNotFound        = errors.New("survey not found")
	ErrSurveyMappingNotFound = errors.New("survey mapping not found")
)

// Consultant and appointment errors
var (
	ErrConsultantNotFound     = errors.New("consultant not found")
	ErrScheduleSlotNotFound   = errors.New("schedule slot not found")
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrAppointmentDateInPast  = errors.New("appointment date cannot be in the past")
	ErrAppointmentNotPending  = errors.New("appointment is not pending")
	ErrRejectionReasonMissing = errors.New("rejection reason is required")
)

// Content errors
var (
	ErrArticleNotFound    = errors.New("article not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrExamNotFound       = errors.New("exam not found")
	ErrAlreadyEnrolled    = errors.New("account already enrolled in this course")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// Password reset errors
var (
	ErrInvalidPasswordResetToken = errors.New("invalid or expired password reset token")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}
