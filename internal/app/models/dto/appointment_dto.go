package dto

import (
	"time"

	"github.com/trananh/clearpath/internal/app/models"
)

// AppointmentResponse is the public shape of an appointment
type AppointmentResponse struct {
	ID              int64                    `json:"id"`
	AccountID       int64                    `json:"accountId"`
	ConsultantID    int64                    `json:"consultantId"`
	Date            time.Time                `json:"date"`
	Time            string                   `json:"time"`
	DurationMinutes int                      `json:"durationMinutes"`
	Status          models.AppointmentStatus `json:"status"`
	RejectionReason *string                  `json:"rejectionReason,omitempty"`
	MeetingRoomID   *string                  `json:"meetingRoomId,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
}

// BookAppointmentRequest books a consultation
type BookAppointmentRequest struct {
	ConsultantID    int64  `json:"consultantId" binding:"required"`
	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	Time            string `json:"time" binding:"required"` // HH:MM
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

// RejectAppointmentRequest rejects a pending appointment with a reason
type RejectAppointmentRequest struct {
	Reason string `json:"reason" binding:"required,min=2"`
}

// ConsultantResponse is the public shape of a consultant profile
type ConsultantResponse struct {
	ID         int64  `json:"id"`
	AccountID  int64  `json:"accountId"`
	FullName   string `json:"fullName"`
	Specialty  string `json:"specialty"`
	Bio        string `json:"bio"`
	IsDisabled bool   `json:"isDisabled"`
}

// CreateConsultantRequest promotes an account to consultant with a profile
type CreateConsultantRequest struct {
	AccountID int64  `json:"accountId" binding:"required"`
	Specialty string `json:"specialty" binding:"required"`
	Bio       string `json:"bio"`
}

// UpdateConsultantRequest edits a consultant profile
type UpdateConsultantRequest struct {
	Specialty *string `json:"specialty,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}
