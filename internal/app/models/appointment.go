package models

import "time"

// Appointment links an account (patient) to a consultant at a (date, time, duration)
type Appointment struct {
	ID              int64             `json:"id" db:"id"`
	AccountID       int64             `json:"accountId" db:"account_id"`
	ConsultantID    int64             `json:"consultantId" db:"consultant_id"`
	Date            time.Time         `json:"date" db:"date"`
	Time            string            `json:"time" db:"time"`
	DurationMinutes int               `json:"durationMinutes" db:"duration_minutes"`
	Status          AppointmentStatus `json:"status" db:"status"`
	RejectionReason *string           `json:"rejectionReason,omitempty" db:"rejection_reason"`
	MeetingRoomID   *string           `json:"meetingRoomId,omitempty" db:"meeting_room_id"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`

	// Related entities
	Account    *Account    `json:"account,omitempty"`
	Consultant *Consultant `json:"consultant,omitempty"`
}
