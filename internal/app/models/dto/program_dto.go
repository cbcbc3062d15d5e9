package dto

import (
	"time"

	"github.com/trananh/clearpath/internal/app/models"
)

// ProgramResponse is the public shape of a community program
type ProgramResponse struct {
	ID            int64                `json:"id"`
	Name          string               `json:"name"`
	Type          models.ProgramType   `json:"type"`
	Date          time.Time            `json:"date"`
	Description   string               `json:"description"`
	Organizer     string               `json:"organizer"`
	Status        models.ProgramStatus `json:"status"`
	MeetingRoomID *string              `json:"meetingRoomId,omitempty"`
	JoinLink      *string              `json:"joinLink,omitempty"`
	IsDisabled    bool                 `json:"isDisabled"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ProgramListResponse is a paginated program listing
type ProgramListResponse struct {
	Programs       []ProgramResponse `json:"programs"`
	PaginationInfo PaginationInfo    `json:"pagination"`
}

// CreateProgramRequest creates a community program
type CreateProgramRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Type        string `json:"type" binding:"required,oneof=online offline hybrid"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Description string `json:"description"`
	Organizer   string `json:"organizer" binding:"required"`
	JoinLink    string `json:"joinLink,omitempty"`
}

// UpdateProgramRequest edits a program; empty fields are left unchanged
type UpdateProgramRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Type        *string `json:"type,omitempty" binding:"omitempty,oneof=online offline hybrid"`
	Date        *string `json:"date,omitempty"`
	Description *string `json:"description,omitempty"`
	Organizer   *string `json:"organizer,omitempty"`
	JoinLink    *string `json:"joinLink,omitempty"`
}

// AttendeeResponse describes one program registration
type AttendeeResponse struct {
	ID                    int64     `json:"id"`
	ProgramID             int64     `json:"programId"`
	AccountID             int64     `json:"accountId"`
	FullName              string    `json:"fullName"`
	Email                 string    `json:"email"`
	RegistrationDate      time.Time `json:"registrationDate"`
	Status                string    `json:"status"`
	BeforeSurveyCompleted bool      `json:"beforeSurveyCompleted"`
	AfterSurveyCompleted  bool      `json:"afterSurveyCompleted"`
}

// InvitationSummary aggregates a bulk invitation send
type InvitationSummary struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}
