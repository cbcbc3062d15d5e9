package models

import "time"

// CommunityProgram represents a prevention event backed by the 'community_programs' table
type CommunityProgram struct {
	ID            int64         `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	Type          ProgramType   `json:"type" db:"type"`
	Date          time.Time     `json:"date" db:"date"`
	Description   string        `json:"description" db:"description"`
	Organizer     string        `json:"organizer" db:"organizer"`
	Status        ProgramStatus `json:"status" db:"status"`
	MeetingRoomID *string       `json:"meetingRoomId,omitempty" db:"meeting_room_id"`
	JoinLink      *string       `json:"joinLink,omitempty" db:"join_link"`
	IsDisabled    bool          `json:"isDisabled" db:"is_disabled"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
}

// ProgramAttendee joins an account to a program, unique per (ProgramID, AccountID)
type ProgramAttendee struct {
	ID                    int64     `json:"id" db:"id"`
	ProgramID             int64     `json:"programId" db:"program_id"`
	AccountID             int64     `json:"accountId" db:"account_id"`
	RegistrationDate      time.Time `json:"registrationDate" db:"registration_date"`
	Status                string    `json:"status" db:"status"`
	BeforeSurveyCompleted bool      `json:"beforeSurveyCompleted" db:"before_survey_completed"`
	AfterSurveyCompleted  bool      `json:"afterSurveyCompleted" db:"after_survey_completed"`

	// Related entities
	Account *Account `json:"account,omitempty"`
}
