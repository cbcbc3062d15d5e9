package models

import "time"

// Survey is a reusable questionnaire definition
type Survey struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Questions   []byte    `json:"questions" db:"questions"` // JSONB document
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ProgramSurvey maps a Survey to a CommunityProgram with a before/after tag.
// At most one mapping may exist per (ProgramID, SurveyType); the database
// enforces this with a unique index so concurrent first reads cannot
// double-insert.
type ProgramSurvey struct {
	ID         int64      `json:"id" db:"id"`
	ProgramID  int64      `json:"programId" db:"program_id"`
	SurveyID   int64      `json:"surveyId" db:"survey_id"`
	SurveyType SurveyType `json:"surveyType" db:"survey_type"`

	// Related entities
	Survey *Survey `json:"survey,omitempty"`
}
