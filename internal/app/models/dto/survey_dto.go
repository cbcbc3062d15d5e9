package dto

import (
	"encoding/json"
	"time"

	"github.com/trananh/clearpath/internal/app/models"
)

// SurveyResponse is the public shape of a survey definition
type SurveyResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Questions   json.RawMessage `json:"questions"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CreateSurveyRequest creates a survey definition
type CreateSurveyRequest struct {
	Name        string          `json:"name" binding:"required,min=2,max=200"`
	Description string          `json:"description"`
	Questions   json.RawMessage `json:"questions" binding:"required"`
}

// UpdateSurveyRequest edits a survey definition
type UpdateSurveyRequest struct {
	Name        *string         `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Description *string         `json:"description,omitempty"`
	Questions   json.RawMessage `json:"questions,omitempty"`
}

// ProgramSurveyResponse is one before/after mapping for a program
type ProgramSurveyResponse struct {
	ID         int64             `json:"id"`
	ProgramID  int64             `json:"programId"`
	SurveyType models.SurveyType `json:"surveyType"`
	Survey     SurveyResponse    `json:"survey"`
}

// SubmitSurveyRequest records a survey submission for a program attendee
type SubmitSurveyRequest struct {
	SurveyType string          `json:"surveyType" binding:"required,oneof=before after"`
	Answers    json.RawMessage `json:"answers" binding:"required"`
}
