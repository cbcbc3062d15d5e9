package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
)

// SurveyStore is the survey persistence surface used by SurveyService.
type SurveyStore interface {
	GetByID(ctx context.Context, id int64) (*models.Survey, error)
	List(ctx context.Context) ([]*models.Survey, error)
	Create(ctx context.Context, s *models.Survey) (int64, error)
	Update(ctx context.Context, s *models.Survey) error
	Delete(ctx context.Context, id int64) error
	EnsureDefaultMappings(ctx context.Context, programID int64) error
	MappingsByProgram(ctx context.Context, programID int64) ([]*models.ProgramSurvey, error)
}

// AttendeeMarker flips completion flags on a registration.
type AttendeeMarker interface {
	GetByProgramAndAccount(ctx context.Context, programID, accountID int64) (*models.ProgramAttendee, error)
	SetSurveyCompleted(ctx context.Context, programID, accountID int64, surveyType models.SurveyType) error
}

// SurveyService handles survey definitions and program survey mappings
type SurveyService struct {
	surveyStore   SurveyStore
	attendeeStore AttendeeMarker
	logger        zerolog.Logger
}

// NewSurveyService creates a new SurveyService
func NewSurveyService(surveyStore SurveyStore, attendeeStore AttendeeMarker, logger zerolog.Logger) *SurveyService {
	return &SurveyService{
		surveyStore:   surveyStore,
		attendeeStore: attendeeStore,
		logger:        logger,
	}
}

func toSurveyResponse(s *models.Survey) dto.SurveyResponse {
	return dto.SurveyResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Questions:   json.RawMessage(s.Questions),
		CreatedAt:   s.CreatedAt,
	}
}

// List retrieves every survey definition.
func (s *SurveyService) List(ctx context.Context) ([]dto.SurveyResponse, error) {
	surveys, err := s.surveyStore.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SurveyResponse, 0, len(surveys))
	for _, survey := range surveys {
		responses = append(responses, toSurveyResponse(survey))
	}
	return responses, nil
}

// GetByID retrieves a single survey definition.
func (s *SurveyService) GetByID(ctx context.Context, id int64) (*dto.SurveyResponse, error) {
	survey, err := s.surveyStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toSurveyResponse(survey)
	return &response, nil
}

// Create adds a survey definition.
func (s *SurveyService) Create(ctx context.Context, req *dto.CreateSurveyRequest) (*dto.SurveyResponse, error) {
	if !json.Valid(req.Questions) {
		return nil, fmt.Errorf("%w: questions must be a valid JSON document", apperrors.ErrValidationFailed)
	}

	survey := &models.Survey{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Questions:   []byte(req.Questions),
	}

	surveyID, err := s.surveyStore.Create(ctx, survey)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("surveyId", surveyID).Str("name", survey.Name).Msg("Survey created")
	return s.GetByID(ctx, surveyID)
}

// Update edits a survey definition. Unset fields keep their stored values.
func (s *SurveyService) Update(ctx context.Context, id int64, req *dto.UpdateSurveyRequest) (*dto.SurveyResponse, error) {
	survey, err := s.surveyStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		survey.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		survey.Description = *req.Description
	}
	if len(req.Questions) > 0 {
		if !json.Valid(req.Questions) {
			return nil, fmt.Errorf("%w: questions must be a valid JSON document", apperrors.ErrValidationFailed)
		}
		survey.Questions = []byte(req.Questions)
	}

	if err := s.surveyStore.Update(ctx, survey); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete removes a survey definition.
func (s *SurveyService) Delete(ctx context.Context, id int64) error {
	if err := s.surveyStore.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("surveyId", id).Msg("Survey deleted")
	return nil
}

// ProgramSurveys returns the before/after surveys of a program. Mappings
// are created from the defaults on first access; repeated and concurrent
// calls see the same two mappings. An ensure failure is non-fatal: the
// read proceeds with whatever mappings already exist.
func (s *SurveyService) ProgramSurveys(ctx context.Context, programID int64) ([]dto.ProgramSurveyResponse, error) {
	if err := s.surveyStore.EnsureDefaultMappings(ctx, programID); err != nil {
		s.logger.Warn().Err(err).Int64("programId", programID).Msg("Failed to ensure default survey mappings")
	}

	mappings, err := s.surveyStore.MappingsByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProgramSurveyResponse, 0, len(mappings))
	for _, m := range mappings {
		resp := dto.ProgramSurveyResponse{
			ID:         m.ID,
			ProgramID:  m.ProgramID,
			SurveyType: m.SurveyType,
		}
		if m.Survey != nil {
			resp.Survey = toSurveyResponse(m.Survey)
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// SubmitResponse records a survey submission by marking the matching
// completion flag on the caller's registration.
func (s *SurveyService) SubmitResponse(ctx context.Context, programID, accountID int64, req *dto.SubmitSurveyRequest) error {
	if !json.Valid(req.Answers) {
		return fmt.Errorf("%w: answers must be a valid JSON document", apperrors.ErrValidationFailed)
	}

	surveyType := models.SurveyType(req.SurveyType)

	if _, err := s.attendeeStore.GetByProgramAndAccount(ctx, programID, accountID); err != nil {
		return err
	}

	if err := s.attendeeStore.SetSurveyCompleted(ctx, programID, accountID, surveyType); err != nil {
		return err
	}

	s.logger.Info().
		Int64("programId", programID).
		Int64("accountId", accountID).
		Str("surveyType", req.SurveyType).
		Msg("Survey response recorded")

	return nil
}
