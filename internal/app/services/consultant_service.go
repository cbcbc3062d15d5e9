package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/repositories"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
	"github.com/trananh/clearpath/internal/pkg/helpers"
	"github.com/trananh/clearpath/internal/pkg/validation"
)

// ConsultantService handles consultant profiles and availability
type ConsultantService struct {
	consultantRepo *repositories.ConsultantRepository
	accountRepo    *repositories.AccountRepository
	logger         zerolog.Logger
}

// NewConsultantService creates a new ConsultantService
func NewConsultantService(
	consultantRepo *repositories.ConsultantRepository,
	accountRepo *repositories.AccountRepository,
	logger zerolog.Logger,
) *ConsultantService {
	return &ConsultantService{
		consultantRepo: consultantRepo,
		accountRepo:    accountRepo,
		logger:         logger,
	}
}

func toConsultantResponse(c *models.Consultant) dto.ConsultantResponse {
	resp := dto.ConsultantResponse{
		ID:         c.ID,
		AccountID:  c.AccountID,
		Specialty:  c.Specialty,
		Bio:        c.Bio,
		IsDisabled: c.IsDisabled,
	}
	if c.Account != nil {
		resp.FullName = c.Account.FullName
	}
	return resp
}

// List retrieves consultant profiles.
func (s *ConsultantService) List(ctx context.Context, includeDisabled bool) ([]dto.ConsultantResponse, error) {
	consultants, err := s.consultantRepo.List(ctx, includeDisabled)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ConsultantResponse, 0, len(consultants))
	for _, c := range consultants {
		responses = append(responses, toConsultantResponse(c))
	}
	return responses, nil
}

// GetByID retrieves a single consultant profile.
func (s *ConsultantService) GetByID(ctx context.Context, id int64) (*dto.ConsultantResponse, error) {
	consultant, err := s.consultantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toConsultantResponse(consultant)
	return &response, nil
}

// GetByAccountID resolves the consultant profile of an account.
func (s *ConsultantService) GetByAccountID(ctx context.Context, accountID int64) (*models.Consultant, error) {
	return s.consultantRepo.GetByAccountID(ctx, accountID)
}

// Create promotes an account to consultant with a profile. The account's
// role is switched to Consultant in the same step.
func (s *ConsultantService) Create(ctx context.Context, req *dto.CreateConsultantRequest) (*dto.ConsultantResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	consultant := &models.Consultant{
		AccountID: account.ID,
		Specialty: strings.TrimSpace(req.Specialty),
		Bio:       req.Bio,
	}

	consultantID, err := s.consultantRepo.Create(ctx, consultant)
	if err != nil {
		return nil, err
	}

	role, err := s.accountRepo.GetRoleByName(ctx, string(models.RoleConsultant))
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.SetRole(ctx, account.ID, role.ID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("consultantId", consultantID).
		Int64("accountId", account.ID).
		Msg("Consultant profile created")

	return s.GetByID(ctx, consultantID)
}

// Update edits a consultant profile.
func (s *ConsultantService) Update(ctx context.Context, id int64, req *dto.UpdateConsultantRequest) (*dto.ConsultantResponse, error) {
	consultant, err := s.consultantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Specialty != nil {
		consultant.Specialty = strings.TrimSpace(*req.Specialty)
	}
	if req.Bio != nil {
		consultant.Bio = *req.Bio
	}

	if err := s.consultantRepo.Update(ctx, consultant); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// SetDisabled soft-deletes or restores a consultant profile.
func (s *ConsultantService) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	if err := s.consultantRepo.SetDisabled(ctx, id, disabled); err != nil {
		return err
	}
	s.logger.Info().Int64("consultantId", id).Bool("disabled", disabled).Msg("Consultant disabled flag updated")
	return nil
}

// AddScheduleSlot records an availability slot for a consultant.
func (s *ConsultantService) AddScheduleSlot(ctx context.Context, consultantID int64, req *dto.CreateScheduleSlotRequest) (*models.ConsultantSchedule, error) {
	if _, err := s.consultantRepo.GetByID(ctx, consultantID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}
	if !validation.IsDateInFuture(date) {
		return nil, fmt.Errorf("%w: date cannot be in the past", apperrors.ErrValidationFailed)
	}

	start, err := helpers.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime must be HH:MM", apperrors.ErrValidationFailed)
	}
	end, err := helpers.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime must be HH:MM", apperrors.ErrValidationFailed)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", apperrors.ErrValidationFailed)
	}

	slot := &models.ConsultantSchedule{
		ConsultantID: consultantID,
		Date:         date,
		StartTime:    start.String(),
		EndTime:      end.String(),
	}

	slotID, err := s.consultantRepo.AddScheduleSlot(ctx, slot)
	if err != nil {
		return nil, err
	}
	slot.ID = slotID

	s.logger.Info().
		Int64("consultantId", consultantID).
		Int64("slotId", slotID).
		Str("date", req.Date).
		Msg("Availability slot added")

	return slot, nil
}

// RemoveScheduleSlot deletes an availability slot owned by a consultant.
func (s *ConsultantService) RemoveScheduleSlot(ctx context.Context, consultantID, slotID int64) error {
	return s.consultantRepo.RemoveScheduleSlot(ctx, consultantID, slotID)
}
