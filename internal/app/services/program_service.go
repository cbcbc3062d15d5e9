package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/repositories"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
	"github.com/trananh/clearpath/internal/pkg/helpers"
)

// ProgramStore is the program persistence surface used by ProgramService.
type ProgramStore interface {
	List(ctx context.Context, includeDisabled bool, page, pageSize int) ([]*models.CommunityProgram, int64, error)
	GetByID(ctx context.Context, id int64) (*models.CommunityProgram, error)
	Create(ctx context.Context, p *models.CommunityProgram) (int64, error)
	Update(ctx context.Context, p *models.CommunityProgram) error
	SetDisabled(ctx context.Context, id int64, disabled bool) error
	RecomputeStatuses(ctx context.Context, now time.Time) (int64, error)
}

// AttendeeStore is the registration persistence surface used by ProgramService.
type AttendeeStore interface {
	Register(ctx context.Context, programID, accountID int64) (int64, error)
	Unregister(ctx context.Context, programID, accountID int64) error
	ListByProgram(ctx context.Context, programID int64) ([]*models.ProgramAttendee, error)
	RecipientsByProgram(ctx context.Context, programID int64) ([]repositories.Recipient, error)
}

// SurveyMapper attaches the default surveys to a program.
type SurveyMapper interface {
	EnsureDefaultMappings(ctx context.Context, programID int64) error
}

// InvitationSender delivers one program invitation.
type InvitationSender interface {
	SendProgramInvitation(toEmail, toName, programName string, programDate time.Time, meetingRoomID string) error
}

// ProgramService handles community program operations
type ProgramService struct {
	programStore  ProgramStore
	attendeeStore AttendeeStore
	surveyMapper  SurveyMapper
	mailer        InvitationSender
	logger        zerolog.Logger
}

// NewProgramService creates a new ProgramService
func NewProgramService(
	programStore ProgramStore,
	attendeeStore AttendeeStore,
	surveyMapper SurveyMapper,
	mailer InvitationSender,
	logger zerolog.Logger,
) *ProgramService {
	return &ProgramService{
		programStore:  programStore,
		attendeeStore: attendeeStore,
		surveyMapper:  surveyMapper,
		mailer:        mailer,
		logger:        logger,
	}
}

// ComputeProgramStatus derives a program's status from its date. The daily
// sweep applies the same rule in bulk.
func ComputeProgramStatus(programDate, now time.Time) models.ProgramStatus {
	programDay := programDate.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)

	switch {
	case programDay.After(today):
		return models.ProgramUpcoming
	case programDay.Equal(today):
		return models.ProgramOngoing
	default:
		return models.ProgramCompleted
	}
}

func toProgramResponse(p *models.CommunityProgram) dto.ProgramResponse {
	return dto.ProgramResponse{
		ID:            p.ID,
		Name:          p.Name,
		Type:          p.Type,
		Date:          p.Date,
		Description:   p.Description,
		Organizer:     p.Organizer,
		Status:        p.Status,
		MeetingRoomID: p.MeetingRoomID,
		JoinLink:      p.JoinLink,
		IsDisabled:    p.IsDisabled,
		CreatedAt:     p.CreatedAt,
	}
}

// List retrieves programs with pagination.
func (s *ProgramService) List(ctx context.Context, includeDisabled bool, page, pageSize int) (*dto.ProgramListResponse, error) {
	programs, total, err := s.programStore.List(ctx, includeDisabled, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProgramResponse, 0, len(programs))
	for _, p := range programs {
		responses = append(responses, toProgramResponse(p))
	}

	return &dto.ProgramListResponse{
		Programs:       responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetByID retrieves a single program.
func (s *ProgramService) GetByID(ctx context.Context, id int64) (*dto.ProgramResponse, error) {
	program, err := s.programStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toProgramResponse(program)
	return &response, nil
}

// Create adds a community program. Online and hybrid programs get a
// meeting room; every program gets the default before/after surveys.
func (s *ProgramService) Create(ctx context.Context, req *dto.CreateProgramRequest) (*dto.ProgramResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}

	now := time.Now()
	if ComputeProgramStatus(date, now) == models.ProgramCompleted {
		return nil, apperrors.ErrProgramDateInPast
	}

	program := &models.CommunityProgram{
		Name:        strings.TrimSpace(req.Name),
		Type:        models.ProgramType(req.Type),
		Date:        date,
		Description: req.Description,
		Organizer:   strings.TrimSpace(req.Organizer),
		Status:      ComputeProgramStatus(date, now),
	}

	if program.Type == models.ProgramOnline || program.Type == models.ProgramHybrid {
		roomID := uuid.New().String()
		program.MeetingRoomID = &roomID
	}
	if strings.TrimSpace(req.JoinLink) != "" {
		link := strings.TrimSpace(req.JoinLink)
		program.JoinLink = &link
	}

	programID, err := s.programStore.Create(ctx, program)
	if err != nil {
		return nil, err
	}

	// Attach the default before/after surveys. The insert is idempotent
	// and keyed on (program, survey type), so concurrent callers cannot
	// produce a duplicate mapping. A failure here is non-fatal: the
	// program row is already committed and the next surveys read retries
	// the same upsert.
	if err := s.surveyMapper.EnsureDefaultMappings(ctx, programID); err != nil {
		s.logger.Warn().Err(err).Int64("programId", programID).Msg("Failed to attach default surveys")
	}

	s.logger.Info().
		Int64("programId", programID).
		Str("name", program.Name).
		Str("type", string(program.Type)).
		Msg("Community program created")

	return s.GetByID(ctx, programID)
}

// Update edits a program. Unset fields keep their stored values.
func (s *ProgramService) Update(ctx context.Context, id int64, req *dto.UpdateProgramRequest) (*dto.ProgramResponse, error) {
	program, err := s.programStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		program.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		program.Type = models.ProgramType(*req.Type)
		// Moving online or hybrid requires a room
		if program.MeetingRoomID == nil && program.Type != models.ProgramOffline {
			roomID := uuid.New().String()
			program.MeetingRoomID = &roomID
		}
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
		}
		program.Date = date
		program.Status = ComputeProgramStatus(date, time.Now())
	}
	if req.Description != nil {
		program.Description = *req.Description
	}
	if req.Organizer != nil {
		program.Organizer = strings.TrimSpace(*req.Organizer)
	}
	if req.JoinLink != nil {
		link := strings.TrimSpace(*req.JoinLink)
		if link == "" {
			program.JoinLink = nil
		} else {
			program.JoinLink = &link
		}
	}

	if err := s.programStore.Update(ctx, program); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// SetDisabled soft-deletes or restores a program.
func (s *ProgramService) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	if err := s.programStore.SetDisabled(ctx, id, disabled); err != nil {
		return err
	}
	s.logger.Info().Int64("programId", id).Bool("disabled", disabled).Msg("Program disabled flag updated")
	return nil
}

// Register signs an account up for a program.
func (s *ProgramService) Register(ctx context.Context, programID, accountID int64) error {
	program, err := s.programStore.GetByID(ctx, programID)
	if err != nil {
		return err
	}
	if program.IsDisabled {
		return apperrors.ErrProgramNotFound
	}
	if program.Status == models.ProgramCompleted {
		return fmt.Errorf("%w: program already completed", apperrors.ErrValidationFailed)
	}

	if _, err := s.attendeeStore.Register(ctx, programID, accountID); err != nil {
		return err
	}

	s.logger.Info().Int64("programId", programID).Int64("accountId", accountID).Msg("Account registered for program")
	return nil
}

// Unregister removes an account's program registration.
func (s *ProgramService) Unregister(ctx context.Context, programID, accountID int64) error {
	return s.attendeeStore.Unregister(ctx, programID, accountID)
}

// ListAttendees retrieves a program's registrations.
func (s *ProgramService) ListAttendees(ctx context.Context, programID int64) ([]dto.AttendeeResponse, error) {
	if _, err := s.programStore.GetByID(ctx, programID); err != nil {
		return nil, err
	}

	attendees, err := s.attendeeStore.ListByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AttendeeResponse, 0, len(attendees))
	for _, a := range attendees {
		resp := dto.AttendeeResponse{
			ID:                    a.ID,
			ProgramID:             a.ProgramID,
			AccountID:             a.AccountID,
			RegistrationDate:      a.RegistrationDate,
			Status:                a.Status,
			BeforeSurveyCompleted: a.BeforeSurveyCompleted,
			AfterSurveyCompleted:  a.AfterSurveyCompleted,
		}
		if a.Account != nil {
			resp.FullName = a.Account.FullName
			resp.Email = a.Account.Email
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// SendInvitations emails every registered attendee the program's meeting
// room link. Sends run concurrently; the summary counts successes and
// failures.
func (s *ProgramService) SendInvitations(ctx context.Context, programID int64) (*dto.InvitationSummary, error) {
	program, err := s.programStore.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if program.MeetingRoomID == nil || *program.MeetingRoomID == "" {
		return nil, apperrors.ErrProgramHasNoRoom
	}

	recipients, err := s.attendeeStore.RecipientsByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	summary := &dto.InvitationSummary{Total: len(recipients)}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, recipient := range recipients {
		wg.Add(1)
		go func(r repositories.Recipient) {
			defer wg.Done()
			err := s.mailer.SendProgramInvitation(r.Email, r.FullName, program.Name, program.Date, *program.MeetingRoomID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				s.logger.Warn().Err(err).Str("email", r.Email).Int64("programId", programID).Msg("Invitation send failed")
			} else {
				summary.Sent++
			}
		}(recipient)
	}
	wg.Wait()

	s.logger.Info().
		Int64("programId", programID).
		Int("total", summary.Total).
		Int("sent", summary.Sent).
		Int("failed", summary.Failed).
		Msg("Program invitations sent")

	return summary, nil
}

// RecomputeStatuses updates every program whose derived status drifted
// from its stored status. The background sweep calls this on a timer.
func (s *ProgramService) RecomputeStatuses(ctx context.Context, now time.Time) (int64, error) {
	updated, err := s.programStore.RecomputeStatuses(ctx, now)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		s.logger.Info().Int64("updated", updated).Msg("Program statuses recomputed")
	}
	return updated, nil
}
