package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/repositories"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
	"github.com/trananh/clearpath/internal/pkg/auth"
)

// MeetingService issues room-scoped tokens for video calls. A token is
// granted only when the caller belongs to the room: registered attendee
// of an online program, or a party of a confirmed appointment.
type MeetingService struct {
	programRepo     *repositories.ProgramRepository
	attendeeRepo    *repositories.AttendeeRepository
	appointmentRepo *repositories.AppointmentRepository
	consultantRepo  *repositories.ConsultantRepository
	jwtService      *auth.JWTService
	roomTokenTTL    time.Duration
	logger          zerolog.Logger
}

// NewMeetingService creates a new MeetingService
func NewMeetingService(
	programRepo *repositories.ProgramRepository,
	attendeeRepo *repositories.AttendeeRepository,
	appointmentRepo *repositories.AppointmentRepository,
	consultantRepo *repositories.ConsultantRepository,
	jwtService *auth.JWTService,
	roomTokenTTL time.Duration,
	logger zerolog.Logger,
) *MeetingService {
	return &MeetingService{
		programRepo:     programRepo,
		attendeeRepo:    attendeeRepo,
		appointmentRepo: appointmentRepo,
		consultantRepo:  consultantRepo,
		jwtService:      jwtService,
		roomTokenTTL:    roomTokenTTL,
		logger:          logger,
	}
}

// IssueToken returns a signed token for the room named by the request.
// Exactly one of ProgramID and AppointmentID must be set.
func (s *MeetingService) IssueToken(ctx context.Context, accountID int64, req *dto.MeetingTokenRequest) (*dto.MeetingTokenResponse, error) {
	switch {
	case req.ProgramID != nil && req.AppointmentID == nil:
		return s.programToken(ctx, accountID, *req.ProgramID)
	case req.AppointmentID != nil && req.ProgramID == nil:
		return s.appointmentToken(ctx, accountID, *req.AppointmentID)
	default:
		return nil, fmt.Errorf("%w: exactly one of programId and appointmentId is required", apperrors.ErrValidationFailed)
	}
}

func (s *MeetingService) programToken(ctx context.Context, accountID, programID int64) (*dto.MeetingTokenResponse, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if program.MeetingRoomID == nil || *program.MeetingRoomID == "" {
		return nil, apperrors.ErrProgramHasNoRoom
	}

	if _, err := s.attendeeRepo.GetByProgramAndAccount(ctx, programID, accountID); err != nil {
		if errors.Is(err, apperrors.ErrAttendeeNotFound) {
			return nil, apperrors.ErrPermissionDenied
		}
		return nil, err
	}

	return s.signToken(accountID, *program.MeetingRoomID)
}

func (s *MeetingService) appointmentToken(ctx context.Context, accountID, appointmentID int64) (*dto.MeetingTokenResponse, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.Status != models.AppointmentConfirmed {
		return nil, apperrors.ErrAppointmentNotPending
	}
	if appointment.MeetingRoomID == nil || *appointment.MeetingRoomID == "" {
		return nil, apperrors.ErrProgramHasNoRoom
	}

	if appointment.AccountID != accountID {
		consultant, err := s.consultantRepo.GetByAccountID(ctx, accountID)
		if err != nil || consultant.ID != appointment.ConsultantID {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	return s.signToken(accountID, *appointment.MeetingRoomID)
}

func (s *MeetingService) signToken(accountID int64, roomID string) (*dto.MeetingTokenResponse, error) {
	token, err := s.jwtService.GenerateRoomToken(accountID, roomID, s.roomTokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("accountId", accountID).Str("roomId", roomID).Msg("Meeting room token issued")
	return &dto.MeetingTokenResponse{
		RoomID:    roomID,
		Token:     token,
		ExpiresIn: int(s.roomTokenTTL.Seconds()),
	}, nil
}
