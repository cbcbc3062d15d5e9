package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
	"github.com/trananh/clearpath/internal/pkg/helpers"
	"github.com/trananh/clearpath/internal/pkg/validation"
)

// DefaultAppointmentMinutes is used when a booking omits the duration.
const DefaultAppointmentMinutes = 60

// AppointmentStore is the appointment persistence surface used by
// AppointmentService.
type AppointmentStore interface {
	Create(ctx context.Context, a *models.Appointment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status models.AppointmentStatus, rejectionReason, meetingRoomID *string) error
	ListByAccount(ctx context.Context, accountID int64) ([]*models.Appointment, error)
	ListByConsultant(ctx context.Context, consultantID int64) ([]*models.Appointment, error)
}

// ConsultantReader resolves consultant profiles for booking checks.
type ConsultantReader interface {
	GetByID(ctx context.Context, id int64) (*models.Consultant, error)
	GetByAccountID(ctx context.Context, accountID int64) (*models.Consultant, error)
}

// AppointmentService handles consultation appointment lifecycle
type AppointmentService struct {
	appointments AppointmentStore
	consultants  ConsultantReader
	logger       zerolog.Logger
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(appointments AppointmentStore, consultants ConsultantReader, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		consultants:  consultants,
		logger:       logger,
	}
}

func toAppointmentResponse(a *models.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:              a.ID,
		AccountID:       a.AccountID,
		ConsultantID:    a.ConsultantID,
		Date:            a.Date,
		Time:            a.Time,
		DurationMinutes: a.DurationMinutes,
		Status:          a.Status,
		RejectionReason: a.RejectionReason,
		MeetingRoomID:   a.MeetingRoomID,
		CreatedAt:       a.CreatedAt,
	}
}

// Book creates a pending appointment for an account.
func (s *AppointmentService) Book(ctx context.Context, accountID int64, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	consultant, err := s.consultants.GetByID(ctx, req.ConsultantID)
	if err != nil {
		return nil, err
	}
	if consultant.IsDisabled {
		return nil, apperrors.ErrConsultantNotFound
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}
	if !validation.IsDateInFuture(date) {
		return nil, apperrors.ErrAppointmentDateInPast
	}

	at, err := helpers.ParseTimeOfDay(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: time must be HH:MM", apperrors.ErrValidationFailed)
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = DefaultAppointmentMinutes
	}

	appointment := &models.Appointment{
		AccountID:       accountID,
		ConsultantID:    consultant.ID,
		Date:            date,
		Time:            at.String(),
		DurationMinutes: duration,
		Status:          models.AppointmentPending,
	}

	appointmentID, err := s.appointments.Create(ctx, appointment)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("appointmentId", appointmentID).
		Int64("accountId", accountID).
		Int64("consultantId", consultant.ID).
		Msg("Appointment booked")

	return s.getResponse(ctx, appointmentID)
}

// ListByAccount retrieves the appointments booked by an account.
func (s *AppointmentService) ListByAccount(ctx context.Context, accountID int64) ([]dto.AppointmentResponse, error) {
	appointments, err := s.appointments.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponses(appointments), nil
}

// ListForConsultantAccount retrieves the appointments assigned to the
// consultant owned by the given account.
func (s *AppointmentService) ListForConsultantAccount(ctx context.Context, accountID int64) ([]dto.AppointmentResponse, error) {
	consultant, err := s.consultants.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.ListByConsultant(ctx, consultant.ID)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponses(appointments), nil
}

func toAppointmentResponses(appointments []*models.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		responses = append(responses, toAppointmentResponse(a))
	}
	return responses
}

// Confirm moves a pending appointment to confirmed and mints its meeting
// room. Only the assigned consultant may confirm.
func (s *AppointmentService) Confirm(ctx context.Context, consultantAccountID, appointmentID int64) (*dto.AppointmentResponse, error) {
	appointment, err := s.ownedPendingAppointment(ctx, consultantAccountID, appointmentID)
	if err != nil {
		return nil, err
	}

	roomID := uuid.New().String()
	if err := s.appointments.UpdateStatus(ctx, appointment.ID, models.AppointmentConfirmed, nil, &roomID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("appointmentId", appointment.ID).
		Str("meetingRoomId", roomID).
		Msg("Appointment confirmed")

	return s.getResponse(ctx, appointment.ID)
}

// Reject moves a pending appointment to rejected with a required reason.
func (s *AppointmentService) Reject(ctx context.Context, consultantAccountID, appointmentID int64, reason string) (*dto.AppointmentResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.ErrRejectionReasonMissing
	}

	appointment, err := s.ownedPendingAppointment(ctx, consultantAccountID, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := s.appointments.UpdateStatus(ctx, appointment.ID, models.AppointmentRejected, &reason, nil); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("appointmentId", appointment.ID).Msg("Appointment rejected")
	return s.getResponse(ctx, appointment.ID)
}

// Cancel lets the booking account cancel its own pending or confirmed
// appointment.
func (s *AppointmentService) Cancel(ctx context.Context, accountID, appointmentID int64) (*dto.AppointmentResponse, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.AccountID != accountID {
		return nil, apperrors.ErrPermissionDenied
	}
	if appointment.Status != models.AppointmentPending && appointment.Status != models.AppointmentConfirmed {
		return nil, apperrors.ErrAppointmentNotPending
	}

	if err := s.appointments.UpdateStatus(ctx, appointment.ID, models.AppointmentCancelled, nil, nil); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("appointmentId", appointment.ID).Msg("Appointment cancelled")
	return s.getResponse(ctx, appointment.ID)
}

// ownedPendingAppointment loads a pending appointment and checks that the
// caller is its assigned consultant.
func (s *AppointmentService) ownedPendingAppointment(ctx context.Context, consultantAccountID, appointmentID int64) (*models.Appointment, error) {
	consultant, err := s.consultants.GetByAccountID(ctx, consultantAccountID)
	if err != nil {
		return nil, err
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.ConsultantID != consultant.ID {
		return nil, apperrors.ErrPermissionDenied
	}
	if appointment.Status != models.AppointmentPending {
		return nil, apperrors.ErrAppointmentNotPending
	}

	return appointment, nil
}

func (s *AppointmentService) getResponse(ctx context.Context, id int64) (*dto.AppointmentResponse, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toAppointmentResponse(appointment)
	return &response, nil
}
