package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
)

type stubAppointmentStore struct {
	appointments map[int64]*models.Appointment
	nextID       int64
}

func newStubAppointmentStore() *stubAppointmentStore {
	return &stubAppointmentStore{appointments: map[int64]*models.Appointment{}, nextID: 1}
}

func (s *stubAppointmentStore) Create(ctx context.Context, a *models.Appointment) (int64, error) {
	id := s.nextID
	s.nextID++
	a.ID = id
	stored := *a
	s.appointments[id] = &stored
	return id, nil
}

func (s *stubAppointmentStore) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	a, ok := s.appointments[id]
	if !ok {
		return nil, apperrors.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *stubAppointmentStore) UpdateStatus(ctx context.Context, id int64, status models.AppointmentStatus, rejectionReason, meetingRoomID *string) error {
	a, ok := s.appointments[id]
	if !ok {
		return apperrors.ErrAppointmentNotFound
	}
	a.Status = status
	a.RejectionReason = rejectionReason
	if meetingRoomID != nil {
		a.MeetingRoomID = meetingRoomID
	}
	return nil
}

func (s *stubAppointmentStore) ListByAccount(ctx context.Context, accountID int64) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, a := range s.appointments {
		if a.AccountID == accountID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAppointmentStore) ListByConsultant(ctx context.Context, consultantID int64) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, a := range s.appointments {
		if a.ConsultantID == consultantID {
			out = append(out, a)
		}
	}
	return out, nil
}

type stubConsultantReader struct {
	consultants map[int64]*models.Consultant
}

func (s *stubConsultantReader) GetByID(ctx context.Context, id int64) (*models.Consultant, error) {
	c, ok := s.consultants[id]
	if !ok {
		return nil, apperrors.ErrConsultantNotFound
	}
	return c, nil
}

func (s *stubConsultantReader) GetByAccountID(ctx context.Context, accountID int64) (*models.Consultant, error) {
	for _, c := range s.consultants {
		if c.AccountID == accountID {
			return c, nil
		}
	}
	return nil, apperrors.ErrConsultantNotFound
}

func newTestAppointmentService() (*AppointmentService, *stubAppointmentStore, *stubConsultantReader) {
	store := newStubAppointmentStore()
	consultants := &stubConsultantReader{
		consultants: map[int64]*models.Consultant{
			1: {ID: 1, AccountID: 100, Specialty: "Addiction counseling"},
		},
	}
	return NewAppointmentService(store, consultants, zerolog.Nop()), store, consultants
}

func futureDateString() string {
	return time.Now().AddDate(0, 0, 3).Format("2006-01-02")
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	svc, _, _ := newTestAppointmentService()

	resp, err := svc.Book(context.Background(), 42, &dto.BookAppointmentRequest{
		ConsultantID: 1,
		Date:         futureDateString(),
		Time:         "09:30",
	})
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if resp.Status != models.AppointmentPending {
		t.Errorf("status = %v, want pending", resp.Status)
	}
	if resp.DurationMinutes != DefaultAppointmentMinutes {
		t.Errorf("duration = %d, want %d", resp.DurationMinutes, DefaultAppointmentMinutes)
	}
	if resp.MeetingRoomID != nil {
		t.Error("pending appointment must not have a meeting room yet")
	}
}

func TestBookRejectsPastDate(t *testing.T) {
	svc, _, _ := newTestAppointmentService()

	_, err := svc.Book(context.Background(), 42, &dto.BookAppointmentRequest{
		ConsultantID: 1,
		Date:         "2020-01-01",
		Time:         "09:30",
	})
	if !errors.Is(err, apperrors.ErrAppointmentDateInPast) {
		t.Errorf("expected ErrAppointmentDateInPast, got %v", err)
	}
}

func TestBookRejectsDisabledConsultant(t *testing.T) {
	svc, _, consultants := newTestAppointmentService()
	consultants.consultants[1].IsDisabled = true

	_, err := svc.Book(context.Background(), 42, &dto.BookAppointmentRequest{
		ConsultantID: 1,
		Date:         futureDateString(),
		Time:         "09:30",
	})
	if !errors.Is(err, apperrors.ErrConsultantNotFound) {
		t.Errorf("expected ErrConsultantNotFound, got %v", err)
	}
}

func TestConfirmMintsMeetingRoom(t *testing.T) {
	svc, store, _ := newTestAppointmentService()
	store.appointments[1] = &models.Appointment{
		ID: 1, AccountID: 42, ConsultantID: 1, Status: models.AppointmentPending,
	}

	resp, err := svc.Confirm(context.Background(), 100, 1)
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if resp.Status != models.AppointmentConfirmed {
		t.Errorf("status = %v, want confirmed", resp.Status)
	}
	if resp.MeetingRoomID == nil || *resp.MeetingRoomID == "" {
		t.Error("confirmed appointment must have a meeting room id")
	}
}

func TestConfirmByWrongConsultantDenied(t *testing.T) {
	svc, store, consultants := newTestAppointmentService()
	consultants.consultants[2] = &models.Consultant{ID: 2, AccountID: 200}
	store.appointments[1] = &models.Appointment{
		ID: 1, AccountID: 42, ConsultantID: 1, Status: models.AppointmentPending,
	}

	_, err := svc.Confirm(context.Background(), 200, 1)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestConfirmNonPendingRejected(t *testing.T) {
	svc, store, _ := newTestAppointmentService()
	store.appointments[1] = &models.Appointment{
		ID: 1, AccountID: 42, ConsultantID: 1, Status: models.AppointmentCancelled,
	}

	_, err := svc.Confirm(context.Background(), 100, 1)
	if !errors.Is(err, apperrors.ErrAppointmentNotPending) {
		t.Errorf("expected ErrAppointmentNotPending, got %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	svc, store, _ := newTestAppointmentService()
	store.appointments[1] = &models.Appointment{
		ID: 1, AccountID: 42, ConsultantID: 1, Status: models.AppointmentPending,
	}

	_, err := svc.Reject(context.Background(), 100, 1, "   ")
	if !errors.Is(err, apperrors.ErrRejectionReasonMissing) {
		t.Errorf("expected ErrRejectionReasonMissing, got %v", err)
	}
}

func TestRejectStoresReason(t *testing.T) {
	svc, store, _ := newTestAppointmentService()
	store.appointments[1] = &models.Appointment{
		ID: 1, AccountID: 42, ConsultantID: 1, Status: models.AppointmentPending,
	}

	resp, err := svc.Reject(context.Background(), 100, 1, "Fully booked that day")
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if resp.Status != models.AppointmentRejected {
		t.Errorf("status = %v, want rejected", resp.Status)
	}
	if resp.RejectionReason == nil || *resp.RejectionReason != "Fully booked that day" {
		t.Errorf("rejection reason = %v, want stored reason", resp.RejectionReason)
	}
}

func TestCancelByOwner(t *testing.T) {
	svc, store, _ := newTestAppointmentService()
	store.appointments[1] = &models.Appointment{
		ID: 1, AccountID: 42, ConsultantID: 1, Status: models.AppointmentConfirmed,
	}

	resp, err := svc.Cancel(context.Background(), 42, 1)
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if resp.Status != models.AppointmentCancelled {
		t.Errorf("status = %v, want cancelled", resp.Status)
	}
}

func TestCancelByNonOwnerDenied(t *testing.T) {
	svc, store, _ := newTestAppointmentService()
	store.appointments[1] = &models.Appointment{
		ID: 1, AccountID: 42, ConsultantID: 1, Status: models.AppointmentPending,
	}

	_, err := svc.Cancel(context.Background(), 43, 1)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestCancelRejectedAppointmentFails(t *testing.T) {
	svc, store, _ := newTestAppointmentService()
	store.appointments[1] = &models.Appointment{
		ID: 1, AccountID: 42, ConsultantID: 1, Status: models.AppointmentRejected,
	}

	_, err := svc.Cancel(context.Background(), 42, 1)
	if !errors.Is(err, apperrors.ErrAppointmentNotPending) {
		t.Errorf("expected ErrAppointmentNotPending, got %v", err)
	}
}
