package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/repositories"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
)

type stubProgramStore struct {
	programs map[int64]*models.CommunityProgram
	nextID   int64
}

func newStubProgramStore() *stubProgramStore {
	return &stubProgramStore{programs: map[int64]*models.CommunityProgram{}, nextID: 1}
}

func (s *stubProgramStore) List(ctx context.Context, includeDisabled bool, page, pageSize int) ([]*models.CommunityProgram, int64, error) {
	var out []*models.CommunityProgram
	for _, p := range s.programs {
		if p.IsDisabled && !includeDisabled {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (s *stubProgramStore) GetByID(ctx context.Context, id int64) (*models.CommunityProgram, error) {
	p, ok := s.programs[id]
	if !ok {
		return nil, apperrors.ErrProgramNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *stubProgramStore) Create(ctx context.Context, p *models.CommunityProgram) (int64, error) {
	id := s.nextID
	s.nextID++
	p.ID = id
	stored := *p
	s.programs[id] = &stored
	return id, nil
}

func (s *stubProgramStore) Update(ctx context.Context, p *models.CommunityProgram) error {
	if _, ok := s.programs[p.ID]; !ok {
		return apperrors.ErrProgramNotFound
	}
	stored := *p
	s.programs[p.ID] = &stored
	return nil
}

func (s *stubProgramStore) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	p, ok := s.programs[id]
	if !ok {
		return apperrors.ErrProgramNotFound
	}
	p.IsDisabled = disabled
	return nil
}

func (s *stubProgramStore) RecomputeStatuses(ctx context.Context, now time.Time) (int64, error) {
	var updated int64
	for _, p := range s.programs {
		if status := ComputeProgramStatus(p.Date, now); status != p.Status {
			p.Status = status
			updated++
		}
	}
	return updated, nil
}

type stubAttendeeStore struct {
	attendees  []*models.ProgramAttendee
	recipients []repositories.Recipient
}

func (s *stubAttendeeStore) Register(ctx context.Context, programID, accountID int64) (int64, error) {
	for _, a := range s.attendees {
		if a.ProgramID == programID && a.AccountID == accountID {
			return 0, apperrors.ErrAlreadyRegistered
		}
	}
	id := int64(len(s.attendees) + 1)
	s.attendees = append(s.attendees, &models.ProgramAttendee{ID: id, ProgramID: programID, AccountID: accountID})
	return id, nil
}

func (s *stubAttendeeStore) Unregister(ctx context.Context, programID, accountID int64) error {
	for i, a := range s.attendees {
		if a.ProgramID == programID && a.AccountID == accountID {
			s.attendees = append(s.attendees[:i], s.attendees[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAttendeeNotFound
}

func (s *stubAttendeeStore) ListByProgram(ctx context.Context, programID int64) ([]*models.ProgramAttendee, error) {
	var out []*models.ProgramAttendee
	for _, a := range s.attendees {
		if a.ProgramID == programID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAttendeeStore) RecipientsByProgram(ctx context.Context, programID int64) ([]repositories.Recipient, error) {
	return s.recipients, nil
}

type stubSurveyMapper struct {
	calls    int
	failWith error
}

func (s *stubSurveyMapper) EnsureDefaultMappings(ctx context.Context, programID int64) error {
	s.calls++
	return s.failWith
}

type stubMailer struct {
	failFor map[string]bool
	sent    []string
}

func (s *stubMailer) SendProgramInvitation(toEmail, toName, programName string, programDate time.Time, meetingRoomID string) error {
	if s.failFor[toEmail] {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, toEmail)
	return nil
}

func newTestProgramService() (*ProgramService, *stubProgramStore, *stubAttendeeStore, *stubSurveyMapper, *stubMailer) {
	programs := newStubProgramStore()
	attendees := &stubAttendeeStore{}
	mapper := &stubSurveyMapper{}
	mailer := &stubMailer{}
	svc := NewProgramService(programs, attendees, mapper, mailer, zerolog.Nop())
	return svc, programs, attendees, mapper, mailer
}

func TestComputeProgramStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		date time.Time
		want models.ProgramStatus
	}{
		{"future date is upcoming", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), models.ProgramUpcoming},
		{"same day is ongoing", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), models.ProgramOngoing},
		{"same day later hour is ongoing", time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC), models.ProgramOngoing},
		{"past date is completed", time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), models.ProgramCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeProgramStatus(tc.date, now); got != tc.want {
				t.Errorf("ComputeProgramStatus(%v) = %v, want %v", tc.date, got, tc.want)
			}
		})
	}
}

func TestCreateProgramMintsRoomForOnline(t *testing.T) {
	svc, _, _, mapper, _ := newTestProgramService()

	futureDate := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	resp, err := svc.Create(context.Background(), &dto.CreateProgramRequest{
		Name:      "Awareness Workshop",
		Type:      "online",
		Date:      futureDate,
		Organizer: "Community Center",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if resp.MeetingRoomID == nil || *resp.MeetingRoomID == "" {
		t.Error("expected online program to get a meeting room id")
	}
	if resp.Status != models.ProgramUpcoming {
		t.Errorf("status = %v, want %v", resp.Status, models.ProgramUpcoming)
	}
	if mapper.calls != 1 {
		t.Errorf("EnsureDefaultMappings called %d times, want 1", mapper.calls)
	}
}

func TestCreateProgramSurvivesMappingFailure(t *testing.T) {
	svc, programs, _, mapper, _ := newTestProgramService()
	mapper.failWith = errors.New("insert failed")

	futureDate := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	resp, err := svc.Create(context.Background(), &dto.CreateProgramRequest{
		Name:      "Awareness Workshop",
		Type:      "offline",
		Date:      futureDate,
		Organizer: "Community Center",
	})
	if err != nil {
		t.Fatalf("Create returned error despite committed program row: %v", err)
	}
	if _, ok := programs.programs[resp.ID]; !ok {
		t.Error("created program should be stored")
	}
	if mapper.calls != 1 {
		t.Errorf("EnsureDefaultMappings called %d times, want 1", mapper.calls)
	}
}

func TestCreateProgramOfflineHasNoRoom(t *testing.T) {
	svc, _, _, _, _ := newTestProgramService()

	futureDate := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	resp, err := svc.Create(context.Background(), &dto.CreateProgramRequest{
		Name:      "Street Outreach",
		Type:      "offline",
		Date:      futureDate,
		Organizer: "Community Center",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if resp.MeetingRoomID != nil {
		t.Errorf("expected offline program without meeting room, got %q", *resp.MeetingRoomID)
	}
}

func TestCreateProgramRejectsPastDate(t *testing.T) {
	svc, _, _, _, _ := newTestProgramService()

	_, err := svc.Create(context.Background(), &dto.CreateProgramRequest{
		Name:      "Old Program",
		Type:      "offline",
		Date:      "2020-01-01",
		Organizer: "Community Center",
	})
	if !errors.Is(err, apperrors.ErrProgramDateInPast) {
		t.Errorf("expected ErrProgramDateInPast, got %v", err)
	}
}

func TestRegisterRejectsCompletedProgram(t *testing.T) {
	svc, programs, _, _, _ := newTestProgramService()

	programs.programs[1] = &models.CommunityProgram{
		ID:     1,
		Name:   "Finished Program",
		Date:   time.Now().AddDate(0, 0, -2),
		Status: models.ProgramCompleted,
	}

	err := svc.Register(context.Background(), 1, 42)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}

func TestRegisterDisabledProgramLooksAbsent(t *testing.T) {
	svc, programs, _, _, _ := newTestProgramService()

	programs.programs[1] = &models.CommunityProgram{
		ID:         1,
		Date:       time.Now().AddDate(0, 0, 5),
		Status:     models.ProgramUpcoming,
		IsDisabled: true,
	}

	err := svc.Register(context.Background(), 1, 42)
	if !errors.Is(err, apperrors.ErrProgramNotFound) {
		t.Errorf("expected ErrProgramNotFound, got %v", err)
	}
}

func TestSendInvitationsCountsFailures(t *testing.T) {
	svc, programs, attendees, _, mailer := newTestProgramService()

	roomID := "room-abc"
	programs.programs[1] = &models.CommunityProgram{
		ID:            1,
		Name:          "Online Program",
		Date:          time.Now().AddDate(0, 0, 3),
		Status:        models.ProgramUpcoming,
		MeetingRoomID: &roomID,
	}
	attendees.recipients = []repositories.Recipient{
		{FullName: "Alice", Email: "alice@example.com"},
		{FullName: "Bob", Email: "bob@example.com"},
		{FullName: "Carol", Email: "carol@example.com"},
	}
	mailer.failFor = map[string]bool{"bob@example.com": true}

	summary, err := svc.SendInvitations(context.Background(), 1)
	if err != nil {
		t.Fatalf("SendInvitations returned error: %v", err)
	}
	if summary.Total != 3 || summary.Sent != 2 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want total 3, sent 2, failed 1", summary)
	}
}

func TestSendInvitationsRequiresRoom(t *testing.T) {
	svc, programs, _, _, _ := newTestProgramService()

	programs.programs[1] = &models.CommunityProgram{
		ID:     1,
		Name:   "Offline Program",
		Date:   time.Now().AddDate(0, 0, 3),
		Status: models.ProgramUpcoming,
	}

	_, err := svc.SendInvitations(context.Background(), 1)
	if !errors.Is(err, apperrors.ErrProgramHasNoRoom) {
		t.Errorf("expected ErrProgramHasNoRoom, got %v", err)
	}
}

func TestRecomputeStatusesMovesDueDates(t *testing.T) {
	svc, programs, _, _, _ := newTestProgramService()

	programs.programs[1] = &models.CommunityProgram{
		ID:     1,
		Date:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Status: models.ProgramUpcoming,
	}
	programs.programs[2] = &models.CommunityProgram{
		ID:     2,
		Date:   time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Status: models.ProgramUpcoming,
	}

	updated, err := svc.RecomputeStatuses(context.Background(), time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RecomputeStatuses returned error: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
	if programs.programs[1].Status != models.ProgramOngoing {
		t.Errorf("program 1 status = %v, want %v", programs.programs[1].Status, models.ProgramOngoing)
	}
	if programs.programs[2].Status != models.ProgramUpcoming {
		t.Errorf("program 2 status = %v, want %v", programs.programs[2].Status, models.ProgramUpcoming)
	}
}

func TestDisabledProgramHiddenFromListButFetchable(t *testing.T) {
	svc, programs, _, _, _ := newTestProgramService()
	programs.programs[1] = &models.CommunityProgram{
		ID:         1,
		Name:       "Retired workshop",
		Date:       time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Status:     models.ProgramUpcoming,
		IsDisabled: true,
	}

	list, err := svc.List(context.Background(), false, 1, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list.Programs) != 0 {
		t.Errorf("active list has %d programs, want 0", len(list.Programs))
	}

	withDisabled, err := svc.List(context.Background(), true, 1, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(withDisabled.Programs) != 1 {
		t.Errorf("full list has %d programs, want 1", len(withDisabled.Programs))
	}

	got, err := svc.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if !got.IsDisabled {
		t.Error("GetByID should still return the disabled program")
	}
}
