package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
)

type stubScheduleStore struct {
	consultants map[int64]*models.Consultant
	schedules   []*models.ConsultantSchedule
}

func (s *stubScheduleStore) GetByID(ctx context.Context, id int64) (*models.Consultant, error) {
	c, ok := s.consultants[id]
	if !ok {
		return nil, apperrors.ErrConsultantNotFound
	}
	return c, nil
}

func (s *stubScheduleStore) SchedulesInRange(ctx context.Context, consultantID int64, from, to time.Time) ([]*models.ConsultantSchedule, error) {
	var out []*models.ConsultantSchedule
	for _, row := range s.schedules {
		if row.ConsultantID == consultantID && !row.Date.Before(from) && row.Date.Before(to) {
			out = append(out, row)
		}
	}
	return out, nil
}

type stubBookingReader struct {
	appointments []*models.Appointment
}

func (s *stubBookingReader) ConfirmedInRange(ctx context.Context, consultantID int64, from, to time.Time) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, a := range s.appointments {
		if a.ConsultantID == consultantID && !a.Date.Before(from) && a.Date.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func newTestScheduleService() (*ScheduleService, *stubScheduleStore, *stubBookingReader) {
	store := &stubScheduleStore{
		consultants: map[int64]*models.Consultant{1: {ID: 1, AccountID: 10}},
	}
	bookings := &stubBookingReader{}
	return NewScheduleService(store, bookings, zerolog.Nop()), store, bookings
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"wednesday rewinds to monday",
			time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC),
			time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday stays",
			time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday rewinds six days",
			time.Date(2025, 6, 22, 23, 59, 0, 0, time.UTC),
			time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekStart(tc.in); !got.Equal(tc.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestWeeklyScheduleGridShape(t *testing.T) {
	svc, _, _ := newTestScheduleService()

	grid, err := svc.WeeklySchedule(context.Background(), 1, time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("WeeklySchedule returned error: %v", err)
	}

	if len(grid.Slots) != 7 {
		t.Errorf("got %d slots, want 7", len(grid.Slots))
	}
	if len(grid.Days) != 7 {
		t.Errorf("got %d days, want 7", len(grid.Days))
	}
	if len(grid.Cells) != 7 {
		t.Fatalf("got %d cell rows, want 7", len(grid.Cells))
	}
	for i, row := range grid.Cells {
		if len(row) != 7 {
			t.Fatalf("row %d has %d cells, want 7", i, len(row))
		}
		for d, cell := range row {
			if cell.State != dto.CellUnavailable {
				t.Errorf("empty grid cell [%d][%d] = %v, want unavailable", i, d, cell.State)
			}
		}
	}

	if grid.Slots[0].Start != "08:00" || grid.Slots[0].End != "09:00" {
		t.Errorf("first slot = %s-%s, want 08:00-09:00", grid.Slots[0].Start, grid.Slots[0].End)
	}
	if grid.Slots[6].Start != "19:00" {
		t.Errorf("last slot start = %s, want 19:00", grid.Slots[6].Start)
	}
}

func TestWeeklyScheduleOpensAvailabilityCells(t *testing.T) {
	svc, store, _ := newTestScheduleService()

	// Wednesday of the week starting 2025-06-16
	store.schedules = append(store.schedules, &models.ConsultantSchedule{
		ID:           5,
		ConsultantID: 1,
		Date:         time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		StartTime:    "09:30",
		EndTime:      "10:30",
	})

	grid, err := svc.WeeklySchedule(context.Background(), 1, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("WeeklySchedule returned error: %v", err)
	}

	cell := grid.Cells[1][2] // 09:30 slot, Wednesday
	if cell.State != dto.CellOpen {
		t.Fatalf("cell state = %v, want open", cell.State)
	}
	if cell.ScheduleID == nil || *cell.ScheduleID != 5 {
		t.Errorf("cell schedule id = %v, want 5", cell.ScheduleID)
	}
}

func TestWeeklyScheduleBookedBySlotContainment(t *testing.T) {
	svc, _, bookings := newTestScheduleService()

	// An appointment at 14:00 falls inside the 13:30 window even though
	// it does not start exactly on a canonical slot boundary.
	bookings.appointments = append(bookings.appointments, &models.Appointment{
		ID:           9,
		ConsultantID: 1,
		Date:         time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC),
		Time:         "14:00",
		Status:       models.AppointmentConfirmed,
		Account:      &models.Account{FullName: "Dana Smith"},
	})

	grid, err := svc.WeeklySchedule(context.Background(), 1, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("WeeklySchedule returned error: %v", err)
	}

	cell := grid.Cells[3][3] // 13:30 slot, Thursday
	if cell.State != dto.CellBooked {
		t.Fatalf("cell state = %v, want booked", cell.State)
	}
	if cell.AppointmentID == nil || *cell.AppointmentID != 9 {
		t.Errorf("cell appointment id = %v, want 9", cell.AppointmentID)
	}
	if cell.Customer == nil || *cell.Customer != "Dana Smith" {
		t.Errorf("cell customer = %v, want Dana Smith", cell.Customer)
	}
}

func TestWeeklyScheduleBookedOverridesOpen(t *testing.T) {
	svc, store, bookings := newTestScheduleService()

	day := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)
	store.schedules = append(store.schedules, &models.ConsultantSchedule{
		ID:           3,
		ConsultantID: 1,
		Date:         day,
		StartTime:    "08:00",
		EndTime:      "09:00",
	})
	bookings.appointments = append(bookings.appointments, &models.Appointment{
		ID:           4,
		ConsultantID: 1,
		Date:         day,
		Time:         "08:00",
		Status:       models.AppointmentConfirmed,
	})

	grid, err := svc.WeeklySchedule(context.Background(), 1, day)
	if err != nil {
		t.Fatalf("WeeklySchedule returned error: %v", err)
	}

	cell := grid.Cells[0][1] // 08:00 slot, Tuesday
	if cell.State != dto.CellBooked {
		t.Errorf("cell state = %v, want booked", cell.State)
	}
}

func TestWeeklyScheduleSkipsUnparseableTimes(t *testing.T) {
	svc, store, _ := newTestScheduleService()

	store.schedules = append(store.schedules, &models.ConsultantSchedule{
		ID:           8,
		ConsultantID: 1,
		Date:         time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		StartTime:    "not-a-time",
		EndTime:      "10:00",
	})

	grid, err := svc.WeeklySchedule(context.Background(), 1, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("WeeklySchedule returned error: %v", err)
	}

	for i, row := range grid.Cells {
		for d, cell := range row {
			if cell.State != dto.CellUnavailable {
				t.Errorf("cell [%d][%d] = %v, want unavailable", i, d, cell.State)
			}
		}
	}
}
