package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/pkg/helpers"
)

// SlotDuration is the length of every canonical consultation window.
const SlotDuration = time.Hour

// CanonicalSlots are the seven daily consultation windows. Every weekly
// grid is laid out against these, regardless of how availability rows or
// appointment times were entered.
var CanonicalSlots = []helpers.TimeOfDay{
	{Minutes: 8 * 60},       // 08:00
	{Minutes: 9*60 + 30},    // 09:30
	{Minutes: 11 * 60},      // 11:00
	{Minutes: 13*60 + 30},   // 13:30
	{Minutes: 15 * 60},      // 15:00
	{Minutes: 16*60 + 30},   // 16:30
	{Minutes: 19 * 60},      // 19:00
}

// ScheduleStore is the availability persistence surface used by ScheduleService.
type ScheduleStore interface {
	GetByID(ctx context.Context, id int64) (*models.Consultant, error)
	SchedulesInRange(ctx context.Context, consultantID int64, from, to time.Time) ([]*models.ConsultantSchedule, error)
}

// BookingReader reads confirmed appointments for the grid overlay.
type BookingReader interface {
	ConfirmedInRange(ctx context.Context, consultantID int64, from, to time.Time) ([]*models.Appointment, error)
}

// ScheduleService renders consultant weekly schedule grids
type ScheduleService struct {
	consultantStore ScheduleStore
	bookings        BookingReader
	logger          zerolog.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(consultantStore ScheduleStore, bookings BookingReader, logger zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		consultantStore: consultantStore,
		bookings:        bookings,
		logger:          logger,
	}
}

// WeekStart returns the UTC Monday midnight of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := t.UTC().Truncate(24 * time.Hour)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// WeeklySchedule builds the 7 slots x 7 days grid for a consultant's week.
// Availability rows and appointment times are matched to a canonical slot
// by interval containment, so a row entered as 14:00 lands in the 13:30
// window instead of being dropped.
func (s *ScheduleService) WeeklySchedule(ctx context.Context, consultantID int64, anyDayOfWeek time.Time) (*dto.WeeklyScheduleResponse, error) {
	if _, err := s.consultantStore.GetByID(ctx, consultantID); err != nil {
		return nil, err
	}

	weekStart := WeekStart(anyDayOfWeek)
	weekEnd := weekStart.AddDate(0, 0, 7)

	schedules, err := s.consultantStore.SchedulesInRange(ctx, consultantID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	appointments, err := s.bookings.ConfirmedInRange(ctx, consultantID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	response := &dto.WeeklyScheduleResponse{
		ConsultantID: consultantID,
		WeekStart:    weekStart,
		Slots:        make([]dto.ScheduleSlot, len(CanonicalSlots)),
		Days:         make([]time.Time, 7),
		Cells:        make([][]dto.ScheduleCell, len(CanonicalSlots)),
	}

	for i, slot := range CanonicalSlots {
		response.Slots[i] = dto.ScheduleSlot{
			Start: slot.String(),
			End:   slot.Add(SlotDuration).String(),
		}
		response.Cells[i] = make([]dto.ScheduleCell, 7)
		for d := range response.Cells[i] {
			response.Cells[i][d] = dto.ScheduleCell{State: dto.CellUnavailable}
		}
	}
	for d := 0; d < 7; d++ {
		response.Days[d] = weekStart.AddDate(0, 0, d)
	}

	// Availability rows open their matching cells
	for _, schedule := range schedules {
		dayIndex := dayOffset(weekStart, schedule.Date)
		if dayIndex < 0 || dayIndex > 6 {
			continue
		}
		start, err := helpers.ParseTimeOfDay(schedule.StartTime)
		if err != nil {
			s.logger.Warn().
				Int64("scheduleId", schedule.ID).
				Str("startTime", schedule.StartTime).
				Msg("Skipping availability row with unparseable start time")
			continue
		}
		for i, slot := range CanonicalSlots {
			if slot.Contains(start, SlotDuration) {
				scheduleID := schedule.ID
				response.Cells[i][dayIndex] = dto.ScheduleCell{
					State:      dto.CellOpen,
					ScheduleID: &scheduleID,
				}
				break
			}
		}
	}

	// Confirmed appointments overlay their cells as booked
	for _, appointment := range appointments {
		dayIndex := dayOffset(weekStart, appointment.Date)
		if dayIndex < 0 || dayIndex > 6 {
			continue
		}
		at, err := helpers.ParseTimeOfDay(appointment.Time)
		if err != nil {
			s.logger.Warn().
				Int64("appointmentId", appointment.ID).
				Str("time", appointment.Time).
				Msg("Skipping appointment with unparseable time")
			continue
		}
		for i, slot := range CanonicalSlots {
			if slot.Contains(at, SlotDuration) {
				appointmentID := appointment.ID
				cell := dto.ScheduleCell{
					State:         dto.CellBooked,
					AppointmentID: &appointmentID,
				}
				if appointment.Account != nil {
					customer := appointment.Account.FullName
					cell.Customer = &customer
				}
				response.Cells[i][dayIndex] = cell
				break
			}
		}
	}

	return response, nil
}

// dayOffset returns how many whole days date lies after weekStart.
func dayOffset(weekStart, date time.Time) int {
	return int(date.UTC().Truncate(24 * time.Hour).Sub(weekStart).Hours() / 24)
}
