package dto

import "time"

// CellState classifies one (slot, day) cell of the weekly schedule grid
type CellState string

const (
	CellBooked      CellState = "booked"
	CellOpen        CellState = "open"
	CellUnavailable CellState = "unavailable"
)

// ScheduleCell is one cell of the weekly grid
type ScheduleCell struct {
	State CellState `json:"state"`
	// Customer is set only when State is booked
	Customer      *string `json:"customer,omitempty"`
	AppointmentID *int64  `json:"appointmentId,omitempty"`
	ScheduleID    *int64  `json:"scheduleId,omitempty"`
}

// ScheduleSlot is one canonical consultation window
type ScheduleSlot struct {
	Start string `json:"start" example:"08:00"`
	End   string `json:"end" example:"09:00"`
}

// WeeklyScheduleResponse is the 7 slots x 7 days grid for one consultant week
type WeeklyScheduleResponse struct {
	ConsultantID int64          `json:"consultantId"`
	WeekStart    time.Time      `json:"weekStart"`
	Slots        []ScheduleSlot `json:"slots"`
	Days         []time.Time    `json:"days"`
	// Cells[slot][day]
	Cells [][]ScheduleCell `json:"cells"`
}

// CreateScheduleSlotRequest adds an availability slot for a consultant
type CreateScheduleSlotRequest struct {
	Date      string `json:"date" binding:"required"`      // YYYY-MM-DD
	StartTime string `json:"startTime" binding:"required"` // HH:MM
	EndTime   string `json:"endTime" binding:"required"`   // HH:MM
}
