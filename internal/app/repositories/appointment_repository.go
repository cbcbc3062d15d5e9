package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
)

// AppointmentRepository handles database operations for appointments
type AppointmentRepository struct {
	db *pgxpool.Pool
}

// NewAppointmentRepository creates a new AppointmentRepository
func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

const appointmentColumns = `
	id, account_id, consultant_id, date, time, duration_minutes,
	status, rejection_reason, meeting_room_id, created_at
`

func scanAppointment(row pgx.Row) (*models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(
		&a.ID, &a.AccountID, &a.ConsultantID, &a.Date, &a.Time, &a.DurationMinutes,
		&a.Status, &a.RejectionReason, &a.MeetingRoomID, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new appointment and returns its id.
func (r *AppointmentRepository) Create(ctx context.Context, a *models.Appointment) (int64, error) {
	query := `
		INSERT INTO appointments (account_id, consultant_id, date, time, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		a.AccountID, a.ConsultantID, a.Date, a.Time, a.DurationMinutes, a.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting appointment: %w", err)
	}
	return id, nil
}

// GetByID retrieves an appointment by id.
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	a, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("error querying appointment: %w", err)
	}
	return a, nil
}

// UpdateStatus sets the status of an appointment along with the optional
// rejection reason and meeting room.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status models.AppointmentStatus, rejectionReason, meetingRoomID *string) error {
	query := `
		UPDATE appointments
		SET status = $1, rejection_reason = $2, meeting_room_id = COALESCE($3, meeting_room_id)
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, status, rejectionReason, meetingRoomID, id)
	if err != nil {
		return fmt.Errorf("error updating appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Appointment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying appointments: %w", err)
	}
	defer rows.Close()

	appointments := []*models.Appointment{}
	for rows.Next() {
		var a models.Appointment
		err := rows.Scan(
			&a.ID, &a.AccountID, &a.ConsultantID, &a.Date, &a.Time, &a.DurationMinutes,
			&a.Status, &a.RejectionReason, &a.MeetingRoomID, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning appointment row: %w", err)
		}
		appointments = append(appointments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointment rows: %w", err)
	}

	return appointments, nil
}

// ListByAccount retrieves the appointments booked by an account.
func (r *AppointmentRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE account_id = $1 ORDER BY date DESC, time`
	return r.list(ctx, query, accountID)
}

// ListByConsultant retrieves the appointments assigned to a consultant.
func (r *AppointmentRepository) ListByConsultant(ctx context.Context, consultantID int64) ([]*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE consultant_id = $1 ORDER BY date DESC, time`
	return r.list(ctx, query, consultantID)
}

// ConfirmedInRange retrieves confirmed appointments of a consultant whose
// date falls within [from, to), with the customer's name attached.
func (r *AppointmentRepository) ConfirmedInRange(ctx context.Context, consultantID int64, from, to time.Time) ([]*models.Appointment, error) {
	query := `
		SELECT ap.id, ap.account_id, ap.consultant_id, ap.date, ap.time, ap.duration_minutes,
			ap.status, ap.rejection_reason, ap.meeting_room_id, ap.created_at,
			acc.id, acc.username, acc.email, acc.full_name
		FROM appointments ap
		JOIN accounts acc ON acc.id = ap.account_id
		WHERE ap.consultant_id = $1 AND ap.status = 'confirmed'
			AND ap.date >= $2 AND ap.date < $3
		ORDER BY ap.date, ap.time
	`
	rows, err := r.db.Query(ctx, query, consultantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying confirmed appointments: %w", err)
	}
	defer rows.Close()

	appointments := []*models.Appointment{}
	for rows.Next() {
		var a models.Appointment
		var acc models.Account
		err := rows.Scan(
			&a.ID, &a.AccountID, &a.ConsultantID, &a.Date, &a.Time, &a.DurationMinutes,
			&a.Status, &a.RejectionReason, &a.MeetingRoomID, &a.CreatedAt,
			&acc.ID, &acc.Username, &acc.Email, &acc.FullName)
		if err != nil {
			return nil, fmt.Errorf("error scanning appointment row: %w", err)
		}
		a.Account = &acc
		appointments = append(appointments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointment rows: %w", err)
	}

	return appointments, nil
}
