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
	"github.com/trananh/clearpath/internal/pkg/dberrors"
)

// ConsultantRepository handles consultants and their availability slots
type ConsultantRepository struct {
	db *pgxpool.Pool
}

// NewConsultantRepository creates a new ConsultantRepository
func NewConsultantRepository(db *pgxpool.Pool) *ConsultantRepository {
	return &ConsultantRepository{db: db}
}

// List retrieves consultant profiles with account names. Disabled profiles
// are excluded unless includeDisabled is set.
func (r *ConsultantRepository) List(ctx context.Context, includeDisabled bool) ([]*models.Consultant, error) {
	query := `
		SELECT c.id, c.account_id, c.specialty, c.bio, c.is_disabled,
			a.id, a.username, a.email, a.full_name
		FROM consultants c
		JOIN accounts a ON a.id = c.account_id
		WHERE ($1 OR NOT c.is_disabled)
		ORDER BY c.id
	`
	rows, err := r.db.Query(ctx, query, includeDisabled)
	if err != nil {
		return nil, fmt.Errorf("error querying consultants: %w", err)
	}
	defer rows.Close()

	consultants := []*models.Consultant{}
	for rows.Next() {
		var c models.Consultant
		var acc models.Account
		err := rows.Scan(
			&c.ID, &c.AccountID, &c.Specialty, &c.Bio, &c.IsDisabled,
			&acc.ID, &acc.Username, &acc.Email, &acc.FullName)
		if err != nil {
			return nil, fmt.Errorf("error scanning consultant row: %w", err)
		}
		c.Account = &acc
		consultants = append(consultants, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consultant rows: %w", err)
	}

	return consultants, nil
}

// GetByID retrieves a consultant profile by id.
func (r *ConsultantRepository) GetByID(ctx context.Context, id int64) (*models.Consultant, error) {
	var c models.Consultant
	var acc models.Account
	query := `
		SELECT c.id, c.account_id, c.specialty, c.bio, c.is_disabled,
			a.id, a.username, a.email, a.full_name
		FROM consultants c
		JOIN accounts a ON a.id = c.account_id
		WHERE c.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.AccountID, &c.Specialty, &c.Bio, &c.IsDisabled,
		&acc.ID, &acc.Username, &acc.Email, &acc.FullName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConsultantNotFound
		}
		return nil, fmt.Errorf("error querying consultant: %w", err)
	}
	c.Account = &acc
	return &c, nil
}

// GetByAccountID retrieves the consultant profile of an account.
func (r *ConsultantRepository) GetByAccountID(ctx context.Context, accountID int64) (*models.Consultant, error) {
	var c models.Consultant
	query := `SELECT id, account_id, specialty, bio, is_disabled FROM consultants WHERE account_id = $1`
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&c.ID, &c.AccountID, &c.Specialty, &c.Bio, &c.IsDisabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConsultantNotFound
		}
		return nil, fmt.Errorf("error querying consultant: %w", err)
	}
	return &c, nil
}

// Create inserts a consultant profile and returns its id.
func (r *ConsultantRepository) Create(ctx context.Context, c *models.Consultant) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO consultants (account_id, specialty, bio) VALUES ($1, $2, $3) RETURNING id`,
		c.AccountID, c.Specialty, c.Bio).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		return 0, fmt.Errorf("error inserting consultant: %w", err)
	}
	return id, nil
}

// Update edits a consultant profile.
func (r *ConsultantRepository) Update(ctx context.Context, c *models.Consultant) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE consultants SET specialty = $1, bio = $2 WHERE id = $3`,
		c.Specialty, c.Bio, c.ID)
	if err != nil {
		return fmt.Errorf("error updating consultant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConsultantNotFound
	}
	return nil
}

// SetDisabled flips the soft-delete flag.
func (r *ConsultantRepository) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE consultants SET is_disabled = $1 WHERE id = $2`, disabled, id)
	if err != nil {
		return fmt.Errorf("error updating disabled flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConsultantNotFound
	}
	return nil
}

// AddScheduleSlot inserts an availability slot and returns its id.
func (r *ConsultantRepository) AddScheduleSlot(ctx context.Context, s *models.ConsultantSchedule) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO consultant_schedules (consultant_id, date, start_time, end_time)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		s.ConsultantID, s.Date, s.StartTime, s.EndTime).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting schedule slot: %w", err)
	}
	return id, nil
}

// RemoveScheduleSlot deletes an availability slot owned by a consultant.
func (r *ConsultantRepository) RemoveScheduleSlot(ctx context.Context, consultantID, slotID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM consultant_schedules WHERE id = $1 AND consultant_id = $2`,
		slotID, consultantID)
	if err != nil {
		return fmt.Errorf("error deleting schedule slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrScheduleSlotNotFound
	}
	return nil
}

// SchedulesInRange retrieves availability slots of a consultant whose date
// falls within [from, to).
func (r *ConsultantRepository) SchedulesInRange(ctx context.Context, consultantID int64, from, to time.Time) ([]*models.ConsultantSchedule, error) {
	query := `
		SELECT id, consultant_id, date, start_time, end_time
		FROM consultant_schedules
		WHERE consultant_id = $1 AND date >= $2 AND date < $3
		ORDER BY date, start_time
	`
	rows, err := r.db.Query(ctx, query, consultantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying schedule slots: %w", err)
	}
	defer rows.Close()

	slots := []*models.ConsultantSchedule{}
	for rows.Next() {
		var s models.ConsultantSchedule
		if err := rows.Scan(&s.ID, &s.ConsultantID, &s.Date, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("error scanning schedule row: %w", err)
		}
		slots = append(slots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}

	return slots, nil
}
