package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
	"github.com/trananh/clearpath/internal/pkg/dberrors"
)

// AttendeeRepository handles program registrations
type AttendeeRepository struct {
	db *pgxpool.Pool
}

// NewAttendeeRepository creates a new AttendeeRepository
func NewAttendeeRepository(db *pgxpool.Pool) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

// Register adds an account to a program. The (program_id, account_id) pair
// is unique, so double registration surfaces as ErrAlreadyRegistered.
func (r *AttendeeRepository) Register(ctx context.Context, programID, accountID int64) (int64, error) {
	query := `
		INSERT INTO community_program_attendees (program_id, account_id, status)
		VALUES ($1, $2, 'registered')
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query, programID, accountID).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrAlreadyRegistered
		}
		return 0, fmt.Errorf("error registering attendee: %w", err)
	}
	return id, nil
}

// Unregister removes a registration.
func (r *AttendeeRepository) Unregister(ctx context.Context, programID, accountID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM community_program_attendees WHERE program_id = $1 AND account_id = $2`,
		programID, accountID)
	if err != nil {
		return fmt.Errorf("error unregistering attendee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAttendeeNotFound
	}
	return nil
}

// GetByProgramAndAccount retrieves a single registration.
func (r *AttendeeRepository) GetByProgramAndAccount(ctx context.Context, programID, accountID int64) (*models.ProgramAttendee, error) {
	var a models.ProgramAttendee
	query := `
		SELECT id, program_id, account_id, registration_date, status,
			before_survey_completed, after_survey_completed
		FROM community_program_attendees
		WHERE program_id = $1 AND account_id = $2
	`
	err := r.db.QueryRow(ctx, query, programID, accountID).Scan(
		&a.ID, &a.ProgramID, &a.AccountID, &a.RegistrationDate, &a.Status,
		&a.BeforeSurveyCompleted, &a.AfterSurveyCompleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendeeNotFound
		}
		return nil, fmt.Errorf("error querying attendee: %w", err)
	}
	return &a, nil
}

// ListByProgram retrieves every registration of a program with account details.
func (r *AttendeeRepository) ListByProgram(ctx context.Context, programID int64) ([]*models.ProgramAttendee, error) {
	query := `
		SELECT ca.id, ca.program_id, ca.account_id, ca.registration_date, ca.status,
			ca.before_survey_completed, ca.after_survey_completed,
			a.id, a.username, a.email, a.full_name
		FROM community_program_attendees ca
		JOIN accounts a ON a.id = ca.account_id
		WHERE ca.program_id = $1
		ORDER BY ca.registration_date
	`
	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, fmt.Errorf("error querying attendees: %w", err)
	}
	defer rows.Close()

	attendees := []*models.ProgramAttendee{}
	for rows.Next() {
		var a models.ProgramAttendee
		var acc models.Account
		err := rows.Scan(
			&a.ID, &a.ProgramID, &a.AccountID, &a.RegistrationDate, &a.Status,
			&a.BeforeSurveyCompleted, &a.AfterSurveyCompleted,
			&acc.ID, &acc.Username, &acc.Email, &acc.FullName)
		if err != nil {
			return nil, fmt.Errorf("error scanning attendee row: %w", err)
		}
		a.Account = &acc
		attendees = append(attendees, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendee rows: %w", err)
	}

	return attendees, nil
}

// SetSurveyCompleted marks the before or after completion flag of a registration.
func (r *AttendeeRepository) SetSurveyCompleted(ctx context.Context, programID, accountID int64, surveyType models.SurveyType) error {
	column := "before_survey_completed"
	if surveyType == models.SurveyAfter {
		column = "after_survey_completed"
	}
	query := fmt.Sprintf(
		`UPDATE community_program_attendees SET %s = TRUE WHERE program_id = $1 AND account_id = $2`,
		column)
	tag, err := r.db.Exec(ctx, query, programID, accountID)
	if err != nil {
		return fmt.Errorf("error marking survey completion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAttendeeNotFound
	}
	return nil
}

// Recipient is one (name, email) pair for invitation fan-out
type Recipient struct {
	FullName string
	Email    string
}

// RecipientsByProgram returns the name and email of every attendee of a program.
func (r *AttendeeRepository) RecipientsByProgram(ctx context.Context, programID int64) ([]Recipient, error) {
	query := `
		SELECT a.full_name, a.email
		FROM community_program_attendees ca
		JOIN accounts a ON a.id = ca.account_id
		WHERE ca.program_id = $1 AND NOT a.is_disabled
	`
	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, fmt.Errorf("error querying recipients: %w", err)
	}
	defer rows.Close()

	recipients := []Recipient{}
	for rows.Next() {
		var rec Recipient
		if err := rows.Scan(&rec.FullName, &rec.Email); err != nil {
			return nil, fmt.Errorf("error scanning recipient row: %w", err)
		}
		recipients = append(recipients, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipient rows: %w", err)
	}

	return recipients, nil
}
