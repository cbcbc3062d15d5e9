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

// ProgramRepository handles database operations for community programs
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{db: db}
}

const programColumns = `
	id, name, type, date, description, organizer, status,
	meeting_room_id, join_link, is_disabled, created_at
`

func scanProgram(row pgx.Row) (*models.CommunityProgram, error) {
	var p models.CommunityProgram
	err := row.Scan(
		&p.ID, &p.Name, &p.Type, &p.Date, &p.Description, &p.Organizer,
		&p.Status, &p.MeetingRoomID, &p.JoinLink, &p.IsDisabled, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List retrieves programs with pagination. Disabled programs are excluded
// unless includeDisabled is set.
func (r *ProgramRepository) List(ctx context.Context, includeDisabled bool, page, pageSize int) ([]*models.CommunityProgram, int64, error) {
	query := `
		SELECT ` + programColumns + `, COUNT(*) OVER() AS total_count
		FROM community_programs
		WHERE ($1 OR NOT is_disabled)
		ORDER BY date DESC, id
		LIMIT $2 OFFSET $3
	`
	offset := (page - 1) * pageSize
	rows, err := r.db.Query(ctx, query, includeDisabled, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying programs: %w", err)
	}
	defer rows.Close()

	programs := []*models.CommunityProgram{}
	var total int64
	for rows.Next() {
		var p models.CommunityProgram
		err := rows.Scan(
			&p.ID, &p.Name, &p.Type, &p.Date, &p.Description, &p.Organizer,
			&p.Status, &p.MeetingRoomID, &p.JoinLink, &p.IsDisabled, &p.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning program row: %w", err)
		}
		programs = append(programs, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating program rows: %w", err)
	}

	return programs, total, nil
}

// GetByID retrieves a program by id, including disabled programs so admin
// views can still see soft-deleted rows.
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.CommunityProgram, error) {
	query := `SELECT ` + programColumns + ` FROM community_programs WHERE id = $1`
	p, err := scanProgram(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error querying program: %w", err)
	}
	return p, nil
}

// Create inserts a new program and returns its id.
func (r *ProgramRepository) Create(ctx context.Context, p *models.CommunityProgram) (int64, error) {
	query := `
		INSERT INTO community_programs
			(name, type, date, description, organizer, status, meeting_room_id, join_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		p.Name, p.Type, p.Date, p.Description, p.Organizer, p.Status,
		p.MeetingRoomID, p.JoinLink,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting program: %w", err)
	}
	return id, nil
}

// Update edits a program.
func (r *ProgramRepository) Update(ctx context.Context, p *models.CommunityProgram) error {
	query := `
		UPDATE community_programs
		SET name = $1, type = $2, date = $3, description = $4, organizer = $5,
			status = $6, join_link = $7
		WHERE id = $8
	`
	tag, err := r.db.Exec(ctx, query,
		p.Name, p.Type, p.Date, p.Description, p.Organizer, p.Status, p.JoinLink, p.ID)
	if err != nil {
		return fmt.Errorf("error updating program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// SetDisabled flips the soft-delete flag.
func (r *ProgramRepository) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE community_programs SET is_disabled = $1 WHERE id = $2`, disabled, id)
	if err != nil {
		return fmt.Errorf("error updating disabled flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}
	return nil
}

// RecomputeStatuses advances every program's status from its date in one
// statement. Status is a pure function of the stored date and now, so the
// sweep is idempotent and safe to re-run.
func (r *ProgramRepository) RecomputeStatuses(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE community_programs
		SET status = CASE
			WHEN date::date > $1::date THEN 'upcoming'
			WHEN date::date = $1::date THEN 'ongoing'
			ELSE 'completed'
		END
		WHERE status IS DISTINCT FROM CASE
			WHEN date::date > $1::date THEN 'upcoming'
			WHEN date::date = $1::date THEN 'ongoing'
			ELSE 'completed'
		END
	`
	tag, err := r.db.Exec(ctx, query, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("error recomputing program statuses: %w", err)
	}
	return tag.RowsAffected(), nil
}
