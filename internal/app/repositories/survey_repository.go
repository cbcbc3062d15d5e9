package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
)

// SurveyRepository handles survey definitions and program survey mappings
type SurveyRepository struct {
	db *pgxpool.Pool
}

// NewSurveyRepository creates a new SurveyRepository
func NewSurveyRepository(db *pgxpool.Pool) *SurveyRepository {
	return &SurveyRepository{db: db}
}

// GetByID retrieves a survey definition.
func (r *SurveyRepository) GetByID(ctx context.Context, id int64) (*models.Survey, error) {
	var s models.Survey
	query := `SELECT id, name, description, questions, created_at FROM surveys WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Description, &s.Questions, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSurveyNotFound
		}
		return nil, fmt.Errorf("error querying survey: %w", err)
	}
	return &s, nil
}

// List retrieves all survey definitions.
func (r *SurveyRepository) List(ctx context.Context) ([]*models.Survey, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, questions, created_at FROM surveys ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying surveys: %w", err)
	}
	defer rows.Close()

	surveys := []*models.Survey{}
	for rows.Next() {
		var s models.Survey
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Questions, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning survey row: %w", err)
		}
		surveys = append(surveys, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating survey rows: %w", err)
	}

	return surveys, nil
}

// Create inserts a survey definition and returns its id.
func (r *SurveyRepository) Create(ctx context.Context, s *models.Survey) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO surveys (name, description, questions) VALUES ($1, $2, $3) RETURNING id`,
		s.Name, s.Description, s.Questions).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting survey: %w", err)
	}
	return id, nil
}

// Update edits a survey definition.
func (r *SurveyRepository) Update(ctx context.Context, s *models.Survey) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE surveys SET name = $1, description = $2, questions = $3 WHERE id = $4`,
		s.Name, s.Description, s.Questions, s.ID)
	if err != nil {
		return fmt.Errorf("error updating survey: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSurveyNotFound
	}
	return nil
}

// Delete removes a survey definition. Mappings cascade.
func (r *SurveyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting survey: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSurveyNotFound
	}
	return nil
}

// EnsureDefaultMappings creates the before and after mappings for a program
// from the default survey definitions in one atomic statement. The unique
// index on (program_id, survey_type) plus ON CONFLICT DO NOTHING makes this
// idempotent and safe under concurrent first access.
func (r *SurveyRepository) EnsureDefaultMappings(ctx context.Context, programID int64) error {
	query := `
		INSERT INTO community_program_surveys (program_id, survey_id, survey_type)
		SELECT $1, id, default_for
		FROM surveys
		WHERE default_for IS NOT NULL
		ON CONFLICT (program_id, survey_type) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, programID)
	if err != nil {
		return fmt.Errorf("error ensuring survey mappings: %w", err)
	}
	return nil
}

// MappingsByProgram retrieves the survey mappings of a program with their definitions.
func (r *SurveyRepository) MappingsByProgram(ctx context.Context, programID int64) ([]*models.ProgramSurvey, error) {
	query := `
		SELECT ps.id, ps.program_id, ps.survey_id, ps.survey_type,
			s.id, s.name, s.description, s.questions, s.created_at
		FROM community_program_surveys ps
		JOIN surveys s ON s.id = ps.survey_id
		WHERE ps.program_id = $1
		ORDER BY ps.survey_type
	`
	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, fmt.Errorf("error querying survey mappings: %w", err)
	}
	defer rows.Close()

	mappings := []*models.ProgramSurvey{}
	for rows.Next() {
		var m models.ProgramSurvey
		var s models.Survey
		err := rows.Scan(
			&m.ID, &m.ProgramID, &m.SurveyID, &m.SurveyType,
			&s.ID, &s.Name, &s.Description, &s.Questions, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning mapping row: %w", err)
		}
		m.Survey = &s
		mappings = append(mappings, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mapping rows: %w", err)
	}

	return mappings, nil
}
