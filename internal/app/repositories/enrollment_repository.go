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

// EnrollmentRepository handles database operations for course enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Enroll registers an account in a course.
func (r *EnrollmentRepository) Enroll(ctx context.Context, accountID, courseID int64) (int64, error) {
	query := `INSERT INTO course_enrollments (account_id, course_id) VALUES ($1, $2) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query, accountID, courseID).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrAlreadyEnrolled
		}
		return 0, fmt.Errorf("error inserting enrollment: %w", err)
	}
	return id, nil
}

// GetByAccountAndCourse retrieves an account's enrollment in a course.
func (r *EnrollmentRepository) GetByAccountAndCourse(ctx context.Context, accountID, courseID int64) (*models.Enrollment, error) {
	query := `
		SELECT id, account_id, course_id, enrolled_at, completed_at
		FROM course_enrollments
		WHERE account_id = $1 AND course_id = $2
	`
	var e models.Enrollment
	err := r.db.QueryRow(ctx, query, accountID, courseID).
		Scan(&e.ID, &e.AccountID, &e.CourseID, &e.EnrolledAt, &e.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error querying enrollment: %w", err)
	}
	return &e, nil
}

// ListByAccount retrieves an account's enrollments with the course attached.
func (r *EnrollmentRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.account_id, e.course_id, e.enrolled_at, e.completed_at,
			c.id, c.name, c.description, c.is_disabled, c.created_at
		FROM course_enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.account_id = $1
		ORDER BY e.enrolled_at DESC
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		var e models.Enrollment
		var c models.Course
		err := rows.Scan(&e.ID, &e.AccountID, &e.CourseID, &e.EnrolledAt, &e.CompletedAt,
			&c.ID, &c.Name, &c.Description, &c.IsDisabled, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		e.Course = &c
		enrollments = append(enrollments, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}

	return enrollments, nil
}

// MarkCompleted stamps an enrollment's completion time.
func (r *EnrollmentRepository) MarkCompleted(ctx context.Context, id int64, completedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE course_enrollments SET completed_at = $1 WHERE id = $2`, completedAt, id)
	if err != nil {
		return fmt.Errorf("error updating enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}
