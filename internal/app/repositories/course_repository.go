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

// CourseRepository handles database operations for courses, lessons and exams
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// List retrieves courses with pagination. Disabled courses are only
// included when includeDisabled is true.
func (r *CourseRepository) List(ctx context.Context, includeDisabled bool, page, pageSize int) ([]*models.Course, int64, error) {
	offset := (page - 1) * pageSize

	query := `
		SELECT id, name, description, is_disabled, created_at,
			COUNT(*) OVER() AS total_count
		FROM courses
		WHERE ($1 OR is_disabled = false)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, includeDisabled, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	var total int64
	for rows.Next() {
		var c models.Course
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsDisabled, &c.CreatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, total, nil
}

// GetByID retrieves a course by id.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT id, name, description, is_disabled, created_at FROM courses WHERE id = $1`
	var c models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.IsDisabled, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error querying course: %w", err)
	}
	return &c, nil
}

// Create inserts a new course and returns its id.
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) (int64, error) {
	query := `INSERT INTO courses (name, description) VALUES ($1, $2) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query, c.Name, c.Description).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting course: %w", err)
	}
	return id, nil
}

// Update modifies a course's name and description.
func (r *CourseRepository) Update(ctx context.Context, c *models.Course) error {
	tag, err := r.db.Exec(ctx, `UPDATE courses SET name = $1, description = $2 WHERE id = $3`,
		c.Name, c.Description, c.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// SetDisabled toggles a course's disabled flag.
func (r *CourseRepository) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE courses SET is_disabled = $1 WHERE id = $2`, disabled, id)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// ListLessons retrieves a course's lessons ordered by position.
func (r *CourseRepository) ListLessons(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	query := `SELECT id, course_id, title, content, position FROM lessons WHERE course_id = $1 ORDER BY position`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error querying lessons: %w", err)
	}
	defer rows.Close()

	lessons := []*models.Lesson{}
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Content, &l.Position); err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		lessons = append(lessons, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lesson rows: %w", err)
	}

	return lessons, nil
}

// GetLesson retrieves a lesson by id.
func (r *CourseRepository) GetLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	query := `SELECT id, course_id, title, content, position FROM lessons WHERE id = $1`
	var l models.Lesson
	err := r.db.QueryRow(ctx, query, id).Scan(&l.ID, &l.CourseID, &l.Title, &l.Content, &l.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, fmt.Errorf("error querying lesson: %w", err)
	}
	return &l, nil
}

// CreateLesson inserts a lesson and returns its id.
func (r *CourseRepository) CreateLesson(ctx context.Context, l *models.Lesson) (int64, error) {
	query := `INSERT INTO lessons (course_id, title, content, position) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query, l.CourseID, l.Title, l.Content, l.Position).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting lesson: %w", err)
	}
	return id, nil
}

// UpdateLesson modifies a lesson's title, content and position.
func (r *CourseRepository) UpdateLesson(ctx context.Context, l *models.Lesson) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE lessons SET title = $1, content = $2, position = $3 WHERE id = $4`,
		l.Title, l.Content, l.Position, l.ID)
	if err != nil {
		return fmt.Errorf("error updating lesson: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}
	return nil
}

// DeleteLesson removes a lesson.
func (r *CourseRepository) DeleteLesson(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}
	return nil
}

// CreateExam inserts an exam together with its questions and answers in a
// single transaction. Any existing exam for the course is replaced.
func (r *CourseRepository) CreateExam(ctx context.Context, exam *models.Exam) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM exams WHERE course_id = $1`, exam.CourseID)
	if err != nil {
		return 0, fmt.Errorf("error removing previous exam: %w", err)
	}

	var examID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO exams (course_id, title, pass_score) VALUES ($1, $2, $3) RETURNING id`,
		exam.CourseID, exam.Title, exam.PassScore).Scan(&examID)
	if err != nil {
		return 0, fmt.Errorf("error inserting exam: %w", err)
	}

	for i, q := range exam.Questions {
		var questionID int64
		err = tx.QueryRow(ctx,
			`INSERT INTO exam_questions (exam_id, text, position) VALUES ($1, $2, $3) RETURNING id`,
			examID, q.Text, i+1).Scan(&questionID)
		if err != nil {
			return 0, fmt.Errorf("error inserting exam question: %w", err)
		}
		for _, a := range q.Answers {
			_, err = tx.Exec(ctx,
				`INSERT INTO exam_answers (question_id, text, is_correct) VALUES ($1, $2, $3)`,
				questionID, a.Text, a.IsCorrect)
			if err != nil {
				return 0, fmt.Errorf("error inserting exam answer: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing exam transaction: %w", err)
	}
	return examID, nil
}

// GetExamByCourse retrieves a course's exam with its questions and answers.
func (r *CourseRepository) GetExamByCourse(ctx context.Context, courseID int64) (*models.Exam, error) {
	var exam models.Exam
	err := r.db.QueryRow(ctx,
		`SELECT id, course_id, title, pass_score FROM exams WHERE course_id = $1`, courseID).
		Scan(&exam.ID, &exam.CourseID, &exam.Title, &exam.PassScore)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		return nil, fmt.Errorf("error querying exam: %w", err)
	}

	query := `
		SELECT q.id, q.exam_id, q.text, q.position,
			a.id, a.question_id, a.text, a.is_correct
		FROM exam_questions q
		JOIN exam_answers a ON a.question_id = q.id
		WHERE q.exam_id = $1
		ORDER BY q.position, a.id
	`
	rows, err := r.db.Query(ctx, query, exam.ID)
	if err != nil {
		return nil, fmt.Errorf("error querying exam questions: %w", err)
	}
	defer rows.Close()

	byID := map[int64]*models.Question{}
	for rows.Next() {
		var q models.Question
		var a models.Answer
		err := rows.Scan(&q.ID, &q.ExamID, &q.Text, &q.Position,
			&a.ID, &a.QuestionID, &a.Text, &a.IsCorrect)
		if err != nil {
			return nil, fmt.Errorf("error scanning exam question row: %w", err)
		}
		existing, ok := byID[q.ID]
		if !ok {
			existing = &q
			byID[q.ID] = existing
			exam.Questions = append(exam.Questions, existing)
		}
		existing.Answers = append(existing.Answers, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exam question rows: %w", err)
	}

	return &exam, nil
}

// CorrectAnswersByExam returns the correct answer id for every question of
// an exam, keyed by question id.
func (r *CourseRepository) CorrectAnswersByExam(ctx context.Context, examID int64) (map[int64]int64, error) {
	query := `
		SELECT q.id, a.id
		FROM exam_questions q
		JOIN exam_answers a ON a.question_id = q.id AND a.is_correct = true
		WHERE q.exam_id = $1
	`
	rows, err := r.db.Query(ctx, query, examID)
	if err != nil {
		return nil, fmt.Errorf("error querying correct answers: %w", err)
	}
	defer rows.Close()

	correct := map[int64]int64{}
	for rows.Next() {
		var questionID, answerID int64
		if err := rows.Scan(&questionID, &answerID); err != nil {
			return nil, fmt.Errorf("error scanning correct answer row: %w", err)
		}
		correct[questionID] = answerID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating correct answer rows: %w", err)
	}

	return correct, nil
}
