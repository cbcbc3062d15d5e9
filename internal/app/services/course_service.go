package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/repositories"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
	"github.com/trananh/clearpath/internal/pkg/email"
	"github.com/trananh/clearpath/internal/pkg/helpers"
)

// CourseService handles courses, lessons, exams and enrollments
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	enrollmentRepo *repositories.EnrollmentRepository
	accountRepo    *repositories.AccountRepository
	emailService   email.EmailService
	logger         zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	accountRepo *repositories.AccountRepository,
	emailService email.EmailService,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		accountRepo:    accountRepo,
		emailService:   emailService,
		logger:         logger,
	}
}

func toCourseResponse(c *models.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsDisabled:  c.IsDisabled,
		CreatedAt:   c.CreatedAt,
	}
}

func toLessonResponse(l *models.Lesson) dto.LessonResponse {
	return dto.LessonResponse{
		ID:       l.ID,
		CourseID: l.CourseID,
		Title:    l.Title,
		Content:  l.Content,
		Position: l.Position,
	}
}

// toExamResponse strips correct-answer flags from the exam shape.
func toExamResponse(e *models.Exam) dto.ExamResponse {
	resp := dto.ExamResponse{
		ID:        e.ID,
		CourseID:  e.CourseID,
		Title:     e.Title,
		PassScore: e.PassScore,
	}
	for _, q := range e.Questions {
		qr := dto.QuestionResponse{
			ID:       q.ID,
			Text:     q.Text,
			Position: q.Position,
		}
		for _, a := range q.Answers {
			qr.Answers = append(qr.Answers, dto.AnswerResponse{ID: a.ID, Text: a.Text})
		}
		resp.Questions = append(resp.Questions, qr)
	}
	return resp
}

// List retrieves courses with pagination.
func (s *CourseService) List(ctx context.Context, includeDisabled bool, page, pageSize int) (*dto.CourseListResponse, error) {
	courses, total, err := s.courseRepo.List(ctx, includeDisabled, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, toCourseResponse(c))
	}

	return &dto.CourseListResponse{
		Courses:        responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetByID retrieves a course with its lessons.
func (s *CourseService) GetByID(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lessons, err := s.courseRepo.ListLessons(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toCourseResponse(course)
	for _, l := range lessons {
		response.Lessons = append(response.Lessons, toLessonResponse(l))
	}
	return &response, nil
}

// Create creates a course.
func (s *CourseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course := &models.Course{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}

	courseID, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseId", courseID).Str("name", course.Name).Msg("Course created")
	return s.GetByID(ctx, courseID)
}

// Update edits a course.
func (s *CourseService) Update(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		course.Description = *req.Description
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// SetDisabled soft-deletes or restores a course.
func (s *CourseService) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	return s.courseRepo.SetDisabled(ctx, id, disabled)
}

// AddLesson appends a lesson to a course.
func (s *CourseService) AddLesson(ctx context.Context, courseID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		CourseID: courseID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Position: req.Position,
	}
	if lesson.Position <= 0 {
		existing, err := s.courseRepo.ListLessons(ctx, courseID)
		if err != nil {
			return nil, err
		}
		lesson.Position = len(existing) + 1
	}

	lessonID, err := s.courseRepo.CreateLesson(ctx, lesson)
	if err != nil {
		return nil, err
	}

	created, err := s.courseRepo.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	response := toLessonResponse(created)
	return &response, nil
}

// UpdateLesson edits a lesson.
func (s *CourseService) UpdateLesson(ctx context.Context, lessonID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	lesson, err := s.courseRepo.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	lesson.Title = strings.TrimSpace(req.Title)
	lesson.Content = req.Content
	if req.Position > 0 {
		lesson.Position = req.Position
	}

	if err := s.courseRepo.UpdateLesson(ctx, lesson); err != nil {
		return nil, err
	}
	response := toLessonResponse(lesson)
	return &response, nil
}

// DeleteLesson removes a lesson from its course.
func (s *CourseService) DeleteLesson(ctx context.Context, lessonID int64) error {
	return s.courseRepo.DeleteLesson(ctx, lessonID)
}

// CreateExam defines the exam for a course. Any existing exam is replaced.
func (s *CourseService) CreateExam(ctx context.Context, courseID int64, req *dto.CreateExamRequest) (*dto.ExamResponse, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	exam := &models.Exam{
		CourseID:  courseID,
		Title:     strings.TrimSpace(req.Title),
		PassScore: req.PassScore,
	}
	for _, q := range req.Questions {
		question := &models.Question{Text: strings.TrimSpace(q.Text)}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, &models.Answer{
				Text:      strings.TrimSpace(a.Text),
				IsCorrect: a.IsCorrect,
			})
		}
		exam.Questions = append(exam.Questions, question)
	}

	examID, err := s.courseRepo.CreateExam(ctx, exam)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseId", courseID).Int64("examId", examID).
		Int("questions", len(exam.Questions)).Msg("Exam created")
	return s.GetExam(ctx, courseID)
}

// GetExam retrieves a course's exam without correct-answer flags.
func (s *CourseService) GetExam(ctx context.Context, courseID int64) (*dto.ExamResponse, error) {
	exam, err := s.courseRepo.GetExamByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	response := toExamResponse(exam)
	return &response, nil
}

// Enroll registers the caller on a course.
func (s *CourseService) Enroll(ctx context.Context, accountID, courseID int64) (*dto.EnrollmentResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.IsDisabled {
		return nil, apperrors.ErrCourseNotFound
	}

	if _, err := s.enrollmentRepo.Enroll(ctx, accountID, courseID); err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.GetByAccountAndCourse(ctx, accountID, courseID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("accountId", accountID).Int64("courseId", courseID).Msg("Account enrolled in course")
	response := toEnrollmentResponse(enrollment, course.Name)
	return &response, nil
}

func toEnrollmentResponse(e *models.Enrollment, courseName string) dto.EnrollmentResponse {
	if e.Course != nil {
		courseName = e.Course.Name
	}
	return dto.EnrollmentResponse{
		ID:          e.ID,
		CourseID:    e.CourseID,
		CourseName:  courseName,
		EnrolledAt:  e.EnrolledAt,
		CompletedAt: e.CompletedAt,
	}
}

// ListEnrollments retrieves the caller's enrollments.
func (s *CourseService) ListEnrollments(ctx context.Context, accountID int64) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollmentRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		responses = append(responses, toEnrollmentResponse(e, ""))
	}
	return responses, nil
}

// SubmitExam scores an exam attempt. The score is the percentage of
// questions answered correctly; reaching the pass score completes the
// enrollment and triggers a completion email.
func (s *CourseService) SubmitExam(ctx context.Context, accountID, courseID int64, req *dto.SubmitExamRequest) (*dto.ExamResultResponse, error) {
	enrollment, err := s.enrollmentRepo.GetByAccountAndCourse(ctx, accountID, courseID)
	if err != nil {
		return nil, err
	}

	exam, err := s.courseRepo.GetExamByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if len(exam.Questions) == 0 {
		return nil, apperrors.ErrExamNotFound
	}

	correctByQuestion, err := s.courseRepo.CorrectAnswersByExam(ctx, exam.ID)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, q := range exam.Questions {
		chosen, answered := req.Answers[q.ID]
		if answered && chosen == correctByQuestion[q.ID] {
			correct++
		}
	}

	score := correct * 100 / len(exam.Questions)
	passed := score >= exam.PassScore

	result := &dto.ExamResultResponse{
		Score:     score,
		PassScore: exam.PassScore,
		Passed:    passed,
	}

	if !passed {
		s.logger.Info().Int64("accountId", accountID).Int64("courseId", courseID).
			Int("score", score).Msg("Exam attempt failed")
		return result, nil
	}

	if enrollment.CompletedAt == nil {
		if err := s.enrollmentRepo.MarkCompleted(ctx, enrollment.ID, time.Now()); err != nil {
			return nil, err
		}

		course, err := s.courseRepo.GetByID(ctx, courseID)
		if err != nil {
			return nil, err
		}
		account, err := s.accountRepo.GetByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if err := s.emailService.SendCourseCompletionEmail(account.Email, account.FullName, course.Name); err != nil {
			s.logger.Error().Err(err).Int64("accountId", accountID).Msg("Failed to send course completion email")
		}
	}

	s.logger.Info().Int64("accountId", accountID).Int64("courseId", courseID).
		Int("score", score).Msg("Exam passed")
	return result, nil
}
