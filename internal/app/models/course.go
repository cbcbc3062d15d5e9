package models

import "time"

// Course is an e-learning course
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	IsDisabled  bool      `json:"isDisabled" db:"is_disabled"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Lessons []*Lesson `json:"lessons,omitempty"`
	Exam    *Exam     `json:"exam,omitempty"`
}

// Lesson belongs to a course, ordered by Position
type Lesson struct {
	ID       int64  `json:"id" db:"id"`
	CourseID int64  `json:"courseId" db:"course_id"`
	Title    string `json:"title" db:"title"`
	Content  string `json:"content" db:"content"`
	Position int    `json:"position" db:"position"`

	// Related entities
	Questions []*Question `json:"questions,omitempty"`
}

// Exam is a course's final assessment
type Exam struct {
	ID        int64  `json:"id" db:"id"`
	CourseID  int64  `json:"courseId" db:"course_id"`
	Title     string `json:"title" db:"title"`
	PassScore int    `json:"passScore" db:"pass_score"`

	// Related entities
	Questions []*Question `json:"questions,omitempty"`
}

// Question belongs to either an exam or a lesson quiz
type Question struct {
	ID       int64  `json:"id" db:"id"`
	ExamID   *int64 `json:"examId,omitempty" db:"exam_id"`
	LessonID *int64 `json:"lessonId,omitempty" db:"lesson_id"`
	Text     string `json:"text" db:"text"`
	Position int    `json:"position" db:"position"`

	// Related entities
	Answers []*Answer `json:"answers,omitempty"`
}

// Answer is a candidate answer for a question
type Answer struct {
	ID         int64  `json:"id" db:"id"`
	QuestionID int64  `json:"questionId" db:"question_id"`
	Text       string `json:"text" db:"text"`
	IsCorrect  bool   `json:"-" db:"is_correct"`
}

// Enrollment joins an account to a course, unique per (AccountID, CourseID)
type Enrollment struct {
	ID          int64      `json:"id" db:"id"`
	AccountID   int64      `json:"accountId" db:"account_id"`
	CourseID    int64      `json:"courseId" db:"course_id"`
	EnrolledAt  time.Time  `json:"enrolledAt" db:"enrolled_at"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`

	// Related entities
	Course *Course `json:"course,omitempty"`
}
