package dto

import "time"

// CourseResponse is the public shape of a course
type CourseResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	IsDisabled  bool             `json:"isDisabled"`
	CreatedAt   time.Time        `json:"createdAt"`
	Lessons     []LessonResponse `json:"lessons,omitempty"`
	Exam        *ExamResponse    `json:"exam,omitempty"`
}

// CourseListResponse is a paginated course listing
type CourseListResponse struct {
	Courses        []CourseResponse `json:"courses"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}

// LessonResponse is one lesson of a course
type LessonResponse struct {
	ID       int64  `json:"id"`
	CourseID int64  `json:"courseId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

// ExamResponse is a course exam with its questions
type ExamResponse struct {
	ID        int64              `json:"id"`
	CourseID  int64              `json:"courseId"`
	Title     string             `json:"title"`
	PassScore int                `json:"passScore"`
	Questions []QuestionResponse `json:"questions,omitempty"`
}

// QuestionResponse is an exam question; correct answers are never exposed
type QuestionResponse struct {
	ID       int64            `json:"id"`
	Text     string           `json:"text"`
	Position int              `json:"position"`
	Answers  []AnswerResponse `json:"answers"`
}

// AnswerResponse is a candidate answer
type AnswerResponse struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// CreateCourseRequest creates a course
type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Description string `json:"description"`
}

// UpdateCourseRequest edits a course
type UpdateCourseRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Description *string `json:"description,omitempty"`
}

// CreateLessonRequest adds a lesson to a course
type CreateLessonRequest struct {
	Title    string `json:"title" binding:"required,min=2,max=300"`
	Content  string `json:"content" binding:"required"`
	Position int    `json:"position"`
}

// CreateExamRequest defines a course exam with its questions and answers
type CreateExamRequest struct {
	Title     string               `json:"title" binding:"required,min=2,max=300"`
	PassScore int                  `json:"passScore" binding:"required,min=1"`
	Questions []CreateExamQuestion `json:"questions" binding:"required,min=1,dive"`
}

// CreateExamQuestion is one question in an exam definition
type CreateExamQuestion struct {
	Text    string             `json:"text" binding:"required"`
	Answers []CreateExamAnswer `json:"answers" binding:"required,min=2,dive"`
}

// CreateExamAnswer is one candidate answer in an exam definition
type CreateExamAnswer struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

// SubmitExamRequest maps question ids to chosen answer ids
type SubmitExamRequest struct {
	Answers map[int64]int64 `json:"answers" binding:"required"`
}

// ExamResultResponse reports an exam attempt
type ExamResultResponse struct {
	Score     int  `json:"score"`
	PassScore int  `json:"passScore"`
	Passed    bool `json:"passed"`
}

// EnrollmentResponse is one course enrollment of an account
type EnrollmentResponse struct {
	ID          int64      `json:"id"`
	CourseID    int64      `json:"courseId"`
	CourseName  string     `json:"courseName"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
