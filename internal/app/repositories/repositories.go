package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository for dependency injection
type Repositories struct {
	AccountRepository     *AccountRepository
	TokenRepository       *TokenRepository
	ProgramRepository     *ProgramRepository
	AttendeeRepository    *AttendeeRepository
	SurveyRepository      *SurveyRepository
	ConsultantRepository  *ConsultantRepository
	AppointmentRepository *AppointmentRepository
	ArticleRepository     *ArticleRepository
	CourseRepository      *CourseRepository
	EnrollmentRepository  *EnrollmentRepository
}

// NewRepositories creates the repository container
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AccountRepository:     NewAccountRepository(db),
		TokenRepository:       NewTokenRepository(db),
		ProgramRepository:     NewProgramRepository(db),
		AttendeeRepository:    NewAttendeeRepository(db),
		SurveyRepository:      NewSurveyRepository(db),
		ConsultantRepository:  NewConsultantRepository(db),
		AppointmentRepository: NewAppointmentRepository(db),
		ArticleRepository:     NewArticleRepository(db),
		CourseRepository:      NewCourseRepository(db),
		EnrollmentRepository:  NewEnrollmentRepository(db),
	}
}
