package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/trananh/clearpath/internal/app/controllers"
	appMigrations "github.com/trananh/clearpath/internal/app/migrations"
	appRepos "github.com/trananh/clearpath/internal/app/repositories"
	appRoutes "github.com/trananh/clearpath/internal/app/routes"
	appServices "github.com/trananh/clearpath/internal/app/services"
	"github.com/trananh/clearpath/internal/config"
	"github.com/trananh/clearpath/internal/db"
	appMiddleware "github.com/trananh/clearpath/internal/middleware"
	pkgAuth "github.com/trananh/clearpath/internal/pkg/auth"
	"github.com/trananh/clearpath/internal/pkg/email"
	"github.com/trananh/clearpath/internal/pkg/filestorage"
	"github.com/trananh/clearpath/internal/pkg/helpers"
	"github.com/trananh/clearpath/internal/pkg/logger"
	"github.com/trananh/clearpath/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           *appServices.AuthService
	AccountService        *appServices.AccountService
	ProgramService        *appServices.ProgramService
	SurveyService         *appServices.SurveyService
	ConsultantService     *appServices.ConsultantService
	ScheduleService       *appServices.ScheduleService
	AppointmentService    *appServices.AppointmentService
	ArticleService        *appServices.ArticleService
	CourseService         *appServices.CourseService
	MeetingService        *appServices.MeetingService
	AuthController        *appControllers.AuthController
	AccountController     *appControllers.AccountController
	ProgramController     *appControllers.ProgramController
	SurveyController      *appControllers.SurveyController
	ConsultantController  *appControllers.ConsultantController
	AppointmentController *appControllers.AppointmentController
	ArticleController     *appControllers.ArticleController
	CourseController      *appControllers.CourseController
	MeetingController     *appControllers.MeetingController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	EmailService          email.EmailService
	Logger                zerolog.Logger
	FileStorage           *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   baseURL,
	}, lgr)

	resetTokenTTL := time.Duration(cfg.SMTP.ResetTokenMinutes) * time.Minute
	roomTokenTTL := helpers.ParseDuration(cfg.JWT.RoomTokenExpiration, 2*time.Hour)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.AccountRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		deps.EmailService,
		resetTokenTTL,
		lgr,
	)
	deps.AccountService = appServices.NewAccountService(
		deps.Repos.AccountRepository,
		deps.Repos.TokenRepository,
		deps.FileStorage,
		lgr,
	)
	deps.ProgramService = appServices.NewProgramService(
		deps.Repos.ProgramRepository,
		deps.Repos.AttendeeRepository,
		deps.Repos.SurveyRepository,
		deps.EmailService,
		lgr,
	)
	deps.SurveyService = appServices.NewSurveyService(
		deps.Repos.SurveyRepository,
		deps.Repos.AttendeeRepository,
		lgr,
	)
	deps.ConsultantService = appServices.NewConsultantService(
		deps.Repos.ConsultantRepository,
		deps.Repos.AccountRepository,
		lgr,
	)
	deps.ScheduleService = appServices.NewScheduleService(
		deps.Repos.ConsultantRepository,
		deps.Repos.AppointmentRepository,
		lgr,
	)
	deps.AppointmentService = appServices.NewAppointmentService(
		deps.Repos.AppointmentRepository,
		deps.Repos.ConsultantRepository,
		lgr,
	)
	deps.ArticleService = appServices.NewArticleService(deps.Repos.ArticleRepository, lgr)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.AccountRepository,
		deps.EmailService,
		lgr,
	)
	deps.MeetingService = appServices.NewMeetingService(
		deps.Repos.ProgramRepository,
		deps.Repos.AttendeeRepository,
		deps.Repos.AppointmentRepository,
		deps.Repos.ConsultantRepository,
		deps.JWTService,
		roomTokenTTL,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.AccountRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.AccountController = appControllers.NewAccountController(deps.AccountService, lgr)
	deps.ProgramController = appControllers.NewProgramController(deps.ProgramService, lgr)
	deps.SurveyController = appControllers.NewSurveyController(deps.SurveyService, lgr)
	deps.ConsultantController = appControllers.NewConsultantController(deps.ConsultantService, deps.ScheduleService, lgr)
	deps.AppointmentController = appControllers.NewAppointmentController(deps.AppointmentService, lgr)
	deps.ArticleController = appControllers.NewArticleController(deps.ArticleService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, lgr)
	deps.MeetingController = appControllers.NewMeetingController(deps.MeetingService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AccountController,
		deps.ProgramController,
		deps.SurveyController,
		deps.ConsultantController,
		deps.AppointmentController,
		deps.ArticleController,
		deps.CourseController,
		deps.MeetingController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
