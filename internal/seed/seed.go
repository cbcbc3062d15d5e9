package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/trananh/clearpath/internal/app/models"
	appRepos "github.com/trananh/clearpath/internal/app/repositories"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
)

// defaultSurveyQuestions is the question document seeded into both default
// surveys. The before and after surveys share the same question set so that
// answers can be compared across the two passes.
var defaultSurveyQuestions = []map[string]interface{}{
	{"id": 1, "text": "How would you rate your current knowledge about substance abuse risks?", "type": "scale", "min": 1, "max": 5},
	{"id": 2, "text": "How confident are you in refusing substances in social situations?", "type": "scale", "min": 1, "max": 5},
	{"id": 3, "text": "What do you hope to learn from community programs like this one?", "type": "text"},
}

// CreateDefaultData seeds roles, the default admin account and the two
// default program surveys. Every step is idempotent so the seeder can run
// on each startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	accountRepo := appRepos.NewAccountRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (roles, admin, default surveys)...")
	var finalErr error

	// --- Roles --- //
	roleNames := []appModels.RoleName{
		appModels.RoleAdmin,
		appModels.RoleManager,
		appModels.RoleStaff,
		appModels.RoleConsultant,
		appModels.RoleMember,
	}
	for _, name := range roleNames {
		_, err := dbPool.Exec(ctx,
			`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, string(name))
		if err != nil {
			lgr.Error().Err(err).Str("role", string(name)).Msg("Error seeding role")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Default Admin Account --- //
	adminRole, err := accountRepo.GetRoleByName(ctx, string(appModels.RoleAdmin))
	if err != nil {
		lgr.Error().Err(err).Msg("Error looking up Admin role")
		return errors.Join(finalErr, err)
	}

	_, err = accountRepo.GetByUsernameOrEmail(ctx, "admin")
	if errors.Is(err, apperrors.ErrAccountNotFound) {
		lgr.Info().Msg("Creating default admin account...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.Account{
				Username: "admin",
				Email:    "admin@clearpath.app",
				Password: string(hashedPassword),
				FullName: "System Administrator",
				RoleID:   adminRole.ID,
			}
			adminID, err := accountRepo.Create(ctx, admin)
			if err != nil {
				lgr.Error().Err(err).Msg("Error creating default admin account")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("adminID", adminID).Msg("Default admin account created")
			}
		}
	} else if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		finalErr = errors.Join(finalErr, err)
	}

	// --- Default Surveys --- //
	if err := seedDefaultSurveys(ctx, dbPool, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

// seedDefaultSurveys creates one default survey per type. Programs pick
// these up through their default_for tag on first survey access.
func seedDefaultSurveys(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	questions, err := json.Marshal(defaultSurveyQuestions)
	if err != nil {
		return fmt.Errorf("error marshalling default survey questions: %w", err)
	}

	defaults := []struct {
		name        string
		description string
		defaultFor  appModels.SurveyType
	}{
		{
			name:        "Pre-Program Assessment",
			description: "Baseline survey completed before attending a community program.",
			defaultFor:  appModels.SurveyBefore,
		},
		{
			name:        "Post-Program Assessment",
			description: "Follow-up survey completed after attending a community program.",
			defaultFor:  appModels.SurveyAfter,
		},
	}

	var finalErr error
	for _, d := range defaults {
		tag, err := dbPool.Exec(ctx, `
			INSERT INTO surveys (name, description, questions, default_for)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (SELECT 1 FROM surveys WHERE default_for = $4)
		`, d.name, d.description, questions, string(d.defaultFor))
		if err != nil {
			lgr.Error().Err(err).Str("survey", d.name).Msg("Error seeding default survey")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if tag.RowsAffected() > 0 {
			lgr.Info().Str("survey", d.name).Str("defaultFor", string(d.defaultFor)).Msg("Default survey created")
		}
	}
	return finalErr
}
