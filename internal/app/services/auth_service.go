package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/repositories"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
	"github.com/trananh/clearpath/internal/pkg/auth"
	"github.com/trananh/clearpath/internal/pkg/email"
	"github.com/trananh/clearpath/internal/pkg/validation"
)

// AuthService handles authentication operations
type AuthService struct {
	accountRepo   *repositories.AccountRepository
	tokenRepo     *repositories.TokenRepository
	jwtService    *auth.JWTService
	emailService  email.EmailService
	resetTokenTTL time.Duration
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	accountRepo *repositories.AccountRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	resetTokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		accountRepo:   accountRepo,
		tokenRepo:     tokenRepo,
		jwtService:    jwtService,
		emailService:  emailService,
		resetTokenTTL: resetTokenTTL,
		logger:        logger,
	}
}

// validateRegistration checks the registration payload beyond binding tags.
func (s *AuthService) validateRegistration(req *dto.RegisterRequest) error {
	if !validation.IsValidUsername(req.Username) {
		return fmt.Errorf("%w: username must be 4-30 alphanumeric characters", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidEmail(req.Email) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidPassword(req.Password) {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}
	if !validation.IsValidFullName(req.FullName) {
		return fmt.Errorf("%w: full name length is out of bounds", apperrors.ErrValidationFailed)
	}
	return nil
}

// parseDateOfBirth parses an optional YYYY-MM-DD date string.
func parseDateOfBirth(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: dateOfBirth must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}
	return &parsed, nil
}

// Register creates a new Member account and returns a token pair.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	dateOfBirth, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	// Self-registered accounts always start as Member
	role, err := s.accountRepo.GetRoleByName(ctx, string(models.RoleMember))
	if err != nil {
		return nil, fmt.Errorf("error resolving member role: %w", err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Username:    req.Username,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    hashedPassword,
		FullName:    strings.TrimSpace(req.FullName),
		DateOfBirth: dateOfBirth,
		RoleID:      role.ID,
	}

	accountID, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	account.ID = accountID

	s.logger.Info().
		Int64("accountId", accountID).
		Str("username", account.Username).
		Msg("Account registered")

	return s.generateTokenResponse(ctx, account)
}

// Login authenticates by username or email.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	account, err := s.accountRepo.GetByUsernameOrEmail(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(account.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if account.IsDisabled {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.generateTokenResponse(ctx, account)
}

// RefreshToken rotates a refresh token and returns a new token pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if stored.ExpiresAt.Before(time.Now()) {
		_ = s.tokenRepo.Revoke(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	account, err := s.accountRepo.GetByID(ctx, stored.AccountID)
	if err != nil {
		return nil, err
	}
	if account.IsDisabled {
		return nil, apperrors.ErrAccountDisabled
	}

	// Revoke the old token so it cannot be replayed
	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("error revoking refresh token: %w", err)
	}

	return s.generateTokenResponse(ctx, account)
}

// Logout revokes a refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrTokenInvalid
	}
	return s.tokenRepo.Revoke(ctx, refreshToken)
}

// ForgotPassword starts the password reset flow. To avoid account
// enumeration it reports success even when the email is unknown.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddress string) error {
	account, err := s.accountRepo.GetByUsernameOrEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddress)))
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			s.logger.Info().Str("email", emailAddress).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := email.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	expiresAt := time.Now().Add(s.resetTokenTTL)
	if err := s.accountRepo.SetResetToken(ctx, account.ID, token, expiresAt); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordResetEmail(account.Email, account.FullName, token); err != nil {
		s.logger.Error().Err(err).Int64("accountId", account.ID).Msg("Failed to send password reset email")
		return fmt.Errorf("error sending reset email: %w", err)
	}

	return nil
}

// ResetPassword completes the password reset flow.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !validation.IsValidPassword(newPassword) {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}

	account, err := s.accountRepo.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.accountRepo.UpdatePassword(ctx, account.ID, hashedPassword); err != nil {
		return err
	}
	if err := s.accountRepo.ClearResetToken(ctx, account.ID); err != nil {
		return err
	}

	// Force re-login everywhere after a reset
	if err := s.tokenRepo.RevokeAllForAccount(ctx, account.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("accountId", account.ID).Msg("Password reset completed")
	return nil
}

// ChangePassword changes the caller's own password.
func (s *AuthService) ChangePassword(ctx context.Context, accountID int64, currentPassword, newPassword string) error {
	if !validation.IsValidPassword(newPassword) {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(account.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return s.accountRepo.UpdatePassword(ctx, accountID, hashedPassword)
}

// generateTokenResponse issues a token pair and stores the refresh token.
func (s *AuthService) generateTokenResponse(ctx context.Context, account *models.Account) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(
		account.ID, account.Username, account.RoleID)
	if err != nil {
		return nil, fmt.Errorf("error generating token pair: %w", err)
	}

	if err := s.tokenRepo.Create(ctx, account.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
