package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/app/models/dto"
	"github.com/trananh/clearpath/internal/app/repositories"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
	"github.com/trananh/clearpath/internal/pkg/auth"
	"github.com/trananh/clearpath/internal/pkg/filestorage"
	"github.com/trananh/clearpath/internal/pkg/helpers"
	"github.com/trananh/clearpath/internal/pkg/validation"
)

// AccountService handles account management operations
type AccountService struct {
	accountRepo *repositories.AccountRepository
	tokenRepo   *repositories.TokenRepository
	storage     filestorage.FileStorage
	logger      zerolog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accountRepo *repositories.AccountRepository,
	tokenRepo *repositories.TokenRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		tokenRepo:   tokenRepo,
		storage:     storage,
		logger:      logger,
	}
}

// ToAccountResponse converts an account model into its public shape.
func ToAccountResponse(account *models.Account) dto.AccountResponse {
	roleName := ""
	if account.Role != nil {
		roleName = string(account.Role.Name)
	}
	return dto.AccountResponse{
		ID:          account.ID,
		Username:    account.Username,
		Email:       account.Email,
		FullName:    account.FullName,
		DateOfBirth: account.DateOfBirth,
		RoleName:    roleName,
		AvatarURL:   account.AvatarURL,
		IsDisabled:  account.IsDisabled,
		CreatedAt:   account.CreatedAt,
	}
}

// List retrieves accounts with pagination.
func (s *AccountService) List(ctx context.Context, includeDisabled bool, page, pageSize int) (*dto.AccountListResponse, error) {
	accounts, total, err := s.accountRepo.List(ctx, includeDisabled, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, ToAccountResponse(account))
	}

	return &dto.AccountListResponse{
		Accounts:       responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetByID retrieves a single account.
func (s *AccountService) GetByID(ctx context.Context, id int64) (*dto.AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// Create provisions an account with an explicit role. Admin only.
func (s *AccountService) Create(ctx context.Context, req *dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if !validation.IsValidUsername(req.Username) {
		return nil, fmt.Errorf("%w: username must be 4-30 alphanumeric characters", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}

	role, err := s.accountRepo.GetRoleByName(ctx, req.RoleName)
	if err != nil {
		return nil, err
	}

	dateOfBirth, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, err
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

	s.logger.Info().
		Int64("accountId", accountID).
		Str("username", account.Username).
		Str("role", req.RoleName).
		Msg("Account created by admin")

	return s.GetByID(ctx, accountID)
}

// Update edits profile fields. Unset fields keep their stored values.
func (s *AccountService) Update(ctx context.Context, id int64, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if !validation.IsValidEmail(*req.Email) {
			return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
		}
		account.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.FullName != nil {
		if !validation.IsValidFullName(*req.FullName) {
			return nil, fmt.Errorf("%w: full name length is out of bounds", apperrors.ErrValidationFailed)
		}
		account.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.DateOfBirth != nil {
		dateOfBirth, err := parseDateOfBirth(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		account.DateOfBirth = dateOfBirth
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// ChangeRole moves an account to another role. The change takes effect on
// the account's next request.
func (s *AccountService) ChangeRole(ctx context.Context, id int64, roleName string) error {
	role, err := s.accountRepo.GetRoleByName(ctx, roleName)
	if err != nil {
		return err
	}

	if err := s.accountRepo.SetRole(ctx, id, role.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("accountId", id).Str("role", roleName).Msg("Account role changed")
	return nil
}

// SetDisabled soft-deletes or restores an account. Disabling also revokes
// its refresh tokens so the account cannot mint new access tokens.
func (s *AccountService) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	if err := s.accountRepo.SetDisabled(ctx, id, disabled); err != nil {
		return err
	}

	if disabled {
		if err := s.tokenRepo.RevokeAllForAccount(ctx, id); err != nil {
			return err
		}
	}

	s.logger.Info().Int64("accountId", id).Bool("disabled", disabled).Msg("Account disabled flag updated")
	return nil
}

// Delete removes an account permanently.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("accountId", id).Msg("Account deleted")
	return nil
}

// UploadAvatar stores an avatar image and records its URL.
func (s *AccountService) UploadAvatar(ctx context.Context, id int64, fileHeader *multipart.FileHeader) (*dto.AccountResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	avatarURL, err := s.storage.SaveFileWithPath(fileHeader, "avatars")
	if err != nil {
		return nil, fmt.Errorf("error saving avatar: %w", err)
	}

	if err := s.accountRepo.UpdateAvatar(ctx, id, avatarURL); err != nil {
		return nil, err
	}

	// Remove the previous avatar after the new one is recorded
	if account.AvatarURL != nil && *account.AvatarURL != "" {
		if err := s.storage.DeleteFile(*account.AvatarURL); err != nil {
			s.logger.Warn().Err(err).Int64("accountId", id).Msg("Failed to delete previous avatar")
		}
	}

	return s.GetByID(ctx, id)
}
