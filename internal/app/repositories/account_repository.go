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

// AccountRepository handles database operations for accounts and roles
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `
	a.id, a.username, a.email, a.password, a.full_name, a.date_of_birth,
	a.role_id, a.avatar_url, a.is_disabled, a.created_at,
	a.reset_token, a.reset_token_expires_at, r.name
`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var acc models.Account
	var roleName models.RoleName
	err := row.Scan(
		&acc.ID, &acc.Username, &acc.Email, &acc.Password, &acc.FullName,
		&acc.DateOfBirth, &acc.RoleID, &acc.AvatarURL, &acc.IsDisabled,
		&acc.CreatedAt, &acc.ResetToken, &acc.ResetTokenExpiresAt, &roleName,
	)
	if err != nil {
		return nil, err
	}
	acc.Role = &models.Role{ID: acc.RoleID, Name: roleName}
	return &acc, nil
}

// GetByID retrieves an account by id, including disabled accounts.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		JOIN roles r ON r.id = a.role_id
		WHERE a.id = $1
	`
	acc, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error querying account: %w", err)
	}
	return acc, nil
}

// GetByUsernameOrEmail retrieves an account by username or email for login.
func (r *AccountRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		JOIN roles r ON r.id = a.role_id
		WHERE a.username = $1 OR a.email = $1
	`
	acc, err := scanAccount(r.db.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error querying account: %w", err)
	}
	return acc, nil
}

// List retrieves accounts with pagination. Disabled accounts are excluded
// unless includeDisabled is set.
func (r *AccountRepository) List(ctx context.Context, includeDisabled bool, page, pageSize int) ([]*models.Account, int64, error) {
	query := `
		SELECT ` + accountColumns + `, COUNT(*) OVER() AS total_count
		FROM accounts a
		JOIN roles r ON r.id = a.role_id
		WHERE ($1 OR NOT a.is_disabled)
		ORDER BY a.id
		LIMIT $2 OFFSET $3
	`
	offset := (page - 1) * pageSize
	rows, err := r.db.Query(ctx, query, includeDisabled, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*models.Account{}
	var total int64
	for rows.Next() {
		var acc models.Account
		var roleName models.RoleName
		err := rows.Scan(
			&acc.ID, &acc.Username, &acc.Email, &acc.Password, &acc.FullName,
			&acc.DateOfBirth, &acc.RoleID, &acc.AvatarURL, &acc.IsDisabled,
			&acc.CreatedAt, &acc.ResetToken, &acc.ResetTokenExpiresAt, &roleName,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning account row: %w", err)
		}
		acc.Role = &models.Role{ID: acc.RoleID, Name: roleName}
		accounts = append(accounts, &acc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, total, nil
}

// Create inserts a new account and returns its id.
func (r *AccountRepository) Create(ctx context.Context, acc *models.Account) (int64, error) {
	query := `
		INSERT INTO accounts (username, email, password, full_name, date_of_birth, role_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		acc.Username, acc.Email, acc.Password, acc.FullName, acc.DateOfBirth, acc.RoleID,
	).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_username_key") {
			return 0, apperrors.ErrUsernameAlreadyTaken
		}
		if dberrors.IsDuplicateConstraintError(err, "accounts_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error inserting account: %w", err)
	}
	return id, nil
}

// Update edits profile fields of an account.
func (r *AccountRepository) Update(ctx context.Context, acc *models.Account) error {
	query := `
		UPDATE accounts
		SET email = $1, full_name = $2, date_of_birth = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, acc.Email, acc.FullName, acc.DateOfBirth, acc.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET password = $1 WHERE id = $2`, hashedPassword, id)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// UpdateAvatar stores the avatar URL for an account.
func (r *AccountRepository) UpdateAvatar(ctx context.Context, id int64, avatarURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET avatar_url = $1 WHERE id = $2`, avatarURL, id)
	if err != nil {
		return fmt.Errorf("error updating avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// SetRole moves the account to another role.
func (r *AccountRepository) SetRole(ctx context.Context, id, roleID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET role_id = $1 WHERE id = $2`, roleID, id)
	if err != nil {
		return fmt.Errorf("error changing role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// SetDisabled flips the soft-delete flag. The row is never removed.
func (r *AccountRepository) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET is_disabled = $1 WHERE id = $2`, disabled, id)
	if err != nil {
		return fmt.Errorf("error updating disabled flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// Delete removes an account row entirely. Only the explicit admin delete
// endpoint uses this; everything else soft-deletes.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// RoleNameByAccountID resolves the account's current role name. The
// authorization gate calls this per request so role changes apply without
// re-login.
func (r *AccountRepository) RoleNameByAccountID(ctx context.Context, accountID int64) (string, error) {
	var name string
	query := `
		SELECT r.name FROM accounts a
		JOIN roles r ON r.id = a.role_id
		WHERE a.id = $1 AND NOT a.is_disabled
	`
	err := r.db.QueryRow(ctx, query, accountID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrAccountNotFound
		}
		return "", fmt.Errorf("error resolving role: %w", err)
	}
	return name, nil
}

// GetRoleByName retrieves a role row by its name.
func (r *AccountRepository) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.db.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("error querying role: %w", err)
	}
	return &role, nil
}

// SetResetToken stores a password reset token with its expiry.
func (r *AccountRepository) SetResetToken(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET reset_token = $1, reset_token_expires_at = $2 WHERE id = $3`,
		token, expiresAt, accountID)
	if err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// GetByResetToken retrieves the account holding a non-expired reset token.
func (r *AccountRepository) GetByResetToken(ctx context.Context, token string) (*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		JOIN roles r ON r.id = a.role_id
		WHERE a.reset_token = $1 AND a.reset_token_expires_at > NOW()
	`
	acc, err := scanAccount(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidPasswordResetToken
		}
		return nil, fmt.Errorf("error querying reset token: %w", err)
	}
	return acc, nil
}

// ClearResetToken removes the reset token after use.
func (r *AccountRepository) ClearResetToken(ctx context.Context, accountID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE accounts SET reset_token = NULL, reset_token_expires_at = NULL WHERE id = $1`,
		accountID)
	if err != nil {
		return fmt.Errorf("error clearing reset token: %w", err)
	}
	return nil
}
