package models

import "time"

// Role is a row of the fixed role lookup table
type Role struct {
	ID   int64    `json:"id" db:"id"`
	Name RoleName `json:"name" db:"name"`
}

// Account defines the identity record backed by the 'accounts' table
type Account struct {
	ID                  int64      `json:"id" db:"id"`
	Username            string     `json:"username" db:"username"`
	Email               string     `json:"email" db:"email"`
	Password            string     `json:"-" db:"password"`
	FullName            string     `json:"fullName" db:"full_name"`
	DateOfBirth         *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	RoleID              int64      `json:"roleId" db:"role_id"`
	AvatarURL           *string    `json:"avatarUrl,omitempty" db:"avatar_url"`
	IsDisabled          bool       `json:"isDisabled" db:"is_disabled"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	ResetToken          *string    `json:"-" db:"reset_token"`
	ResetTokenExpiresAt *time.Time `json:"-" db:"reset_token_expires_at"`

	// Related entities
	Role *Role `json:"role,omitempty"`
}

// RefreshToken is a server-side stored refresh token for an account
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	AccountID int64     `json:"accountId" db:"account_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
