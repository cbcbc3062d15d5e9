package dto

import "time"

// AccountResponse is the public shape of an account
type AccountResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	RoleName    string     `json:"roleName"`
	AvatarURL   *string    `json:"avatarUrl,omitempty"`
	IsDisabled  bool       `json:"isDisabled"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// AccountListResponse is a paginated account listing
type AccountListResponse struct {
	Accounts       []AccountResponse `json:"accounts"`
	PaginationInfo PaginationInfo    `json:"pagination"`
}

// CreateAccountRequest is the admin account-creation payload
type CreateAccountRequest struct {
	Username    string `json:"username" binding:"required,alphanum,min=4,max=30"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"fullName" binding:"required,min=2,max=100"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	RoleName    string `json:"roleName" binding:"required,oneof=Admin Manager Staff Consultant Member"`
}

// UpdateAccountRequest edits profile fields; empty fields are left unchanged
type UpdateAccountRequest struct {
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	FullName    *string `json:"fullName,omitempty" binding:"omitempty,min=2,max=100"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}

// ChangeRoleRequest moves an account to another role
type ChangeRoleRequest struct {
	RoleName string `json:"roleName" binding:"required,oneof=Admin Manager Staff Consultant Member"`
}
