package dto

import (
	"time"

	"talentmatch_backend/internal/models"
)

// RegisterRequest - self-service registration submission
type RegisterRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required"`
	FullName          string `json:"full_name" validate:"required,max=100"`
	Company           string `json:"company,omitempty" validate:"max=255"`
	Phone             string `json:"phone,omitempty" validate:"max=50"`
	ApplicationReason string `json:"application_reason,omitempty"`
}

// LoginRequest - structured login body. Fields are optional at the binding
// level because the handler falls back to form fields when the JSON body is
// absent or incomplete.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse - token plus the account's public profile. Shared by login
// and refresh.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        AccountDTO `json:"user"`
}

// AccountDTO - public profile of an account, never carries the hash.
type AccountDTO struct {
	ID                 uint                      `json:"id"`
	TenantID           *uint                     `json:"tenant_id,omitempty"`
	Email              string                    `json:"email"`
	FullName           string                    `json:"full_name"`
	UserType           models.UserType           `json:"user_type"`
	Role               models.UserRole           `json:"role"`
	IsActive           bool                      `json:"is_active"`
	IsVerified         bool                      `json:"is_verified"`
	RegistrationStatus models.RegistrationStatus `json:"registration_status,omitempty"`
	LastLogin          *time.Time                `json:"last_login,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
}

// NewAccountDTO maps a stored account to its public profile.
func NewAccountDTO(account *models.Account) AccountDTO {
	return AccountDTO{
		ID:                 account.ID,
		TenantID:           account.TenantID,
		Email:              account.Email,
		FullName:           account.FullName,
		UserType:           account.UserType,
		Role:               account.Role,
		IsActive:           account.IsActive,
		IsVerified:         account.IsVerified,
		RegistrationStatus: account.RegistrationStatus,
		LastLogin:          account.LastLogin,
		CreatedAt:          account.CreatedAt,
	}
}
