package dto

import (
	"time"

	"talentmatch_backend/internal/models"
)

// RegistrationRequestDTO - public view of a signup awaiting review.
type RegistrationRequestDTO struct {
	ID                uint                      `json:"id"`
	Email             string                    `json:"email"`
	FullName          string                    `json:"full_name"`
	Company           string                    `json:"company,omitempty"`
	Phone             string                    `json:"phone,omitempty"`
	ApplicationReason string                    `json:"application_reason,omitempty"`
	Status            models.RegistrationStatus `json:"status"`
	ReviewedBy        *uint                     `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time                `json:"reviewed_at,omitempty"`
	ReviewNotes       string                    `json:"review_notes,omitempty"`
	AccountID         *uint                     `json:"account_id,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
}

func NewRegistrationRequestDTO(req *models.RegistrationRequest) RegistrationRequestDTO {
	return RegistrationRequestDTO{
		ID:                req.ID,
		Email:             req.Email,
		FullName:          req.FullName,
		Company:           req.Company,
		Phone:             req.Phone,
		ApplicationReason: req.ApplicationReason,
		Status:            req.Status,
		ReviewedBy:        req.ReviewedBy,
		ReviewedAt:        req.ReviewedAt,
		ReviewNotes:       req.ReviewNotes,
		AccountID:         req.AccountID,
		CreatedAt:         req.CreatedAt,
	}
}

// ApproveRegistrationRequest - administrative approval. TenantID assigns the
// new account to a tenant; nil keeps it unassigned until an admin moves it.
type ApproveRegistrationRequest struct {
	TenantID *uint  `json:"tenant_id,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// RejectRegistrationRequest - administrative rejection.
type RejectRegistrationRequest struct {
	Notes string `json:"notes,omitempty"`
}

// UpdateReviewNotesRequest - resolved requests stay immutable except notes.
type UpdateReviewNotesRequest struct {
	Notes string `json:"notes" validate:"required"`
}
