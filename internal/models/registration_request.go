package models

import "time"

// RegistrationRequest is a self-service signup awaiting administrative
// review. The password is hashed at submission time and kept in a dedicated
// column so account creation at approval never needs the plaintext again.
type RegistrationRequest struct {
	BaseModel

	Email             string `gorm:"size:255;not null;index" json:"email"`
	FullName          string `gorm:"size:100;not null" json:"full_name"`
	Company           string `gorm:"size:255" json:"company,omitempty"`
	Phone             string `gorm:"size:50" json:"phone,omitempty"`
	ApplicationReason string `gorm:"type:text" json:"application_reason,omitempty"`

	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// pending -> approved | rejected (terminal). At most one pending request
	// per email, enforced by the submit operation rather than the schema:
	// resolved requests retain the email.
	Status RegistrationStatus `gorm:"type:varchar(50);default:'pending';index" json:"status"`

	ReviewedBy  *uint      `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes string     `gorm:"type:text" json:"review_notes,omitempty"`

	// Set when approval creates the account.
	AccountID *uint `json:"account_id,omitempty"`
}

func (RegistrationRequest) TableName() string {
	return "registration_requests"
}
