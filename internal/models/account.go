package models

import "time"

// Account is a principal able to authenticate. Accounts with a nil TenantID
// are platform-level and exempt from tenant scoping; they must carry an
// administrative user type.
type Account struct {
	BaseModel

	// Email is unique within a tenant; platform accounts (NULL tenant_id)
	// are effectively unique globally under the same composite index.
	TenantID *uint   `gorm:"index;uniqueIndex:uq_accounts_tenant_email" json:"tenant_id"`
	Tenant   *Tenant `gorm:"foreignKey:TenantID" json:"-"`

	Email        string `gorm:"size:255;not null;uniqueIndex:uq_accounts_tenant_email" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FullName     string `gorm:"size:100" json:"full_name"`

	UserType UserType `gorm:"type:varchar(50);default:'hr_user'" json:"user_type"`
	Role     UserRole `gorm:"type:varchar(50);default:'hr_user'" json:"role"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsVerified bool `gorm:"default:false" json:"is_verified"`

	// Empty string means "not subject to approval" (created by an admin).
	RegistrationStatus RegistrationStatus `gorm:"type:varchar(50);default:''" json:"registration_status"`
	ReviewedBy         *uint              `json:"reviewed_by,omitempty"`
	ReviewedAt         *time.Time         `json:"reviewed_at,omitempty"`
	ReviewNotes        string             `gorm:"type:text" json:"review_notes,omitempty"`

	// Usage accounting, owned by billing; read-only from the auth core.
	MonthlyUsageLimit *int       `json:"monthly_usage_limit,omitempty"`
	CurrentMonthUsage int        `gorm:"default:0" json:"current_month_usage"`
	UsageResetDate    *time.Time `json:"usage_reset_date,omitempty"`

	LastLogin *time.Time `json:"last_login,omitempty"`
}

func (Account) TableName() string {
	return "accounts"
}
