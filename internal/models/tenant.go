package models

import "time"

// Tenant is an isolated customer organization.
type Tenant struct {
	BaseModel

	Name         string `gorm:"size:255;not null;index" json:"name"`
	Domain       string `gorm:"size:255;uniqueIndex" json:"domain,omitempty"`
	ContactEmail string `gorm:"size:255" json:"contact_email,omitempty"`
	ContactPhone string `gorm:"size:50" json:"contact_phone,omitempty"`

	SubscriptionPlan  string     `gorm:"size:50;default:'trial'" json:"subscription_plan"`
	SubscriptionStart *time.Time `json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time `json:"subscription_end,omitempty"`

	Status TenantStatus `gorm:"type:varchar(50);default:'active';index" json:"status"`

	// MaxUsers bounds the count of accounts with this tenant_id. Enforced at
	// account-creation time, not continuously.
	MaxUsers                int `gorm:"default:5" json:"max_users"`
	MaxJobs                 int `gorm:"default:10" json:"max_jobs"`
	MaxResumesPerMonth      int `gorm:"default:100" json:"max_resumes_per_month"`
	CurrentMonthResumeCount int `gorm:"default:0" json:"current_month_resume_count"`

	Accounts []Account `gorm:"foreignKey:TenantID" json:"-"`
}

func (Tenant) TableName() string {
	return "tenants"
}
