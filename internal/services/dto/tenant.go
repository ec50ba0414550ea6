package dto

// CreateTenantRequest - administrative tenant provisioning.
type CreateTenantRequest struct {
	Name               string `json:"name" validate:"required,max=255"`
	Domain             string `json:"domain,omitempty" validate:"max=255"`
	ContactEmail       string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone       string `json:"contact_phone,omitempty" validate:"max=50"`
	SubscriptionPlan   string `json:"subscription_plan,omitempty" validate:"omitempty,oneof=trial basic professional enterprise"`
	MaxUsers           int    `json:"max_users,omitempty" validate:"omitempty,min=1"`
	MaxJobs            int    `json:"max_jobs,omitempty" validate:"omitempty,min=1"`
	MaxResumesPerMonth int    `json:"max_resumes_per_month,omitempty" validate:"omitempty,min=1"`
}

// UpdateTenantStatusRequest - suspend/reactivate a tenant.
type UpdateTenantStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended expired"`
}
