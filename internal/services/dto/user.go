package dto

// AdminCreateUserRequest - account created directly by an administrator.
// Such accounts carry no registration status and are never gated by the
// approval workflow.
type AdminCreateUserRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required"`
	FullName          string `json:"full_name" validate:"max=100"`
	UserType          string `json:"user_type" validate:"omitempty,oneof=super_admin template_designer tenant_admin hr_user"`
	Role              string `json:"role" validate:"omitempty,oneof=platform_admin tenant_admin hr_user"`
	TenantID          *uint  `json:"tenant_id,omitempty"`
	MonthlyUsageLimit *int   `json:"monthly_usage_limit,omitempty"`
}
