package models

type UserRole string
type UserType string
type RegistrationStatus string
type TenantStatus string

const (
	UserRolePlatformAdmin UserRole = "platform_admin"
	UserRoleTenantAdmin   UserRole = "tenant_admin"
	UserRoleHRUser        UserRole = "hr_user"

	UserTypeSuperAdmin       UserType = "super_admin"
	UserTypeTemplateDesigner UserType = "template_designer"
	UserTypeTenantAdmin      UserType = "tenant_admin"
	UserTypeHRUser           UserType = "hr_user"

	// RegistrationStatusNone marks accounts created directly by an
	// administrator; they are never subject to the approval gate.
	RegistrationStatusNone     RegistrationStatus = ""
	RegistrationStatusPending  RegistrationStatus = "pending"
	RegistrationStatusApproved RegistrationStatus = "approved"
	RegistrationStatusRejected RegistrationStatus = "rejected"

	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusExpired   TenantStatus = "expired"
)

// administrativeUserTypes bypass the registration approval gate on login.
// The disabled-account gate still applies to them.
var administrativeUserTypes = map[UserType]bool{
	UserTypeSuperAdmin:       true,
	UserTypeTemplateDesigner: true,
	UserTypeTenantAdmin:      true,
}

// IsAdministrative reports whether the user type is in the administrative set.
func (t UserType) IsAdministrative() bool {
	return administrativeUserTypes[t]
}
