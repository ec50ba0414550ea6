package contextkeys

// Custom key type to avoid collisions with other context users.
type contextKey string

// DBContextKey is the key under which the *gorm.DB (pool or transaction)
// travels through the request context.
const DBContextKey = contextKey("db")

// TenantIDContextKey holds the tenant id resolved by the tenant middleware.
// Absent when the request could not be bound to a tenant.
const TenantIDContextKey = contextKey("tenant_id")

// AdminAPIContextKey marks requests under the admin API prefix. Platform
// administrators operate across tenants, so these requests are never
// tenant-scoped.
const AdminAPIContextKey = contextKey("is_admin_api")
