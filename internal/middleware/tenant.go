package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"talentmatch_backend/internal/auth"
	"talentmatch_backend/internal/logger"
	"talentmatch_backend/internal/repositories"
	"talentmatch_backend/pkg/apperrors"
	"talentmatch_backend/pkg/contextkeys"
)

const (
	tenantIDKey      = "tenantID"
	tenantHeaderName = "X-Tenant-ID"
	tenantQueryParam = "tenant_id"

	adminPathPrefix = "/api/v1/admin/"
	authPathPrefix  = "/api/v1/auth/"
	healthPath      = "/api/v1/health"
)

// TenantResolver binds each request to a tenant. Sources are consulted in
// trust order: the token claim wins, then a DB lookup for legacy tokens
// without the claim, then the X-Tenant-ID header, then the tenant_id query
// parameter. A request that matches no source proceeds tenant-less; handlers
// that need a tenant gate on RequireTenant.
//
// Admin, auth and health endpoints are exempt: admin operations are
// cross-tenant by nature, and on auth endpoints the tenant is not yet known.
type TenantResolver struct {
	tokens      *auth.TokenService
	accountRepo repositories.AccountRepository
}

func NewTenantResolver(tokens *auth.TokenService, accountRepo repositories.AccountRepository) *TenantResolver {
	return &TenantResolver{tokens: tokens, accountRepo: accountRepo}
}

func (r *TenantResolver) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, adminPathPrefix) {
			ctx := context.WithValue(c.Request.Context(), contextkeys.AdminAPIContextKey, true)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
			return
		}
		if strings.HasPrefix(path, authPathPrefix) || path == healthPath {
			c.Next()
			return
		}

		if tenantID, source, ok := r.resolve(c); ok {
			setTenantID(c, tenantID)
			logger.CtxDebug(c.Request.Context(), "tenant resolved",
				"tenant_id", tenantID,
				"source", source,
			)
		} else {
			logger.CtxDebug(c.Request.Context(), "request not bound to a tenant",
				"path", path,
			)
		}
		c.Next()
	}
}

func (r *TenantResolver) resolve(c *gin.Context) (uint, string, bool) {
	token, hasToken := BearerToken(c)

	if hasToken {
		if tenantID, ok := r.tokens.TenantID(token); ok {
			return tenantID, "token", true
		}
		// Legacy tokens predate the tenant claim; fall back to the stored
		// account. Only valid tokens reach the lookup.
		if subject, ok := r.tokens.Subject(token); ok {
			if tenantID, ok := r.lookupTenant(c, subject); ok {
				return tenantID, "account", true
			}
		}
	}

	if header := c.GetHeader(tenantHeaderName); header != "" {
		if tenantID, err := strconv.ParseUint(header, 10, 32); err == nil {
			return uint(tenantID), "header", true
		}
	}

	if param := c.Query(tenantQueryParam); param != "" {
		if tenantID, err := strconv.ParseUint(param, 10, 32); err == nil {
			return uint(tenantID), "query", true
		}
	}

	return 0, "", false
}

func (r *TenantResolver) lookupTenant(c *gin.Context, email string) (uint, bool) {
	db := requestDB(c)
	if db == nil {
		return 0, false
	}
	account, err := r.accountRepo.FindByEmail(db, email)
	if err != nil || account.TenantID == nil {
		return 0, false
	}
	return *account.TenantID, true
}

// RequireTenant aborts requests that the resolver could not bind to a tenant.
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := TenantID(c); !ok {
			apperrors.HandleError(c, apperrors.ErrTenantRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

// TenantID returns the tenant the request was bound to.
func TenantID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(tenantIDKey)
	if !exists {
		return 0, false
	}
	tenantID, ok := val.(uint)
	return tenantID, ok
}

// IsAdminAPI reports whether the request is under the admin prefix.
func IsAdminAPI(c *gin.Context) bool {
	isAdmin, _ := c.Request.Context().Value(contextkeys.AdminAPIContextKey).(bool)
	return isAdmin
}

func setTenantID(c *gin.Context, tenantID uint) {
	c.Set(tenantIDKey, tenantID)
	ctx := context.WithValue(c.Request.Context(), contextkeys.TenantIDContextKey, tenantID)
	c.Request = c.Request.WithContext(ctx)
}
