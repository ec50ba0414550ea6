package middleware

import (
	"github.com/gin-gonic/gin"

	"talentmatch_backend/internal/logger"
	"talentmatch_backend/internal/ratelimit"
	"talentmatch_backend/pkg/apperrors"
)

// RateLimit applies the named policy per remote address. Runs before
// credential checks so throttled requests never touch the database.
func RateLimit(limiter *ratelimit.Limiter, policyName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, policy := limiter.Allow(policyName, c.ClientIP())
		if !allowed {
			logger.CtxWarn(c.Request.Context(), "rate limit exceeded",
				"policy", policy.Name,
				"client_ip", c.ClientIP(),
			)
			apperrors.HandleError(c, apperrors.RateLimitError(policy.Description))
			c.Abort()
			return
		}
		c.Next()
	}
}
