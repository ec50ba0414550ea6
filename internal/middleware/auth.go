package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"talentmatch_backend/internal/logger"
	"talentmatch_backend/internal/models"
	"talentmatch_backend/internal/services"
	"talentmatch_backend/pkg/apperrors"
	"talentmatch_backend/pkg/contextkeys"
)

// Gin context key under which the resolved account is stored.
const currentAccountKey = "currentAccount"

// BearerToken extracts the token from the Authorization header. ok=false when
// the header is absent or not a Bearer scheme.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// AuthMiddleware resolves the bearer token to an account and aborts with 401
// when it cannot. The account is stored in the gin context for handlers.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			abortUnauthorized(c, apperrors.ErrInvalidAuthHeader)
			return
		}

		db := requestDB(c)
		account, err := authService.CurrentUser(db, token)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		setCurrentAccount(c, account)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the account when a valid token is present
// and stays silent otherwise.
func OptionalAuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := BearerToken(c); ok {
			db := requestDB(c)
			if account := authService.OptionalCurrentUser(db, token); account != nil {
				setCurrentAccount(c, account)
			}
		}
		c.Next()
	}
}

// RequireUserTypes restricts a route to the listed user types. Must run after
// AuthMiddleware.
func RequireUserTypes(types ...models.UserType) gin.HandlerFunc {
	allowed := make(map[models.UserType]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}

	return func(c *gin.Context) {
		account, ok := CurrentAccount(c)
		if !ok {
			abortUnauthorized(c, apperrors.ErrInvalidAuthHeader)
			return
		}
		if !allowed[account.UserType] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentAccount returns the account resolved by the auth middleware.
func CurrentAccount(c *gin.Context) (*models.Account, bool) {
	val, exists := c.Get(currentAccountKey)
	if !exists {
		return nil, false
	}
	account, ok := val.(*models.Account)
	return account, ok
}

func setCurrentAccount(c *gin.Context, account *models.Account) {
	c.Set(currentAccountKey, account)
	ctx := logger.WithUserID(c.Request.Context(), strconv.FormatUint(uint64(account.ID), 10))
	c.Request = c.Request.WithContext(ctx)
}

func abortUnauthorized(c *gin.Context, err error) {
	c.Header("WWW-Authenticate", "Bearer")
	apperrors.HandleError(c, err)
	c.Abort()
}

// requestDB fetches the handle placed by DBMiddleware.
func requestDB(c *gin.Context) *gorm.DB {
	val, exists := c.Get(string(contextkeys.DBContextKey))
	if !exists {
		return nil
	}
	db, _ := val.(*gorm.DB)
	return db
}
