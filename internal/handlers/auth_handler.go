package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talentmatch_backend/internal/middleware"
	"talentmatch_backend/internal/ratelimit"
	"talentmatch_backend/internal/services"
	"talentmatch_backend/internal/services/dto"
	"talentmatch_backend/pkg/apperrors"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	limiter     *ratelimit.Limiter
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, limiter *ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		limiter:     limiter,
	}
}

// RegisterRoutes registers the authentication endpoints.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimit(h.limiter, "register"), h.Register)
		auth.POST("/login", middleware.RateLimit(h.limiter, "login"), h.Login)
		auth.POST("/refresh", h.RefreshToken)
		auth.GET("/me", middleware.AuthMiddleware(h.authService), h.GetCurrentUser)
	}

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(h.authService))
	{
		users.GET("/me", h.GetCurrentUser)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	request, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration request submitted and awaiting administrator review.",
		"request": dto.NewRegistrationRequestDTO(request),
	})
}

// Login accepts a JSON body and falls back to form fields ("username" is
// accepted as an alias for "email" there). Failed credentials answer with a
// WWW-Authenticate challenge.
func (h *AuthHandler) Login(c *gin.Context) {
	email, password, ok := h.loginCredentials(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Login(db, email, password)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
		}
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// RefreshToken exchanges the bearer token in the Authorization header for a
// fresh one.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		h.HandleServiceError(c, apperrors.ErrInvalidAuthHeader)
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Refresh(db, token)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidToken) {
			c.Header("WWW-Authenticate", "Bearer")
		}
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		h.HandleServiceError(c, apperrors.ErrInvalidAuthHeader)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountDTO(account))
}

func (h *AuthHandler) loginCredentials(c *gin.Context) (string, string, bool) {
	// The body can be read only once, so branch on the content type instead
	// of trying JSON first and falling back.
	if c.ContentType() == "application/json" {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err == nil && req.Email != "" && req.Password != "" {
			return req.Email, req.Password, true
		}
	} else {
		email := c.PostForm("email")
		if email == "" {
			email = c.PostForm("username")
		}
		password := c.PostForm("password")
		if email != "" && password != "" {
			return email, password, true
		}
	}

	h.HandleServiceError(c, apperrors.ErrMissingCredentials)
	return "", "", false
}
