package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"talentmatch_backend/internal/models"
	"talentmatch_backend/internal/ratelimit"
	"talentmatch_backend/internal/services/dto"
	"talentmatch_backend/internal/validator"
	"talentmatch_backend/pkg/apperrors"
	"talentmatch_backend/pkg/contextkeys"
)

// stubAuthService scripts per-method results for handler tests.
type stubAuthService struct {
	loginResponse *dto.LoginResponse
	loginErr      error
	loginEmail    string
	loginPassword string

	refreshResponse *dto.LoginResponse
	refreshErr      error

	registerRequest *models.RegistrationRequest
	registerErr     error

	currentAccount *models.Account
	currentErr     error
}

func (s *stubAuthService) Register(_ *gorm.DB, _ *dto.RegisterRequest) (*models.RegistrationRequest, error) {
	return s.registerRequest, s.registerErr
}

func (s *stubAuthService) Login(_ *gorm.DB, email, password string) (*dto.LoginResponse, error) {
	s.loginEmail = email
	s.loginPassword = password
	return s.loginResponse, s.loginErr
}

func (s *stubAuthService) Refresh(_ *gorm.DB, _ string) (*dto.LoginResponse, error) {
	return s.refreshResponse, s.refreshErr
}

func (s *stubAuthService) CurrentUser(_ *gorm.DB, _ string) (*models.Account, error) {
	return s.currentAccount, s.currentErr
}

func (s *stubAuthService) OptionalCurrentUser(db *gorm.DB, token string) *models.Account {
	account, err := s.CurrentUser(db, token)
	if err != nil {
		return nil
	}
	return account
}

func (s *stubAuthService) AdminCreateUser(_ *gorm.DB, _ *dto.AdminCreateUserRequest) (*models.Account, error) {
	return nil, apperrors.ErrInsufficientPermissions
}

func newAuthRouter(t *testing.T, stub *stubAuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), &gorm.DB{})
		c.Next()
	})

	base := NewBaseHandler(validator.New())
	handler := NewAuthHandler(base, stub, ratelimit.New())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func okLoginResponse(email string) *dto.LoginResponse {
	return &dto.LoginResponse{
		AccessToken: "issued-token",
		TokenType:   "bearer",
		User:        dto.AccountDTO{Email: email},
	}
}

func TestLoginHandlerJSON(t *testing.T) {
	stub := &stubAuthService{loginResponse: okLoginResponse("user@example.com")}
	router := newAuthRouter(t, stub)

	w := postJSON(t, router, "/api/v1/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "Secret123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user@example.com", stub.loginEmail)
	assert.Equal(t, "Secret123", stub.loginPassword)
	assert.Contains(t, w.Body.String(), "issued-token")
}

func TestLoginHandlerFormFallback(t *testing.T) {
	stub := &stubAuthService{loginResponse: okLoginResponse("user@example.com")}
	router := newAuthRouter(t, stub)

	form := url.Values{}
	form.Set("username", "user@example.com")
	form.Set("password", "Secret123")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user@example.com", stub.loginEmail)
}

func TestLoginHandlerMissingCredentials(t *testing.T) {
	stub := &stubAuthService{}
	router := newAuthRouter(t, stub)

	w := postJSON(t, router, "/api/v1/auth/login", gin.H{"email": "user@example.com"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	stub := &stubAuthService{loginErr: apperrors.ErrInvalidCredentials}
	router := newAuthRouter(t, stub)

	w := postJSON(t, router, "/api/v1/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "WrongPass1",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestLoginHandlerGateErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"disabled", apperrors.ErrAccountDisabled, http.StatusBadRequest},
		{"pending", apperrors.ErrRegistrationPending, http.StatusForbidden},
		{"rejected", apperrors.ErrRegistrationRejected, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{loginErr: tc.err}
			router := newAuthRouter(t, stub)

			w := postJSON(t, router, "/api/v1/auth/login", gin.H{
				"email":    "user@example.com",
				"password": "Secret123",
			})
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRefreshHandler(t *testing.T) {
	stub := &stubAuthService{refreshResponse: okLoginResponse("user@example.com")}
	router := newAuthRouter(t, stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "issued-token")
}

func TestRefreshHandlerMissingHeader(t *testing.T) {
	stub := &stubAuthService{}
	router := newAuthRouter(t, stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestRefreshHandlerErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid token", apperrors.ErrInvalidToken, http.StatusUnauthorized},
		{"account deleted", apperrors.ErrAccountNotFound, http.StatusNotFound},
		{"disabled", apperrors.ErrAccountDisabled, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{refreshErr: tc.err}
			router := newAuthRouter(t, stub)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
			req.Header.Set("Authorization", "Bearer stale-token")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRegisterHandler(t *testing.T) {
	stub := &stubAuthService{registerRequest: &models.RegistrationRequest{
		Email:    "new@example.com",
		FullName: "Applicant",
		Status:   models.RegistrationStatusPending,
	}}
	router := newAuthRouter(t, stub)

	w := postJSON(t, router, "/api/v1/auth/register", gin.H{
		"email":     "new@example.com",
		"password":  "Secret123",
		"full_name": "Applicant",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "pending")
}

func TestRegisterHandlerValidation(t *testing.T) {
	stub := &stubAuthService{}
	router := newAuthRouter(t, stub)

	w := postJSON(t, router, "/api/v1/auth/register", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMeHandler(t *testing.T) {
	stub := &stubAuthService{currentAccount: &models.Account{
		Email:    "user@example.com",
		UserType: models.UserTypeHRUser,
	}}
	router := newAuthRouter(t, stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user@example.com")

	// Without a token the middleware rejects the request.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
