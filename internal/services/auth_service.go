package services

import (
	"time"

	"gorm.io/gorm"

	"talentmatch_backend/internal/auth"
	"talentmatch_backend/internal/logger"
	"talentmatch_backend/internal/models"
	"talentmatch_backend/internal/repositories"
	"talentmatch_backend/internal/services/dto"
	"talentmatch_backend/pkg/apperrors"
)

// AuthService orchestrates credential verification, the login gate and token
// issuance. Login failures stay deliberately generic: a wrong password and an
// unknown email produce the same error.
type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*models.RegistrationRequest, error)
	Login(db *gorm.DB, email, password string) (*dto.LoginResponse, error)
	Refresh(db *gorm.DB, token string) (*dto.LoginResponse, error)
	CurrentUser(db *gorm.DB, token string) (*models.Account, error)
	OptionalCurrentUser(db *gorm.DB, token string) *models.Account
	AdminCreateUser(db *gorm.DB, req *dto.AdminCreateUserRequest) (*models.Account, error)
}

type AuthServiceImpl struct {
	accountRepo         repositories.AccountRepository
	registrationService RegistrationService
	tenantService       TenantService
	hasher              *auth.PasswordHasher
	tokens              *auth.TokenService
}

func NewAuthService(
	accountRepo repositories.AccountRepository,
	registrationService RegistrationService,
	tenantService TenantService,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenService,
) AuthService {
	return &AuthServiceImpl{
		accountRepo:         accountRepo,
		registrationService: registrationService,
		tenantService:       tenantService,
		hasher:              hasher,
		tokens:              tokens,
	}
}

// Register submits a registration request; no account exists until an
// administrator approves it.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*models.RegistrationRequest, error) {
	return s.registrationService.Submit(db, req)
}

// Login runs the full gate in a fixed order: credentials first, then the
// active flag, then approval status. A caller who fails an earlier gate never
// learns about the later ones.
func (s *AuthServiceImpl) Login(db *gorm.DB, email, password string) (*dto.LoginResponse, error) {
	if err := auth.ValidatePasswordLength(password); err != nil {
		return nil, err
	}

	account, err := s.verifyCredentials(db, email, password)
	if err != nil {
		return nil, err
	}

	if !account.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.checkApproval(account); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.accountRepo.UpdateLastLogin(db, account.ID, now); err != nil {
		// A login must not fail because the bookkeeping write did.
		logger.Warn("failed to record last login", "account_id", account.ID, "error", err.Error())
	} else {
		account.LastLogin = &now
	}

	return s.issueResponse(account)
}

// Refresh exchanges a valid, unexpired token for a fresh one. Approval status
// is not re-checked: an account approved once stays approved, and revocation
// is expressed through the active flag.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, token string) (*dto.LoginResponse, error) {
	subject, ok := s.tokens.Subject(token)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}

	account, err := s.accountRepo.FindByEmail(db, subject)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !account.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.issueResponse(account)
}

// CurrentUser resolves the bearer token to an account. Invalid tokens and
// unknown subjects both collapse to the same 401.
func (s *AuthServiceImpl) CurrentUser(db *gorm.DB, token string) (*models.Account, error) {
	subject, ok := s.tokens.Subject(token)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}

	account, err := s.accountRepo.FindByEmail(db, subject)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if !account.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	return account, nil
}

// OptionalCurrentUser is CurrentUser for endpoints where anonymous access is
// allowed; any failure yields nil rather than an error.
func (s *AuthServiceImpl) OptionalCurrentUser(db *gorm.DB, token string) *models.Account {
	account, err := s.CurrentUser(db, token)
	if err != nil {
		return nil
	}
	return account
}

// AdminCreateUser creates an account directly, bypassing the approval
// workflow. Registration status stays empty so the login gate never applies.
func (s *AuthServiceImpl) AdminCreateUser(db *gorm.DB, req *dto.AdminCreateUserRequest) (*models.Account, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	userType := models.UserTypeHRUser
	if req.UserType != "" {
		userType = models.UserType(req.UserType)
	}

	// Accounts without a tenant are platform-level and must be administrative.
	if req.TenantID == nil && !userType.IsAdministrative() {
		return nil, apperrors.NewBadRequestError("Accounts without a tenant must have an administrative user type")
	}

	if req.TenantID != nil {
		if err := s.tenantService.EnsureCapacity(db, *req.TenantID); err != nil {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	account := &models.Account{
		TenantID:          req.TenantID,
		Email:             req.Email,
		PasswordHash:      hash,
		FullName:          req.FullName,
		UserType:          userType,
		Role:              models.UserRoleHRUser,
		IsActive:          true,
		MonthlyUsageLimit: req.MonthlyUsageLimit,
	}
	if req.Role != "" {
		account.Role = models.UserRole(req.Role)
	}

	if err := s.accountRepo.Create(db, account); err != nil {
		if apperrors.Is(err, repositories.ErrAccountAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyRegistered
		}
		return nil, apperrors.InternalError(err)
	}
	return account, nil
}

// verifyCredentials looks up the account and checks the password. Unknown
// email and wrong password both return ErrInvalidCredentials.
func (s *AuthServiceImpl) verifyCredentials(db *gorm.DB, email, password string) (*models.Account, error) {
	account, err := s.accountRepo.FindByEmail(db, email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return account, nil
}

// checkApproval applies the registration gate. Administrative user types are
// exempt; accounts created by an admin carry no status and pass through.
func (s *AuthServiceImpl) checkApproval(account *models.Account) error {
	if account.UserType.IsAdministrative() {
		return nil
	}
	switch account.RegistrationStatus {
	case models.RegistrationStatusPending:
		return apperrors.ErrRegistrationPending
	case models.RegistrationStatusRejected:
		return apperrors.ErrRegistrationRejected
	default:
		return nil
	}
}

func (s *AuthServiceImpl) issueResponse(account *models.Account) (*dto.LoginResponse, error) {
	token, err := s.tokens.Issue(account.Email, account.TenantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.NewAccountDTO(account),
	}, nil
}
