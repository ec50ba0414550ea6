package services

import (
	"time"

	"gorm.io/gorm"

	"talentmatch_backend/internal/auth"
	"talentmatch_backend/internal/email"
	"talentmatch_backend/internal/logger"
	"talentmatch_backend/internal/models"
	"talentmatch_backend/internal/repositories"
	"talentmatch_backend/internal/services/dto"
	"talentmatch_backend/pkg/apperrors"
)

// RegistrationService owns the approval state machine: pending -> approved
// or rejected, both terminal. Resolved requests are immutable except notes.
type RegistrationService interface {
	Submit(db *gorm.DB, req *dto.RegisterRequest) (*models.RegistrationRequest, error)
	Approve(db *gorm.DB, id, reviewerID uint, req *dto.ApproveRegistrationRequest) (*models.RegistrationRequest, error)
	Reject(db *gorm.DB, id, reviewerID uint, notes string) (*models.RegistrationRequest, error)
	UpdateNotes(db *gorm.DB, id uint, notes string) (*models.RegistrationRequest, error)
	List(db *gorm.DB, status models.RegistrationStatus, page, pageSize int) ([]models.RegistrationRequest, error)
}

type RegistrationServiceImpl struct {
	registrationRepo repositories.RegistrationRequestRepository
	accountRepo      repositories.AccountRepository
	tenantService    TenantService
	hasher           *auth.PasswordHasher
	emailProvider    email.Provider
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRequestRepository,
	accountRepo repositories.AccountRepository,
	tenantService TenantService,
	hasher *auth.PasswordHasher,
	emailProvider email.Provider,
) RegistrationService {
	return &RegistrationServiceImpl{
		registrationRepo: registrationRepo,
		accountRepo:      accountRepo,
		tenantService:    tenantService,
		hasher:           hasher,
		emailProvider:    emailProvider,
	}
}

// Submit stores a pending request with the password already hashed, so
// account creation at approval time never needs the plaintext again.
func (s *RegistrationServiceImpl) Submit(db *gorm.DB, req *dto.RegisterRequest) (*models.RegistrationRequest, error) {
	if _, err := s.accountRepo.FindByEmail(db, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyRegistered
	} else if !apperrors.Is(err, repositories.ErrAccountNotFound) {
		return nil, apperrors.InternalError(err)
	}

	// At most one pending request per email; resolved requests keep the
	// email, so the schema cannot enforce this.
	if _, err := s.registrationRepo.FindPendingByEmail(db, req.Email); err == nil {
		return nil, apperrors.ErrPendingRequestExists
	} else if !apperrors.Is(err, repositories.ErrRegistrationRequestNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	request := &models.RegistrationRequest{
		Email:             req.Email,
		FullName:          req.FullName,
		Company:           req.Company,
		Phone:             req.Phone,
		ApplicationReason: req.ApplicationReason,
		PasswordHash:      hash,
		Status:            models.RegistrationStatusPending,
	}

	if err := s.registrationRepo.Create(db, request); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return request, nil
}

// Approve transitions pending -> approved and creates the account with the
// hash captured at submission. Tenant capacity is checked before creation.
func (s *RegistrationServiceImpl) Approve(db *gorm.DB, id, reviewerID uint, req *dto.ApproveRegistrationRequest) (*models.RegistrationRequest, error) {
	request, err := s.findPending(db, id)
	if err != nil {
		return nil, err
	}

	if req.TenantID != nil {
		if err := s.tenantService.EnsureCapacity(db, *req.TenantID); err != nil {
			return nil, err
		}
	}

	account := &models.Account{
		TenantID:           req.TenantID,
		Email:              request.Email,
		PasswordHash:       request.PasswordHash,
		FullName:           request.FullName,
		UserType:           models.UserTypeHRUser,
		Role:               models.UserRoleHRUser,
		IsActive:           true,
		RegistrationStatus: models.RegistrationStatusApproved,
		ReviewedBy:         &reviewerID,
	}

	if err := s.accountRepo.Create(db, account); err != nil {
		if apperrors.Is(err, repositories.ErrAccountAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyRegistered
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	request.Status = models.RegistrationStatusApproved
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &now
	request.ReviewNotes = req.Notes
	request.AccountID = &account.ID
	// The hash has served its purpose; do not keep a second copy around.
	request.PasswordHash = ""

	if err := s.registrationRepo.Update(db, request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notify(func() error {
		return s.emailProvider.SendRegistrationApproved(request.Email, request.FullName)
	}, request.Email)

	return request, nil
}

// Reject transitions pending -> rejected.
func (s *RegistrationServiceImpl) Reject(db *gorm.DB, id, reviewerID uint, notes string) (*models.RegistrationRequest, error) {
	request, err := s.findPending(db, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = models.RegistrationStatusRejected
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &now
	request.ReviewNotes = notes
	request.PasswordHash = ""

	if err := s.registrationRepo.Update(db, request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notify(func() error {
		return s.emailProvider.SendRegistrationRejected(request.Email, request.FullName, notes)
	}, request.Email)

	return request, nil
}

// UpdateNotes is the only mutation allowed on a resolved request.
func (s *RegistrationServiceImpl) UpdateNotes(db *gorm.DB, id uint, notes string) (*models.RegistrationRequest, error) {
	request, err := s.registrationRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRegistrationRequestNotFound) {
			return nil, apperrors.NewNotFoundError("Registration request not found")
		}
		return nil, apperrors.InternalError(err)
	}

	request.ReviewNotes = notes
	if err := s.registrationRepo.Update(db, request); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return request, nil
}

func (s *RegistrationServiceImpl) List(db *gorm.DB, status models.RegistrationStatus, page, pageSize int) ([]models.RegistrationRequest, error) {
	offset := (page - 1) * pageSize
	requests, err := s.registrationRepo.FindByStatus(db, status, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return requests, nil
}

func (s *RegistrationServiceImpl) findPending(db *gorm.DB, id uint) (*models.RegistrationRequest, error) {
	request, err := s.registrationRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRegistrationRequestNotFound) {
			return nil, apperrors.NewNotFoundError("Registration request not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if request.Status != models.RegistrationStatusPending {
		return nil, apperrors.ErrRequestAlreadyResolved
	}
	return request, nil
}

// notify delivers review notifications without blocking the review path.
func (s *RegistrationServiceImpl) notify(send func() error, recipient string) {
	if s.emailProvider == nil {
		return
	}
	go func() {
		if err := send(); err != nil {
			logger.Warn("failed to send registration notification",
				"recipient", recipient,
				"error", err.Error(),
			)
		}
	}()
}
