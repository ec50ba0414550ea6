package services

import (
	"gorm.io/gorm"

	"talentmatch_backend/internal/models"
	"talentmatch_backend/internal/repositories"
	"talentmatch_backend/internal/services/dto"
	"talentmatch_backend/pkg/apperrors"
)

type TenantService interface {
	Create(db *gorm.DB, req *dto.CreateTenantRequest) (*models.Tenant, error)
	Get(db *gorm.DB, id uint) (*models.Tenant, error)
	List(db *gorm.DB, page, pageSize int) ([]models.Tenant, error)
	UpdateStatus(db *gorm.DB, id uint, status models.TenantStatus) (*models.Tenant, error)
	EnsureCapacity(db *gorm.DB, tenantID uint) error
}

type TenantServiceImpl struct {
	tenantRepo  repositories.TenantRepository
	accountRepo repositories.AccountRepository
}

func NewTenantService(tenantRepo repositories.TenantRepository, accountRepo repositories.AccountRepository) TenantService {
	return &TenantServiceImpl{tenantRepo: tenantRepo, accountRepo: accountRepo}
}

func (s *TenantServiceImpl) Create(db *gorm.DB, req *dto.CreateTenantRequest) (*models.Tenant, error) {
	tenant := &models.Tenant{
		Name:         req.Name,
		Domain:       req.Domain,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Status:       models.TenantStatusActive,
	}
	if req.SubscriptionPlan != "" {
		tenant.SubscriptionPlan = req.SubscriptionPlan
	}
	if req.MaxUsers > 0 {
		tenant.MaxUsers = req.MaxUsers
	}
	if req.MaxJobs > 0 {
		tenant.MaxJobs = req.MaxJobs
	}
	if req.MaxResumesPerMonth > 0 {
		tenant.MaxResumesPerMonth = req.MaxResumesPerMonth
	}

	if err := s.tenantRepo.Create(db, tenant); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tenant, nil
}

func (s *TenantServiceImpl) Get(db *gorm.DB, id uint) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTenantNotFound) {
			return nil, apperrors.ErrTenantNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return tenant, nil
}

func (s *TenantServiceImpl) List(db *gorm.DB, page, pageSize int) ([]models.Tenant, error) {
	offset := (page - 1) * pageSize
	tenants, err := s.tenantRepo.FindAll(db, pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tenants, nil
}

func (s *TenantServiceImpl) UpdateStatus(db *gorm.DB, id uint, status models.TenantStatus) (*models.Tenant, error) {
	if err := s.tenantRepo.UpdateStatus(db, id, status); err != nil {
		if apperrors.Is(err, repositories.ErrTenantNotFound) {
			return nil, apperrors.ErrTenantNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return s.Get(db, id)
}

// EnsureCapacity verifies the tenant exists, is active, and has room for one
// more account under its max_users plan limit.
func (s *TenantServiceImpl) EnsureCapacity(db *gorm.DB, tenantID uint) error {
	tenant, err := s.Get(db, tenantID)
	if err != nil {
		return err
	}
	if tenant.Status != models.TenantStatusActive {
		return apperrors.NewBadRequestError("Tenant is not active")
	}

	count, err := s.accountRepo.CountByTenant(db, tenantID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if count >= int64(tenant.MaxUsers) {
		return apperrors.TenantUserLimitError(tenant.MaxUsers)
	}
	return nil
}
