package repositories

import (
	"errors"

	"gorm.io/gorm"

	"talentmatch_backend/internal/models"
)

var ErrTenantNotFound = errors.New("tenant not found")

type TenantRepository interface {
	Create(db *gorm.DB, tenant *models.Tenant) error
	FindByID(db *gorm.DB, id uint) (*models.Tenant, error)
	FindAll(db *gorm.DB, limit, offset int) ([]models.Tenant, error)
	Update(db *gorm.DB, tenant *models.Tenant) error
	UpdateStatus(db *gorm.DB, id uint, status models.TenantStatus) error
}

type TenantRepositoryImpl struct{}

func NewTenantRepository() TenantRepository {
	return &TenantRepositoryImpl{}
}

func (r *TenantRepositoryImpl) Create(db *gorm.DB, tenant *models.Tenant) error {
	return db.Create(tenant).Error
}

func (r *TenantRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := db.First(&tenant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := db.Limit(limit).Offset(offset).Order("id").Find(&tenants).Error
	return tenants, err
}

func (r *TenantRepositoryImpl) Update(db *gorm.DB, tenant *models.Tenant) error {
	return db.Save(tenant).Error
}

func (r *TenantRepositoryImpl) UpdateStatus(db *gorm.DB, id uint, status models.TenantStatus) error {
	result := db.Model(&models.Tenant{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTenantNotFound
	}
	return nil
}
