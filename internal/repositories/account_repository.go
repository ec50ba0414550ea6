package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"talentmatch_backend/internal/models"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
)

// AccountRepository persists accounts. Methods take the *gorm.DB handle
// explicitly so handlers can thread a per-request connection or a test
// transaction through the context.
type AccountRepository interface {
	FindByID(db *gorm.DB, id uint) (*models.Account, error)
	FindByEmail(db *gorm.DB, email string) (*models.Account, error)
	Create(db *gorm.DB, account *models.Account) error
	Update(db *gorm.DB, account *models.Account) error
	UpdateLastLogin(db *gorm.DB, id uint, at time.Time) error
	CountByTenant(db *gorm.DB, tenantID uint) (int64, error)
	FindAll(db *gorm.DB, limit, offset int) ([]models.Account, error)
}

type AccountRepositoryImpl struct{}

func NewAccountRepository() AccountRepository {
	return &AccountRepositoryImpl{}
}

func (r *AccountRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Account, error) {
	var account models.Account
	err := db.First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Account, error) {
	var account models.Account
	err := db.First(&account, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) Create(db *gorm.DB, account *models.Account) error {
	// Email uniqueness is tenant-scoped; platform accounts (NULL tenant)
	// share one global namespace.
	var existing models.Account
	query := db.Where("email = ?", account.Email)
	if account.TenantID != nil {
		query = query.Where("tenant_id = ?", *account.TenantID)
	} else {
		query = query.Where("tenant_id IS NULL")
	}
	if err := query.First(&existing).Error; err == nil {
		return ErrAccountAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Create(account).Error
}

func (r *AccountRepositoryImpl) Update(db *gorm.DB, account *models.Account) error {
	return db.Save(account).Error
}

func (r *AccountRepositoryImpl) UpdateLastLogin(db *gorm.DB, id uint, at time.Time) error {
	return db.Model(&models.Account{}).Where("id = ?", id).
		Update("last_login", at).Error
}

func (r *AccountRepositoryImpl) CountByTenant(db *gorm.DB, tenantID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Account{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

func (r *AccountRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.Account, error) {
	var accounts []models.Account
	err := db.Limit(limit).Offset(offset).Order("id").Find(&accounts).Error
	return accounts, err
}
