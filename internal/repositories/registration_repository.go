package repositories

import (
	"errors"

	"gorm.io/gorm"

	"talentmatch_backend/internal/models"
)

var ErrRegistrationRequestNotFound = errors.New("registration request not found")

type RegistrationRequestRepository interface {
	Create(db *gorm.DB, req *models.RegistrationRequest) error
	FindByID(db *gorm.DB, id uint) (*models.RegistrationRequest, error)
	FindPendingByEmail(db *gorm.DB, email string) (*models.RegistrationRequest, error)
	FindByStatus(db *gorm.DB, status models.RegistrationStatus, limit, offset int) ([]models.RegistrationRequest, error)
	Update(db *gorm.DB, req *models.RegistrationRequest) error
}

type RegistrationRequestRepositoryImpl struct{}

func NewRegistrationRequestRepository() RegistrationRequestRepository {
	return &RegistrationRequestRepositoryImpl{}
}

func (r *RegistrationRequestRepositoryImpl) Create(db *gorm.DB, req *models.RegistrationRequest) error {
	return db.Create(req).Error
}

func (r *RegistrationRequestRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.RegistrationRequest, error) {
	var req models.RegistrationRequest
	err := db.First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RegistrationRequestRepositoryImpl) FindPendingByEmail(db *gorm.DB, email string) (*models.RegistrationRequest, error) {
	var req models.RegistrationRequest
	err := db.First(&req, "email = ? AND status = ?", email, models.RegistrationStatusPending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RegistrationRequestRepositoryImpl) FindByStatus(db *gorm.DB, status models.RegistrationStatus, limit, offset int) ([]models.RegistrationRequest, error) {
	var reqs []models.RegistrationRequest
	query := db.Limit(limit).Offset(offset).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&reqs).Error
	return reqs, err
}

func (r *RegistrationRequestRepositoryImpl) Update(db *gorm.DB, req *models.RegistrationRequest) error {
	return db.Save(req).Error
}
