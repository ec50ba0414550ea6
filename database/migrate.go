package database

import (
	"talentmatch_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all owned models. Tenants
// migrate first so the account foreign key can be created.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tenant{},
		&models.Account{},
		&models.RegistrationRequest{},
	)
}
