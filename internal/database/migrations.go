package database

import (
	"gorm.io/gorm"

	"github.com/teambuilder-dev/teambuilder/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
//
// The unique indexes declared on Application and Invite are part of the
// correctness story, not just performance: they close the duplicate-apply
// and duplicate-pending-invite races at the storage layer.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Application{},
		&models.Invite{},
	)
}
