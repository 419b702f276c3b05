package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"t9w.in/tankmon/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250901_create_readings_and_settings",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Reading{}, &models.Settings{})
			},
		},
		{
			ID: "20250901_add_rejected_readings_audit",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.RejectedReading{})
			},
		},
	})
	return m.Migrate()
}
