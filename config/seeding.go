package config

import (
	"math/rand"
	"time"

	"gorm.io/gorm"

	"t9w.in/tankmon/models"
	"t9w.in/tankmon/pkg/tank"
)

// SeedDefaults creates the settings row for the configured identity if
// it does not exist yet.
func SeedDefaults(db *gorm.DB, now time.Time) error {
	var count int64
	if err := db.Model(&models.Settings{}).Where("user_id = ?", App.SettingsKey).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	settings := models.DefaultSettings(App.SettingsKey, now)
	return db.Create(&settings).Error
}

// SeedDemoReadings fills an empty readings table with 150 days of
// hourly synthetic samples so a fresh install renders a populated
// dashboard. Derived fields use the same conversion as ingestion.
// Skipped when any reading already exists.
func SeedDemoReadings(db *gorm.DB, now time.Time) error {
	var count int64
	if err := db.Model(&models.Reading{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(now.UnixNano()))
	start := now.AddDate(0, 0, -150).Truncate(time.Hour)

	var batch []models.Reading
	for ts := start; !ts.After(now); ts = ts.Add(time.Hour) {
		distance := tank.MinDistanceCM + rng.Float64()*(tank.MaxDistanceCM-tank.MinDistanceCM)
		c := tank.Convert(distance)
		batch = append(batch, models.Reading{
			Timestamp:   ts,
			Distance:    tank.Round2(distance),
			WaterLevel:  c.Level,
			WaterVolume: c.Volume,
			Status:      models.StatusValid,
		})
	}
	return db.CreateInBatches(&batch, 500).Error
}
