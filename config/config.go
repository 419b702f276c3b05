package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AppConfig is the process configuration, read once at startup.
type AppConfig struct {
	Port            string
	DSN             string
	DataDir         string
	SettingsKey     string         // opaque identity key for the settings row
	DisplayZone     *time.Location // calendar-day bucketing and display formatting
	LocationName    string
	Location        orb.Point // deployment site, lon/lat
	WeatherAPIKey   string
	WeatherAPIURL   string
	EraseSecretHash string // bcrypt hash; empty disables the erase endpoint
	SeedDemoData    bool
}

var (
	DB  *gorm.DB
	App AppConfig
)

// Load reads .env and the environment into App. Restart-safe: every
// value is re-derived from the environment, nothing is persisted.
func Load() error {
	// A missing .env file is fine; the system environment applies.
	_ = godotenv.Load()

	zone, err := time.LoadLocation(getEnv("BUCKET_TZ", "Asia/Kolkata"))
	if err != nil {
		return fmt.Errorf("invalid BUCKET_TZ: %w", err)
	}

	lat, err := strconv.ParseFloat(getEnv("LOCATION_LAT", "20.2983"), 64)
	if err != nil {
		return fmt.Errorf("invalid LOCATION_LAT: %w", err)
	}
	lon, err := strconv.ParseFloat(getEnv("LOCATION_LON", "86.7215"), 64)
	if err != nil {
		return fmt.Errorf("invalid LOCATION_LON: %w", err)
	}

	App = AppConfig{
		Port:            getEnv("PORT", "8080"),
		DSN:             os.Getenv("DB_DSN"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		SettingsKey:     getEnv("SETTINGS_KEY", "default"),
		DisplayZone:     zone,
		LocationName:    getEnv("LOCATION_NAME", "Chikitigarh"),
		Location:        orb.Point{lon, lat},
		WeatherAPIKey:   os.Getenv("OPENWEATHER_API_KEY"),
		WeatherAPIURL:   getEnv("WEATHER_API_URL", "https://api.openweathermap.org/data/2.5/weather"),
		EraseSecretHash: os.Getenv("ERASE_SECRET_HASH"),
		SeedDemoData:    getEnv("SEED_DEMO_DATA", "false") == "true",
	}

	return os.MkdirAll(App.DataDir, 0o755)
}

// Connect opens the database and runs migrations.
func Connect() error {
	db, err := gorm.Open(postgres.Open(App.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	DB = db

	if err := Migrations(DB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
