package config

import (
	"fmt"
	"log"
	"os"

	"ngi/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func getDBConfigByEnv(env, timezone string) (string, error) {
	var prefix string
	switch env {
	case "dev":
		prefix = "DEV"
	case "qc":
		prefix = "QC"
	case "prod":
		prefix = "PROD"
	default:
		return "", fmt.Errorf("unknown environment: %s", env)
	}

	get := func(name string) string { return os.Getenv(prefix + "_DB_" + name) }
	sslmode := get("SSLMODE")
	if sslmode == "" {
		sslmode = "require"
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		get("HOST"), get("USER"), get("PASSWORD"), get("NAME"), get("PORT"), sslmode, timezone), nil
}

// ConnectDB opens postgres from DATABASE_URL, or from the ENV-prefixed
// variables
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		var err error
		if dsn, err = getDBConfigByEnv(cfg.Env, cfg.Timezone); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}

	log.Println("Successfully connected to db")
	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
