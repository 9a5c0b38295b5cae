package database

import (
	"fmt"
	"strings"

	"github.com/dustin/crop-recommender/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLitePath = "crop_history.db"
)

// NewConnection opens the history database selected by cfg.Driver
func NewConnection(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driverName(cfg), err)
	}

	return db, nil
}

// Dialector builds the gorm dialector for the configured driver
func Dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch driverName(cfg) {
	case DriverPostgres:
		return postgres.Open(PostgresDSN(cfg)), nil
	case DriverSQLite:
		path := cfg.Path
		if path == "" {
			path = defaultSQLitePath
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", cfg.Driver)
	}
}

// PostgresDSN renders a libpq connection string with defaults applied
func PostgresDSN(cfg *config.DatabaseConfig) string {
	// Set defaults for empty config values
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == "" {
		port = "5432"
	}

	user := cfg.User
	if user == "" {
		user = "postgres"
	}

	dbName := cfg.DBName
	if dbName == "" {
		dbName = "crop_recommender"
	}

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	// Note: empty password is valid for local development

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, cfg.Password, dbName, port, sslMode)
}

func driverName(cfg *config.DatabaseConfig) string {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		return DriverPostgres
	}
	return driver
}
