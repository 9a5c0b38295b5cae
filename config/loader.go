package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables as raw strings.
// A .env file in the working directory is applied first when present.
// Components handle validation and defaults during initialization
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:           os.Getenv("SERVER_PORT"),
			Environment:    os.Getenv("SERVER_ENV"),
			ReadTimeout:    os.Getenv("SERVER_READ_TIMEOUT"),
			WriteTimeout:   os.Getenv("SERVER_WRITE_TIMEOUT"),
			TrustedProxies: os.Getenv("SERVER_TRUSTED_PROXIES"),
		},
		Artifacts: ArtifactConfig{
			ModelPath:          os.Getenv("ARTIFACT_MODEL_PATH"),
			StandardScalerPath: os.Getenv("ARTIFACT_STANDARD_SCALER_PATH"),
			MinMaxScalerPath:   os.Getenv("ARTIFACT_MINMAX_SCALER_PATH"),
			LabelsPath:         os.Getenv("ARTIFACT_LABELS_PATH"),
		},
		Logging: LoggingConfig{
			Level:       os.Getenv("LOG_LEVEL"),
			Format:      os.Getenv("LOG_FORMAT"),
			File:        os.Getenv("LOG_FILE"),
			ServiceName: os.Getenv("SERVICE_NAME"),
		},
		Database: DatabaseConfig{
			Driver:   os.Getenv("DB_DRIVER"),
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
			Path:     os.Getenv("DB_PATH"),
		},
		History: HistoryConfig{
			Enabled:   os.Getenv("HISTORY_ENABLED"),
			Retention: os.Getenv("HISTORY_RETENTION"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		Worker: WorkerConfig{
			PruneInterval: os.Getenv("WORKER_PRUNE_INTERVAL"),
		},
	}
}
