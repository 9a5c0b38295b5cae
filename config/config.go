package config

// Config contains all configuration grouped by domain
type Config struct {
	Server    ServerConfig
	Artifacts ArtifactConfig
	Logging   LoggingConfig
	Database  DatabaseConfig
	History   HistoryConfig
	JWT       JWTConfig
	Worker    WorkerConfig
}

// All config structs use string fields only - packages handle conversion during initialization
type ServerConfig struct {
	Port           string
	Environment    string
	ReadTimeout    string
	WriteTimeout   string
	TrustedProxies string
}

// ArtifactConfig points at the exported scaler and model files
type ArtifactConfig struct {
	ModelPath          string
	StandardScalerPath string
	MinMaxScalerPath   string
	LabelsPath         string
}

type LoggingConfig struct {
	Level       string
	Format      string
	File        string
	ServiceName string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string
}

type HistoryConfig struct {
	Enabled   string
	Retention string
}

type JWTConfig struct {
	Secret string
}

type WorkerConfig struct {
	PruneInterval string
}
