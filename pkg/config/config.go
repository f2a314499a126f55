package config

import (
	"os"
	"strconv"
	"strings"
)

// DBConfig PostgreSQL connection settings
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	// URL takes precedence over the discrete fields when set.
	URL string `yaml:"url"`
}

// StorageConfig selects the persistence engine
type StorageConfig struct {
	Driver     string `yaml:"driver"` // postgres | sqlite
	SQLitePath string `yaml:"sqlite_path"`
}

// MQConfig RabbitMQ settings
type MQConfig struct {
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// RedisConfig Redis settings
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// JWTConfig token signing settings
type JWTConfig struct {
	Secret        string `yaml:"secret"`
	ExpireMinutes int    `yaml:"expire_minutes"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port        string   `yaml:"port"`
	UploadDir   string   `yaml:"upload_dir"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// LoggerConfig zap settings
type LoggerConfig struct {
	Mode       string `yaml:"mode"` // production | development
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// SMTPConfig outgoing mail settings for the notification worker
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// AdminConfig first-run admin account
type AdminConfig struct {
	BootstrapUsername string `yaml:"bootstrap_username"`
	BootstrapPassword string `yaml:"bootstrap_password"`
}

// OverrideDBFromEnv overrides database settings from the environment
func OverrideDBFromEnv(cfg *DBConfig) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.URL = url
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Name = name
	}
}

// OverrideStorageFromEnv overrides the storage driver selection
func OverrideStorageFromEnv(cfg *StorageConfig) {
	if driver := os.Getenv("STORAGE_DRIVER"); driver != "" {
		cfg.Driver = driver
	}
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		cfg.SQLitePath = path
	}
}

// OverrideMQFromEnv overrides MQ settings
func OverrideMQFromEnv(cfg *MQConfig) {
	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.URL = url
		cfg.Enabled = true
	}
}

// OverrideRedisFromEnv overrides Redis settings
func OverrideRedisFromEnv(cfg *RedisConfig) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}
}

// OverrideJWTFromEnv overrides JWT settings
func OverrideJWTFromEnv(cfg *JWTConfig) {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Secret = secret
	}
	if minutes := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); minutes != "" {
		if m, err := strconv.Atoi(minutes); err == nil {
			cfg.ExpireMinutes = m
		}
	}
}

// ListenAddr turns a bare port such as "8080" into ":8080"; host:port
// values pass through.
func ListenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// OverrideServerFromEnv overrides HTTP server settings
func OverrideServerFromEnv(cfg *ServerConfig) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = ListenAddr(port)
	}
	if port := os.Getenv("PORT"); port != "" && cfg.Port == "" {
		cfg.Port = ListenAddr(port)
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		cfg.UploadDir = dir
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
}

// OverrideSMTPFromEnv overrides SMTP settings
func OverrideSMTPFromEnv(cfg *SMTPConfig) {
	if host := os.Getenv("SMTP_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if user := os.Getenv("SMTP_USERNAME"); user != "" {
		cfg.Username = user
	}
	if password := os.Getenv("SMTP_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if from := os.Getenv("SMTP_FROM"); from != "" {
		cfg.From = from
	}
	if to := os.Getenv("NOTIFY_EMAIL_TO"); to != "" {
		cfg.To = to
	}
}

// OverrideAdminFromEnv overrides the bootstrap admin credentials
func OverrideAdminFromEnv(cfg *AdminConfig) {
	if user := os.Getenv("BOOTSTRAP_ADMIN_USERNAME"); user != "" {
		cfg.BootstrapUsername = user
	}
	if password := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"); password != "" {
		cfg.BootstrapPassword = password
	}
}
