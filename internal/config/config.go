// Package config assembles the settings shared by the api and worker
// binaries.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"wefixit/pkg/config"
)

const DevJWTSecret = "dev-secret-change-me"

type Config struct {
	DB      config.DBConfig      `yaml:"db"`
	Storage config.StorageConfig `yaml:"storage"`
	MQ      config.MQConfig      `yaml:"mq"`
	Redis   config.RedisConfig   `yaml:"redis"`
	JWT     config.JWTConfig     `yaml:"jwt"`
	Server  config.ServerConfig  `yaml:"server"`
	Logger  config.LoggerConfig  `yaml:"logger"`
	SMTP    config.SMTPConfig    `yaml:"smtp"`
	Admin   config.AdminConfig   `yaml:"admin"`

	DedupeTTLMinutes int `yaml:"dedupe_ttl_minutes"`
	// DigestSchedule is the cron spec of the pending-review digest mail.
	// "off" disables it.
	DigestSchedule string `yaml:"digest_schedule"`
}

const DigestOff = "off"

// Load reads CONFIG_FILE (default config.yaml) plus its CONFIG_ENV overlay,
// applies environment overrides and fills in defaults.
func Load() (*Config, error) {
	path := config.GetEnv("CONFIG_FILE", "config.yaml")
	var cfg Config
	if err := config.LoadFile(path, config.GetConfigEnv(), &cfg); err != nil {
		return nil, err
	}

	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideStorageFromEnv(&cfg.Storage)
	config.OverrideMQFromEnv(&cfg.MQ)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideJWTFromEnv(&cfg.JWT)
	config.OverrideServerFromEnv(&cfg.Server)
	config.OverrideSMTPFromEnv(&cfg.SMTP)
	config.OverrideAdminFromEnv(&cfg.Admin)
	cfg.DigestSchedule = config.GetEnv("DIGEST_SCHEDULE", cfg.DigestSchedule)

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	c.Storage.Driver = strings.ToLower(c.Storage.Driver)
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "data/wefixit.db"
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = DevJWTSecret
	}
	if c.JWT.ExpireMinutes <= 0 {
		c.JWT.ExpireMinutes = 60 * 24
	}
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	c.Server.Port = config.ListenAddr(c.Server.Port)
	if c.Server.UploadDir == "" {
		c.Server.UploadDir = "uploads"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}
	if c.Logger.Mode == "" {
		c.Logger.Mode = "production"
	}
	if c.Logger.Filename == "" {
		c.Logger.Filename = "logs/wefixit.log"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.From == "" {
		c.SMTP.From = c.SMTP.Username
	}
	if c.DedupeTTLMinutes <= 0 {
		c.DedupeTTLMinutes = 10
	}
	if c.DigestSchedule == "" {
		c.DigestSchedule = "0 9 * * 1-5"
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite":
	case "postgres":
		if c.DB.URL == "" && c.DB.Host == "" {
			return fmt.Errorf("storage driver postgres needs db.url or db.host")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.MQ.Enabled && c.MQ.URL == "" {
		return fmt.Errorf("mq.enabled is set but mq.url is empty")
	}
	if c.DigestSchedule != DigestOff {
		if _, err := cron.ParseStandard(c.DigestSchedule); err != nil {
			return fmt.Errorf("invalid digest_schedule %q: %w", c.DigestSchedule, err)
		}
	}
	return nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpireMinutes) * time.Minute
}

func (c *Config) DedupeTTL() time.Duration {
	return time.Duration(c.DedupeTTLMinutes) * time.Minute
}

// SMTPEnabled reports whether notifications can actually be mailed.
func (c *Config) SMTPEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.To != ""
}
