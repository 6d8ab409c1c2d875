package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds application configuration, loaded from environment
// variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	DataBackend    string `mapstructure:"DATA_BACKEND"`
	DataFile       string `mapstructure:"DATA_FILE"`
	DBConn         string `mapstructure:"DB_CONN"`
	BackupSchedule string `mapstructure:"BACKUP_SCHEDULE"`
	BackupDir      string `mapstructure:"BACKUP_DIR"`
	StaticDir      string `mapstructure:"STATIC_DIR"`
}

// Load reads configuration from the environment, applying defaults for
// anything unset. DATA_BACKEND selects the snapshot store: "file"
// (default) or "postgres".
func Load() (Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATA_BACKEND", "file")
	viper.SetDefault("DATA_FILE", "data.json")
	viper.SetDefault("BACKUP_SCHEDULE", "")
	viper.SetDefault("BACKUP_DIR", "backups")
	viper.SetDefault("STATIC_DIR", "public")

	keys := []string{
		"PORT", "LOG_LEVEL", "DATA_BACKEND", "DATA_FILE",
		"DB_CONN", "BACKUP_SCHEDULE", "BACKUP_DIR", "STATIC_DIR",
	}
	for _, key := range keys {
		_ = viper.BindEnv(key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.DataBackend {
	case "file":
	case "postgres":
		if cfg.DBConn == "" {
			return Config{}, fmt.Errorf("DB_CONN is required when DATA_BACKEND=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unknown DATA_BACKEND %q", cfg.DataBackend)
	}

	return cfg, nil
}
