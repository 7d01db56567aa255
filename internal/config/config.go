package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/gifnar/volunteerlog/internal/store"
)

// Config holds application configuration.
type Config struct {
	DBPath    string `mapstructure:"db_path"`
	ExportDir string `mapstructure:"export_dir"`
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
}

const (
	KeyDBPath    = "db_path"
	KeyExportDir = "export_dir"
	KeyLogFile   = "log_file"
	KeyLogLevel  = "log_level"
)

// SetDefaults registers built-in defaults on v.
func SetDefaults(v *viper.Viper) error {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return fmt.Errorf("default db path: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}

	v.SetDefault(KeyDBPath, dbPath)
	v.SetDefault(KeyExportDir, home)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
	return nil
}

// Load reads the optional YAML config file into v and decodes the result.
// An explicit file that does not exist is an error; a missing file in the
// default location is not.
func Load(v *viper.Viper, file string) (Config, error) {
	if err := SetDefaults(v); err != nil {
		return Config{}, err
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		dir, err := DefaultDir()
		if err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// DefaultDir returns ~/.config/volunteerlog
func DefaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "volunteerlog"), nil
}
