package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PROTRACK_STORAGE_BACKEND
const EnvPrefix = "PROTRACK"

// envKeys are the settings that may be overridden from the environment
var envKeys = []string{
	"storage.backend",
	"storage.path",
	"storage.key",
	"storage.redis.addr",
	"storage.redis.password",
	"storage.redis.db",
	"ids.generator",
	"reminders.window_days",
	"analytics.series_days",
	"log.level",
	"log.format",
}

// Load loads and merges configuration from global, project and environment sources
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err == nil {
		// Load global config first
		if err := loadFile(filepath.Join(home, ".protrack", "config.yaml"), cfg); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("global config: %w", err)
		}
	}

	cwd, err := os.Getwd()
	if err == nil {
		// Load project config (overrides global)
		if err := loadFile(filepath.Join(cwd, ".protrack", "config.yaml"), cfg); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("project config: %w", err)
		}
	}

	if err := loadEnv(cfg); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	if err := v.Unmarshal(cfg); err != nil {
		return err
	}

	// A relative storage path in a config file is relative to that file's project
	if p := v.GetString("storage.path"); p != "" && !filepath.IsAbs(p) && !strings.HasPrefix(p, "~") {
		cfg.Storage.Path = filepath.Join(filepath.Dir(filepath.Dir(path)), p)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	v := viper.New()
	replacer := strings.NewReplacer(".", "_")
	set := false
	for _, key := range envKeys {
		name := EnvPrefix + "_" + strings.ToUpper(replacer.Replace(key))
		if val, ok := os.LookupEnv(name); ok {
			v.Set(key, val)
			set = true
		}
	}
	if !set {
		return nil
	}
	return v.Unmarshal(cfg)
}

// ResolvedPath returns the storage location with "~" expanded and the
// backend-specific default applied when no path is configured
func (s StorageConfig) ResolvedPath() string {
	if s.Path != "" {
		return ExpandHome(s.Path)
	}
	if s.Backend == BackendSQLite {
		return filepath.Join(GlobalDir(), "protrack.db")
	}
	return filepath.Join(GlobalDir(), "data")
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	return filepath.Join(ProjectDir(), "config.yaml")
}

// GlobalDir returns the path to the global ProTrack directory
func GlobalDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".protrack")
}

// ProjectDir returns the path to the project ProTrack directory
func ProjectDir() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, ".protrack")
}
