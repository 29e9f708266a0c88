package config

import (
	"os"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ID generators
const (
	GeneratorUUID   = "uuid"
	GeneratorNanoID = "nanoid"
)

// DefaultTasksKey is the storage key holding the task collection
const DefaultTasksKey = "protrack-tasks"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Storage: StorageConfig{
			Backend: BackendFile,
			Key:     DefaultTasksKey,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		IDs: IDConfig{
			Generator: GeneratorUUID,
		},
		Reminders: RemindersConfig{
			WindowDays: 1,
		},
		Analytics: AnalyticsConfig{
			SeriesDays: 7,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// WriteDefault writes the default global configuration to a file
func WriteDefault(path string) error {
	return WriteDefaultWithBackend(path, BackendFile)
}

// WriteDefaultWithBackend writes the default global configuration with a specific backend
func WriteDefaultWithBackend(path string, backend string) error {
	redisSection := `  # redis:
  #   addr: localhost:6379
  #   db: 0`

	if backend == BackendRedis {
		redisSection = `  redis:
    addr: localhost:6379
    db: 0`
	}

	content := `# ProTrack Global Configuration
version: "1"

# Task storage
storage:
  backend: ` + backend + `  # "file", "sqlite", "redis" or "memory"
  # path: ~/.protrack/data  # directory (file) or database file (sqlite)
  key: protrack-tasks
` + redisSection + `

# Task IDs: "uuid" (time-ordered) or "nanoid" (short)
ids:
  generator: uuid

# Remind about pending tasks due within this many days
reminders:
  window_days: 1

# Completion trend length in the stats view
analytics:
  series_days: 7

log:
  level: info   # debug, info, warn, error
  format: text  # text or json
`
	return os.WriteFile(path, []byte(content), 0644)
}

// WriteProjectDefault writes the default project configuration to a file
func WriteProjectDefault(path string) error {
	content := `# ProTrack Project Configuration
version: "1"

# Keep this project's tasks next to the code
storage:
  path: .protrack/data

# Override global settings as needed
# ids:
#   generator: nanoid
# reminders:
#   window_days: 3
`
	return os.WriteFile(path, []byte(content), 0644)
}
