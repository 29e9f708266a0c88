package config

// Config represents the full ProTrack configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// Where the task collection and theme preference live
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Task ID generation
	IDs IDConfig `yaml:"ids" mapstructure:"ids"`

	// Due date reminders
	Reminders RemindersConfig `yaml:"reminders" mapstructure:"reminders"`

	// Analytics view
	Analytics AnalyticsConfig `yaml:"analytics" mapstructure:"analytics"`

	// Logging
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// StorageConfig selects and configures the key-value backend
type StorageConfig struct {
	Backend string      `yaml:"backend" mapstructure:"backend"`
	Path    string      `yaml:"path,omitempty" mapstructure:"path"`
	Key     string      `yaml:"key" mapstructure:"key"`
	Redis   RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig configures the local Redis backend
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password,omitempty" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

// IDConfig selects the task ID generator
type IDConfig struct {
	Generator string `yaml:"generator" mapstructure:"generator"`
}

// RemindersConfig configures the due-soon check
type RemindersConfig struct {
	WindowDays int `yaml:"window_days" mapstructure:"window_days"`
}

// AnalyticsConfig configures the statistics view
type AnalyticsConfig struct {
	SeriesDays int `yaml:"series_days" mapstructure:"series_days"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}
