package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roonakyadav/pro-track-lite/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Version != "1" {
		t.Errorf("Expected version '1', got '%s'", cfg.Version)
	}

	if cfg.Storage.Backend != BackendFile {
		t.Errorf("Expected storage backend 'file', got '%s'", cfg.Storage.Backend)
	}

	if cfg.Storage.Key != "protrack-tasks" {
		t.Errorf("Expected storage key 'protrack-tasks', got '%s'", cfg.Storage.Key)
	}

	if cfg.IDs.Generator != GeneratorUUID {
		t.Errorf("Expected uuid generator, got '%s'", cfg.IDs.Generator)
	}

	if cfg.Analytics.SeriesDays != 7 {
		t.Errorf("Expected 7 series days, got %d", cfg.Analytics.SeriesDays)
	}
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	if !strings.Contains(string(content), "backend: file") {
		t.Error("Expected 'backend: file' in config")
	}
}

func TestWriteDefaultWithBackend_Redis(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	if err := WriteDefaultWithBackend(path, BackendRedis); err != nil {
		t.Fatalf("WriteDefaultWithBackend failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	// Redis section should be uncommented for the redis backend
	if !strings.Contains(string(content), "  redis:\n    addr: localhost:6379") {
		t.Error("Expected redis config to be uncommented for redis backend")
	}
}

func TestLoadMergesProjectOverGlobal(t *testing.T) {
	env := testutil.SetupTestEnv(t)

	env.CreateGlobalFile("config.yaml", `version: "1"
storage:
  backend: sqlite
ids:
  generator: nanoid
reminders:
  window_days: 2
`)
	env.CreateProjectFile(".protrack/config.yaml", `storage:
  backend: file
  path: .protrack/data
reminders:
  window_days: 5
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.Backend != BackendFile {
		t.Errorf("Expected project backend 'file', got '%s'", cfg.Storage.Backend)
	}
	if cfg.IDs.Generator != GeneratorNanoID {
		t.Errorf("Expected global generator 'nanoid' to survive, got '%s'", cfg.IDs.Generator)
	}
	if cfg.Reminders.WindowDays != 5 {
		t.Errorf("Expected window 5, got %d", cfg.Reminders.WindowDays)
	}

	want := filepath.Join(env.ProjectDir, ".protrack", "data")
	if cfg.Storage.Path != want {
		t.Errorf("Expected storage path %s, got %s", want, cfg.Storage.Path)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	testutil.SetupTestEnv(t)
	t.Setenv("PROTRACK_STORAGE_BACKEND", "memory")
	t.Setenv("PROTRACK_ANALYTICS_SERIES_DAYS", "14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("Expected backend 'memory', got '%s'", cfg.Storage.Backend)
	}
	if cfg.Analytics.SeriesDays != 14 {
		t.Errorf("Expected 14 series days, got %d", cfg.Analytics.SeriesDays)
	}
	if cfg.Storage.Key != DefaultTasksKey {
		t.Errorf("Expected default key to survive, got '%s'", cfg.Storage.Key)
	}
}

func TestResolvedPath(t *testing.T) {
	env := testutil.SetupTestEnv(t)

	file := StorageConfig{Backend: BackendFile}
	if got := file.ResolvedPath(); got != filepath.Join(env.GlobalDir, "data") {
		t.Errorf("Unexpected file path: %s", got)
	}

	sqlite := StorageConfig{Backend: BackendSQLite}
	if got := sqlite.ResolvedPath(); got != filepath.Join(env.GlobalDir, "protrack.db") {
		t.Errorf("Unexpected sqlite path: %s", got)
	}

	custom := StorageConfig{Path: "~/tasks"}
	if got := custom.ResolvedPath(); got != filepath.Join(env.Home, "tasks") {
		t.Errorf("Unexpected expanded path: %s", got)
	}
}
