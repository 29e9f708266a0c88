package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/roonakyadav/pro-track-lite/internal/config"
	"github.com/roonakyadav/pro-track-lite/internal/testutil"
)

func TestInitProject(t *testing.T) {
	// Cannot use t.Parallel() - modifies working directory
	env := testutil.SetupTestEnv(t)

	if err := initProject(io.Discard, false); err != nil {
		t.Fatalf("initProject failed: %v", err)
	}

	for _, path := range []string{".protrack", ".protrack/data", ".protrack/config.yaml"} {
		if !env.FileExists(path) {
			t.Errorf("Expected %s to exist", path)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := filepath.Join(env.ProjectDir, ".protrack", "data")
	if cfg.Storage.Path != want {
		t.Errorf("Expected project storage path %s, got %s", want, cfg.Storage.Path)
	}
}

func TestInitProjectAlreadyExists(t *testing.T) {
	// Cannot use t.Parallel() - modifies working directory
	env := testutil.SetupTestEnv(t)
	env.CreateProjectFile(".protrack/config.yaml", "version: \"1\"\n")

	// Should fail without --force
	if err := initProject(io.Discard, false); err == nil {
		t.Error("Expected initProject to fail when .protrack exists")
	}

	// Should succeed with --force
	if err := initProject(io.Discard, true); err != nil {
		t.Errorf("Expected initProject with force to succeed: %v", err)
	}
}

func TestInitGlobal(t *testing.T) {
	// Cannot use t.Parallel() - modifies HOME env var
	env := testutil.SetupTestEnv(t)

	out := &bytes.Buffer{}
	if err := initGlobal(out, false, config.BackendSQLite); err != nil {
		t.Fatalf("initGlobal failed: %v", err)
	}

	if !env.FileExists(filepath.Join(env.GlobalDir, "data")) {
		t.Error("Expected ~/.protrack/data to exist")
	}
	content := env.ReadFile(filepath.Join(env.GlobalDir, "config.yaml"))
	if !strings.Contains(content, "backend: sqlite") {
		t.Errorf("Expected sqlite backend in config:\n%s", content)
	}
	if !strings.Contains(out.String(), "with sqlite storage") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}

	if err := initGlobal(io.Discard, false, config.BackendFile); err == nil {
		t.Error("Expected initGlobal to fail when config exists")
	}
	if err := initGlobal(io.Discard, true, config.BackendFile); err != nil {
		t.Errorf("Expected initGlobal with force to succeed: %v", err)
	}
}

func TestDoctor(t *testing.T) {
	// Cannot use t.Parallel() - modifies HOME env var
	env := testutil.SetupTestEnv(t)
	ctx := context.Background()

	out := &bytes.Buffer{}
	_, failed := doctor(ctx, out)
	if failed != 1 {
		t.Errorf("Expected only the missing global config to fail, got %d failures:\n%s", failed, out.String())
	}

	if err := initGlobal(io.Discard, false, config.BackendFile); err != nil {
		t.Fatalf("initGlobal failed: %v", err)
	}
	out.Reset()
	if _, failed := doctor(ctx, out); failed != 0 {
		t.Errorf("Expected all checks to pass:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "no tasks saved yet") {
		t.Errorf("Expected empty storage note:\n%s", out.String())
	}

	env.CreateGlobalFile("data/protrack-tasks.json", "{not json")
	out.Reset()
	if _, failed := doctor(ctx, out); failed != 1 {
		t.Errorf("Expected the corrupt collection to fail:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "task collection valid") {
		t.Errorf("Expected validity check in output:\n%s", out.String())
	}
}

func TestOpenAppUsesConfiguredStorage(t *testing.T) {
	// Cannot use t.Parallel() - modifies HOME env var
	env := testutil.SetupTestEnv(t)
	if err := initProject(io.Discard, false); err != nil {
		t.Fatalf("initProject failed: %v", err)
	}
	env.CreateProjectFile(".protrack/data/protrack-tasks.json", testutil.LegacyBlob)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)

	a, err := openApp(cmd)
	if err != nil {
		t.Fatalf("openApp failed: %v", err)
	}
	defer a.Close()

	if a.store.Len() != 2 {
		t.Fatalf("Expected 2 tasks from the project store, got %d", a.store.Len())
	}
	if err := a.toggle(context.Background(), "1704873600000"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), "Completed") {
		t.Errorf("Expected output on the command's writer, got %q", out.String())
	}

	saved := env.ReadFile(".protrack/data/protrack-tasks.json")
	if !strings.Contains(saved, `"status":"completed","completedAt":"`) {
		t.Errorf("Expected toggled task to be saved:\n%s", saved)
	}
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}

	logger, err := newLogger(config.LogConfig{Level: "warn", Format: "json"}, false, buf)
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("Expected info to be filtered at warn level")
	}
	if !strings.Contains(buf.String(), `"msg":"shown"`) {
		t.Errorf("Expected JSON log line, got %q", buf.String())
	}

	buf.Reset()
	logger, err = newLogger(config.LogConfig{Level: "error"}, true, buf)
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	logger.Debug("verbose wins")
	if !strings.Contains(buf.String(), "verbose wins") {
		t.Error("Expected --verbose to enable debug output")
	}

	if _, err := newLogger(config.LogConfig{Level: "loud"}, false, buf); err == nil {
		t.Error("Expected error for unknown level")
	}
	if _, err := newLogger(config.LogConfig{Format: "xml"}, false, buf); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestConfigPathAndShow(t *testing.T) {
	// Cannot use t.Parallel() - modifies HOME env var
	env := testutil.SetupTestEnv(t)

	out := &bytes.Buffer{}
	if err := printConfigPaths(out); err != nil {
		t.Fatalf("printConfigPaths failed: %v", err)
	}
	globalLine := "Global config:  " + filepath.Join(env.GlobalDir, "config.yaml") + " (missing)"
	if !strings.Contains(out.String(), globalLine) {
		t.Errorf("Expected %q in output:\n%s", globalLine, out.String())
	}
	dataLine := filepath.Join(env.GlobalDir, "data") + " (file, key protrack-tasks)"
	if !strings.Contains(out.String(), dataLine) {
		t.Errorf("Expected default task location %q:\n%s", dataLine, out.String())
	}

	if err := initGlobal(io.Discard, false, config.BackendSQLite); err != nil {
		t.Fatalf("initGlobal failed: %v", err)
	}
	out.Reset()
	if err := printConfigPaths(out); err != nil {
		t.Fatalf("printConfigPaths failed: %v", err)
	}
	if strings.Contains(out.String(), "Global config:  "+filepath.Join(env.GlobalDir, "config.yaml")+" (missing)") {
		t.Errorf("Expected global config to be found:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "(sqlite, key protrack-tasks)") {
		t.Errorf("Expected sqlite task location:\n%s", out.String())
	}

	out.Reset()
	if err := showConfig(out); err != nil {
		t.Fatalf("showConfig failed: %v", err)
	}
	for _, want := range []string{"backend: sqlite", "key: protrack-tasks", "window_days: 1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in merged config:\n%s", want, out.String())
		}
	}
}

func TestConfigFileMustExist(t *testing.T) {
	// Cannot use t.Parallel() - modifies working directory
	env := testutil.SetupTestEnv(t)

	if _, err := configFile(false); err == nil || !strings.Contains(err.Error(), "run: protrack init") {
		t.Errorf("Expected missing project config error, got %v", err)
	}
	if _, err := configFile(true); err == nil || !strings.Contains(err.Error(), "run: protrack init --global") {
		t.Errorf("Expected missing global config error, got %v", err)
	}

	env.CreateProjectFile(".protrack/config.yaml", "version: \"1\"\n")
	path, err := configFile(false)
	if err != nil {
		t.Fatalf("configFile failed: %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("Expected the project config.yaml, got %s", path)
	}
}
