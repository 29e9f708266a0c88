package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roonakyadav/pro-track-lite/internal/config"
	"github.com/roonakyadav/pro-track-lite/internal/storage"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check ProTrack installation health",
	Long:  `Runs diagnostic checks on the configuration and task storage and reports pass/fail for each.`,
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	_, failed := doctor(cmd.Context(), cmd.OutOrStdout())
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

// doctor runs every check, printing one line per check
func doctor(ctx context.Context, w io.Writer) (passed, failed int) {
	check := func(name string, ok bool, detail string) {
		if ok {
			fmt.Fprintf(w, "  ✓ %s\n", name)
			passed++
		} else {
			fmt.Fprintf(w, "  ✗ %s: %s\n", name, detail)
			failed++
		}
	}

	// Global installation
	fmt.Fprintln(w, "Global configuration:")
	globalDir := config.GlobalDir()
	check("~/.protrack/ directory", exists(globalDir), "run: protrack init --global")
	check("~/.protrack/config.yaml", exists(config.GlobalConfigPath()), "run: protrack init --global")

	cfg, cfgErr := config.Load()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Storage:")
	if cfgErr != nil {
		check("config readable", false, cfgErr.Error())
	} else {
		check("config readable", true, "")
		checkStorage(ctx, w, cfg.Storage, check)
	}

	// Project init
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Project (current directory):")
	cwd, _ := os.Getwd()
	projectDir := filepath.Join(cwd, ".protrack")
	if exists(projectDir) {
		check(".protrack/config.yaml", exists(filepath.Join(projectDir, "config.yaml")), "run: protrack init --force")
	} else {
		fmt.Fprintln(w, "  → not initialized, using global storage")
	}

	// Summary
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Results: %d passed, %d failed\n", passed, failed)
	return passed, failed
}

func checkStorage(ctx context.Context, w io.Writer, sc config.StorageConfig, check func(string, bool, string)) {
	backend := sc.Backend
	if backend == "" {
		backend = config.BackendFile
	}
	fmt.Fprintf(w, "  → backend: %s\n", backend)
	switch backend {
	case config.BackendFile, config.BackendSQLite:
		fmt.Fprintf(w, "  → location: %s\n", sc.ResolvedPath())
	case config.BackendRedis:
		fmt.Fprintf(w, "  → address: %s (db %d)\n", sc.Redis.Addr, sc.Redis.DB)
	}

	key := sc.Key
	if key == "" {
		key = config.DefaultTasksKey
	}
	check("storage key valid", storage.ValidateKey(key) == nil, fmt.Sprintf("%q may only contain letters, digits, '.', '_' and '-'", key))

	b, err := storage.Open(sc)
	if err != nil {
		check("storage opens", false, err.Error())
		return
	}
	defer b.Close()
	check("storage opens", true, "")

	if r, ok := b.(*storage.RedisBackend); ok {
		err := r.Ping(ctx)
		check("redis reachable", err == nil, fmt.Sprintf("%v", err))
		if err != nil {
			return
		}
	}

	data, err := b.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		fmt.Fprintln(w, "  → no tasks saved yet")
		return
	case err != nil:
		check("task collection readable", false, err.Error())
		return
	}
	check("task collection readable", true, "")

	tasks, rejected, err := storage.Decode(data)
	check("task collection valid", err == nil, fmt.Sprintf("%v (it will be replaced on the next change)", err))
	if err != nil {
		return
	}
	fmt.Fprintf(w, "  → %d task(s)\n", len(tasks))
	check("task records consistent", len(rejected) == 0, fmt.Sprintf("%d record(s) will be dropped on the next change", len(rejected)))
}
