package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roonakyadav/pro-track-lite/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ProTrack in current directory or globally",
	Long: `Initialize ProTrack configuration.

Without flags: Creates .protrack/ in the current directory so this project keeps its own tasks.
With --global: Creates ~/.protrack/ with the default configuration.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("global", false, "Initialize global configuration at ~/.protrack/")
	initCmd.Flags().Bool("force", false, "Overwrite existing files")
	initCmd.Flags().String("backend", config.BackendFile, "Storage backend: 'file', 'sqlite' or 'redis'")
}

func runInit(cmd *cobra.Command, args []string) error {
	global, _ := cmd.Flags().GetBool("global")
	force, _ := cmd.Flags().GetBool("force")
	backend, _ := cmd.Flags().GetString("backend")

	// Validate backend option
	switch backend {
	case config.BackendFile, config.BackendSQLite, config.BackendRedis:
	default:
		return fmt.Errorf("invalid backend '%s': must be 'file', 'sqlite' or 'redis'", backend)
	}

	if global {
		return initGlobal(cmd.OutOrStdout(), force, backend)
	}
	if cmd.Flags().Changed("backend") {
		return fmt.Errorf("--backend applies to --global only; projects inherit the global backend")
	}
	return initProject(cmd.OutOrStdout(), force)
}

func initGlobal(w io.Writer, force bool, backend string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ptHome := filepath.Join(home, ".protrack")
	configPath := filepath.Join(ptHome, "config.yaml")

	// Check existing
	if exists(configPath) && !force {
		return fmt.Errorf("~/.protrack/config.yaml already exists (use --force to overwrite)")
	}

	// Create directory structure
	dirs := []string{
		ptHome,
		filepath.Join(ptHome, "data"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	// Create default config with selected backend
	if err := config.WriteDefaultWithBackend(configPath, backend); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(w, "Initialized global ProTrack at ~/.protrack/ with %s storage\n", backend)
	if backend == config.BackendRedis {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "IMPORTANT: the redis backend needs a local server:")
		fmt.Fprintln(w, "  docker run -p 6379:6379 redis")
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Created:")
	fmt.Fprintln(w, "  ~/.protrack/config.yaml  - Configuration")
	fmt.Fprintln(w, "  ~/.protrack/data/        - Task storage (file backend)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  1. Add a task: protrack add \"My first task\" --due YYYY-MM-DD")
	fmt.Fprintln(w, "  2. List tasks: protrack")

	return nil
}

func initProject(w io.Writer, force bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	ptDir := filepath.Join(cwd, ".protrack")

	// Check existing
	if exists(ptDir) && !force {
		return fmt.Errorf(".protrack already exists (use --force to overwrite)")
	}

	// Create directory structure
	dirs := []string{
		ptDir,
		filepath.Join(ptDir, "data"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	// Create project config
	configPath := filepath.Join(ptDir, "config.yaml")
	if err := config.WriteProjectDefault(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintln(w, "Initialized ProTrack in current project")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Created:")
	fmt.Fprintln(w, "  .protrack/config.yaml  - Project configuration")
	fmt.Fprintln(w, "  .protrack/data/        - Project tasks")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Tasks added from this directory are now kept with the project.")

	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
