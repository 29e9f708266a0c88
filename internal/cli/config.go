package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roonakyadav/pro-track-lite/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit ProTrack configuration",
	Long: `Inspect or edit ProTrack configuration.

Settings are merged from ~/.protrack/config.yaml, then .protrack/config.yaml
in the current directory, then PROTRACK_* environment variables.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open a configuration file in $EDITOR",
	Args:  cobra.NoArgs,
	RunE:  runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where configuration and tasks are stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printConfigPaths(cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configEditCmd, configPathCmd)

	configEditCmd.Flags().Bool("global", false, "Edit ~/.protrack/config.yaml instead of the project file")
}

func showConfig(w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// printConfigPaths lists both config files and the resolved task location
func printConfigPaths(w io.Writer) error {
	mark := func(path string) string {
		if exists(path) {
			return path
		}
		return path + " (missing)"
	}
	fmt.Fprintf(w, "Global config:  %s\n", mark(config.GlobalConfigPath()))
	fmt.Fprintf(w, "Project config: %s\n", mark(config.ProjectConfigPath()))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		fmt.Fprintf(w, "Tasks:          redis://%s/%d key %s\n", cfg.Storage.Redis.Addr, cfg.Storage.Redis.DB, cfg.Storage.Key)
	default:
		fmt.Fprintf(w, "Tasks:          %s (%s, key %s)\n", cfg.Storage.ResolvedPath(), cfg.Storage.Backend, cfg.Storage.Key)
	}
	return nil
}

// configFile picks the file config edit opens; it must already exist
func configFile(global bool) (string, error) {
	path, initHint := config.ProjectConfigPath(), "protrack init"
	if global {
		path, initHint = config.GlobalConfigPath(), "protrack init --global"
	}
	if !exists(path) {
		return "", fmt.Errorf("%s does not exist (run: %s)", path, initHint)
	}
	return path, nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	global, _ := cmd.Flags().GetBool("global")
	path, err := configFile(global)
	if err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	return c.Run()
}
