package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roonakyadav/pro-track-lite/internal/config"
	"github.com/roonakyadav/pro-track-lite/internal/storage"
	"github.com/roonakyadav/pro-track-lite/internal/store"
	"github.com/roonakyadav/pro-track-lite/internal/task"
	"github.com/roonakyadav/pro-track-lite/internal/theme"
)

// app is the state shared by the task commands for one invocation
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend storage.Backend
	store   *store.Store
	theme   *theme.Preference
	now     func() time.Time
	out     io.Writer
	in      io.Reader
}

// openApp loads the configuration and opens the configured backend
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.Log, verbose, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	gen, err := store.NewIDGenerator(cfg.IDs.Generator)
	if err != nil {
		backend.Close()
		return nil, err
	}

	a, err := newApp(cmd.Context(), cfg, backend, logger, store.WithIDGenerator(gen))
	if err != nil {
		backend.Close()
		return nil, err
	}
	a.out = cmd.OutOrStdout()
	a.in = cmd.InOrStdin()
	return a, nil
}

// newApp builds an app over an already opened backend
func newApp(ctx context.Context, cfg *config.Config, backend storage.Backend, logger *slog.Logger, opts ...store.Option) (*app, error) {
	key := cfg.Storage.Key
	if key == "" {
		key = config.DefaultTasksKey
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		theme:   theme.NewPreference(backend),
		now:     time.Now,
		out:     os.Stdout,
		in:      os.Stdin,
	}

	opts = append([]store.Option{
		store.WithLogger(logger),
		store.WithClock(func() time.Time { return a.now() }),
	}, opts...)

	s, err := store.Open(ctx, storage.NewAdapter(backend, key, logger), opts...)
	if err != nil {
		return nil, err
	}
	a.store = s
	a.store.Subscribe(a.report)

	logger.Debug("task store opened", "backend", cfg.Storage.Backend, "key", key, "tasks", s.Len())
	return a, nil
}

func (a *app) Close() error {
	return a.backend.Close()
}

// resolve expands a possibly abbreviated task ID
func (a *app) resolve(ref string) (string, error) {
	id, err := a.store.Resolve(ref)
	if errors.Is(err, store.ErrAmbiguous) {
		return "", fmt.Errorf("%w (use more characters of the id)", err)
	}
	return id, err
}

// report prints a confirmation for every persisted change
func (a *app) report(c store.Change) {
	if !c.Applied {
		return
	}
	switch c.Kind {
	case store.KindAdded:
		fmt.Fprintf(a.out, "Added %s  %s\n", a.shortID(c.ID), c.Task.Title)
	case store.KindEdited:
		fmt.Fprintf(a.out, "Updated %s  %s\n", a.shortID(c.ID), c.Task.Title)
	case store.KindDeleted:
		fmt.Fprintf(a.out, "Deleted %s  %s\n", a.shortID(c.ID), c.Task.Title)
	case store.KindToggled:
		if c.Task.Status == task.StatusCompleted {
			fmt.Fprintf(a.out, "Completed %s  %s\n", a.shortID(c.ID), c.Task.Title)
		} else {
			fmt.Fprintf(a.out, "Reopened %s  %s\n", a.shortID(c.ID), c.Task.Title)
		}
	}
}

// newLogger builds the slog logger described by the log section.
// verbose forces the debug level.
func newLogger(cfg config.LogConfig, verbose bool, w io.Writer) (*slog.Logger, error) {
	level := slog.LevelInfo
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q", cfg.Level)
		}
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", cfg.Format)
	}
}

// minIDLen is the shortest ID prefix shown to the user
const minIDLen = 8

// abbreviator returns a function shortening IDs to the shortest prefix,
// at least minIDLen long, that is unique among ids
func abbreviator(ids []string) func(string) string {
	maxLen := 0
	for _, id := range ids {
		if len(id) > maxLen {
			maxLen = len(id)
		}
	}

	n := minIDLen
	for ; n < maxLen; n++ {
		seen := make(map[string]bool, len(ids))
		unique := true
		for _, id := range ids {
			p := prefix(id, n)
			if seen[p] {
				unique = false
				break
			}
			seen[p] = true
		}
		if unique {
			break
		}
	}
	return func(id string) string { return prefix(id, n) }
}

func prefix(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func (a *app) shortID(id string) string {
	ids := a.store.Tasks().IDs()
	if _, ok := a.store.Get(id); !ok {
		ids = append(ids, id)
	}
	return abbreviator(ids)(id)
}
