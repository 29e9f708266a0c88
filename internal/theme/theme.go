// Package theme stores the light/dark display preference next to the tasks.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/roonakyadav/pro-track-lite/internal/storage"
)

// Key is the storage key holding the preference
const Key = "theme"

// Theme is a display mode
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse accepts "light" or "dark" in any case
func Parse(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Light, Dark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// Opposite returns the other theme
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Preference reads and writes the theme through a backend
type Preference struct {
	backend storage.Backend
}

// NewPreference creates a Preference over backend
func NewPreference(backend storage.Backend) *Preference {
	return &Preference{backend: backend}
}

// Load returns the stored theme. A missing or unrecognized value is Light.
func (p *Preference) Load(ctx context.Context) (Theme, error) {
	data, err := p.backend.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return Light, nil
	}
	if err != nil {
		return Light, &storage.PersistenceError{Op: "load", Key: Key, Err: err}
	}
	t, err := Parse(string(data))
	if err != nil {
		return Light, nil
	}
	return t, nil
}

// Set stores t
func (p *Preference) Set(ctx context.Context, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}
	if err := p.backend.Set(ctx, Key, []byte(t)); err != nil {
		return &storage.PersistenceError{Op: "save", Key: Key, Err: err}
	}
	return nil
}

// Toggle switches to the other theme and returns it
func (p *Preference) Toggle(ctx context.Context) (Theme, error) {
	current, err := p.Load(ctx)
	if err != nil {
		return current, err
	}
	next := current.Opposite()
	if err := p.Set(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}
