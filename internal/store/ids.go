package store

import (
	"fmt"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"

	"github.com/roonakyadav/pro-track-lite/internal/config"
)

// IDGenerator produces task IDs
type IDGenerator func() (string, error)

// UUIDGenerator returns time-ordered UUIDv7 strings
func UUIDGenerator() IDGenerator {
	return func() (string, error) {
		id, err := uuid.NewV7()
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}
}

// NanoIDGenerator returns 21-character URL-safe IDs
func NanoIDGenerator() (IDGenerator, error) {
	gen, err := nanoid.Standard(21)
	if err != nil {
		return nil, err
	}
	return func() (string, error) {
		return gen(), nil
	}, nil
}

// NewIDGenerator picks a generator by its configured name
func NewIDGenerator(name string) (IDGenerator, error) {
	switch name {
	case "", config.GeneratorUUID:
		return UUIDGenerator(), nil
	case config.GeneratorNanoID:
		return NanoIDGenerator()
	default:
		return nil, fmt.Errorf("unknown id generator %q", name)
	}
}
