package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roonakyadav/pro-track-lite/internal/task"
)

// PersistenceError wraps a failure to read, encode or write the collection
type PersistenceError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Adapter loads and saves the whole task collection under one key
type Adapter struct {
	backend Backend
	key     string
	logger  *slog.Logger
}

// NewAdapter binds backend to key. A nil logger discards log output.
func NewAdapter(backend Backend, key string, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{backend: backend, key: key, logger: logger}
}

// Key returns the storage key of the collection
func (a *Adapter) Key() string {
	return a.key
}

// Backend returns the underlying store
func (a *Adapter) Backend() Backend {
	return a.backend
}

// Load reads the collection. A missing key yields an empty collection, and so
// does a blob that cannot be decoded; the latter is logged and otherwise
// ignored, the next Save overwrites it.
func (a *Adapter) Load(ctx context.Context) (task.Collection, error) {
	data, err := a.backend.Get(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		return task.Collection{}, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Key: a.key, Err: err}
	}

	tasks, rejected, err := Decode(data)
	if err != nil {
		a.logger.Warn("discarding unreadable task collection", "key", a.key, "error", err)
		return task.Collection{}, nil
	}
	for _, r := range rejected {
		a.logger.Warn("skipping stored task", "key", a.key, "index", r.Index, "id", r.ID, "reason", r.Reason)
	}

	a.logger.Debug("loaded task collection", "key", a.key, "tasks", len(tasks))
	return tasks, nil
}

// Save replaces the stored collection with tasks
func (a *Adapter) Save(ctx context.Context, tasks task.Collection) error {
	data, err := Encode(tasks)
	if err != nil {
		return &PersistenceError{Op: "save", Key: a.key, Err: err}
	}
	if err := a.backend.Set(ctx, a.key, data); err != nil {
		return &PersistenceError{Op: "save", Key: a.key, Err: err}
	}

	a.logger.Debug("saved task collection", "key", a.key, "tasks", len(tasks), "bytes", len(data))
	return nil
}

// Encode serializes a collection as a JSON array (never "null")
func Encode(tasks task.Collection) ([]byte, error) {
	if tasks == nil {
		tasks = task.Collection{}
	}
	return json.Marshal(tasks)
}

// Rejected describes a stored record that Decode dropped
type Rejected struct {
	Index  int
	ID     string
	Reason string
}

// Decode parses a JSON array of tasks. Unknown fields are ignored. Records
// that break the collection rules are repaired by Sanitize or returned as
// rejected.
func Decode(data []byte) (task.Collection, []Rejected, error) {
	var tasks task.Collection
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, nil, fmt.Errorf("failed to parse task collection: %w", err)
	}
	kept, rejected := Sanitize(tasks)
	return kept, rejected, nil
}

// Sanitize returns the records of tasks that can be kept, in order.
//
// A record is dropped when its id is empty or repeats an earlier id, or when
// its status or priority is unknown. A missing priority becomes medium. A
// pending record loses its completedAt; a completed record without one is
// taken to have been completed when it was created.
func Sanitize(tasks task.Collection) (task.Collection, []Rejected) {
	kept := make(task.Collection, 0, len(tasks))
	var rejected []Rejected
	seen := make(map[string]bool, len(tasks))

	for i, t := range tasks {
		reject := func(reason string) {
			rejected = append(rejected, Rejected{Index: i, ID: t.ID, Reason: reason})
		}

		switch {
		case t.ID == "":
			reject("missing id")
			continue
		case seen[t.ID]:
			reject("duplicate id")
			continue
		case !t.Status.Valid():
			reject(fmt.Sprintf("unknown status %q", t.Status))
			continue
		case t.Priority != "" && !t.Priority.Valid():
			reject(fmt.Sprintf("unknown priority %q", t.Priority))
			continue
		}
		seen[t.ID] = true

		if t.Priority == "" {
			t.Priority = task.PriorityMedium
		}
		switch {
		case t.Status == task.StatusPending:
			t.CompletedAt = nil
		case t.CompletedAt == nil:
			at := t.CreatedAt
			t.CompletedAt = &at
		}
		kept = append(kept, t)
	}
	return kept, rejected
}
