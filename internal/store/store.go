// Package store owns the canonical task collection.
//
// A Store is created once per process from the persisted collection and is
// the only place the collection is mutated. Every mutation persists the whole
// collection before returning, then tells subscribers what changed. Callers
// decide what to re-query and re-render from the returned Change.
//
// Operations on an unknown ID are no-ops reported through Change.Applied,
// so stale references (a task deleted twice) never surface as errors.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/roonakyadav/pro-track-lite/internal/task"
)

var (
	// ErrNotFound is returned by Resolve when no task matches
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguous is returned by Resolve when a prefix matches several tasks
	ErrAmbiguous = errors.New("ambiguous task id")
)

// Persister loads and saves the whole collection
type Persister interface {
	Load(ctx context.Context) (task.Collection, error)
	Save(ctx context.Context, tasks task.Collection) error
}

// Kind names a mutation
type Kind string

const (
	KindAdded   Kind = "added"
	KindEdited  Kind = "edited"
	KindDeleted Kind = "deleted"
	KindToggled Kind = "toggled"
)

// Change describes the outcome of a mutation. Applied is false when the
// target ID did not exist and nothing changed.
type Change struct {
	Kind    Kind
	ID      string
	Task    task.Task // state after the change; the removed task for deletes
	Applied bool
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the default UUIDv7 generator
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Store is the task collection manager
type Store struct {
	mu          sync.Mutex
	tasks       task.Collection
	persister   Persister
	now         func() time.Time
	newID       IDGenerator
	logger      *slog.Logger
	subscribers map[int]func(Change)
	nextSubID   int
}

// New creates a store over an already loaded collection
func New(p Persister, tasks task.Collection, opts ...Option) *Store {
	s := &Store{
		tasks:       tasks.Clone(),
		persister:   p,
		now:         time.Now,
		newID:       UUIDGenerator(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		subscribers: make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the persisted collection and creates a store over it
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	tasks, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return New(p, tasks, opts...), nil
}

// Tasks returns a copy of the current collection
func (s *Store) Tasks() task.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Clone()
}

// Len returns the collection size
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Get returns a copy of the task with the given ID
func (s *Store) Get(id string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tasks.Find(id)
	if t == nil {
		return task.Task{}, false
	}
	return task.Collection{*t}.Clone()[0], true
}

// Resolve expands a unique ID prefix to the full ID
func (s *Store) Resolve(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var match string
	for _, t := range s.tasks {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %q", ErrAmbiguous, prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrNotFound, prefix)
	}
	return match, nil
}

// Subscribe registers fn to run after every persisted mutation.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Add validates the draft and appends a new pending task
func (s *Store) Add(ctx context.Context, d task.Draft) (task.Task, error) {
	d, err := d.Validate()
	if err != nil {
		return task.Task{}, err
	}

	s.mu.Lock()

	id, err := s.uniqueID()
	if err != nil {
		s.mu.Unlock()
		return task.Task{}, fmt.Errorf("failed to generate task id: %w", err)
	}

	t := task.Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		DueDate:     d.DueDate,
		Tag:         d.Tag,
		Status:      task.StatusPending,
		CompletedAt: nil,
		CreatedAt:   s.timestamp(),
	}
	s.tasks = append(s.tasks, t)

	change := Change{Kind: KindAdded, ID: id, Task: t, Applied: true}
	return t, s.commit(ctx, change)
}

// Edit merges patch into the task with the given ID
func (s *Store) Edit(ctx context.Context, id string, patch task.Patch) (Change, error) {
	s.mu.Lock()

	change := Change{Kind: KindEdited, ID: id}
	t := s.tasks.Find(id)
	if t == nil {
		s.mu.Unlock()
		s.logger.Debug("edit ignored, no such task", "id", id)
		return change, nil
	}

	updated := *t
	if err := patch.Apply(&updated); err != nil {
		s.mu.Unlock()
		return change, err
	}
	*t = updated

	change.Task = updated
	change.Applied = true
	return change, s.commit(ctx, change)
}

// Delete removes the task with the given ID. The collection is persisted
// even when nothing was removed.
func (s *Store) Delete(ctx context.Context, id string) (Change, error) {
	s.mu.Lock()

	change := Change{Kind: KindDeleted, ID: id}
	if t := s.tasks.Find(id); t != nil {
		change.Task = *t
		change.Applied = true
		s.tasks, _ = s.tasks.Remove(id)
	} else {
		s.logger.Debug("delete ignored, no such task", "id", id)
	}

	return change, s.commit(ctx, change)
}

// ToggleStatus flips a task between pending and completed
func (s *Store) ToggleStatus(ctx context.Context, id string) (Change, error) {
	s.mu.Lock()

	change := Change{Kind: KindToggled, ID: id}
	t := s.tasks.Find(id)
	if t == nil {
		s.mu.Unlock()
		s.logger.Debug("toggle ignored, no such task", "id", id)
		return change, nil
	}

	t.Toggle(s.timestamp())

	change.Task = *t
	change.Applied = true
	return change, s.commit(ctx, change)
}

// commit persists the collection and notifies subscribers. It must be
// called with s.mu held and releases it. On a failed save the in-memory
// state is kept and the error returned.
func (s *Store) commit(ctx context.Context, change Change) error {
	snapshot := s.tasks.Clone()
	subs := make([]func(Change), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	err := s.persister.Save(ctx, snapshot)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to persist tasks", "change", change.Kind, "id", change.ID, "error", err)
		return fmt.Errorf("failed to persist %s task: %w", change.Kind, err)
	}

	s.logger.Debug("task collection updated", "change", change.Kind, "id", change.ID, "applied", change.Applied, "tasks", len(snapshot))
	for _, fn := range subs {
		fn(change)
	}
	return nil
}

// uniqueID draws IDs until one is unused in the collection
func (s *Store) uniqueID() (string, error) {
	for i := 0; i < 10; i++ {
		id, err := s.newID()
		if err != nil {
			return "", err
		}
		if s.tasks.Index(id) < 0 {
			return id, nil
		}
	}
	return "", errors.New("id generator keeps returning existing ids")
}

// timestamp is the store clock in UTC at millisecond precision, matching
// the persisted ISO-8601 form
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
