package task

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency label of a task
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority from highest to lowest rank
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank orders priorities: high=3, medium=2, low=1, unknown=0
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// ParsePriority normalizes user input into a Priority
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", s)}
	}
	return p, nil
}

// Status is the completion state of a task
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is pending or completed
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// ParseStatus normalizes user input into a Status
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", s)}
	}
	return st, nil
}

// Task is a single to-do record. Field names are the persisted blob's
// field names and must stay stable.
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	DueDate     Date       `json:"dueDate" yaml:"due_date"`
	Tag         string     `json:"tag" yaml:"tag"`
	Status      Status     `json:"status" yaml:"status"`
	CompletedAt *time.Time `json:"completedAt" yaml:"completed_at"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"created_at"`
}

// IsCompleted reports whether the task is done
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Complete marks the task completed at the given instant
func (t *Task) Complete(at time.Time) {
	t.Status = StatusCompleted
	t.CompletedAt = &at
}

// Reopen marks the task pending again
func (t *Task) Reopen() {
	t.Status = StatusPending
	t.CompletedAt = nil
}

// Toggle flips the status, keeping CompletedAt consistent with it
func (t *Task) Toggle(at time.Time) {
	if t.IsCompleted() {
		t.Reopen()
		return
	}
	t.Complete(at)
}

// IsOverdue reports whether a pending task's due date started before now.
// The due date is interpreted as midnight in now's location.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.IsCompleted() || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.In(now.Location()).Before(now)
}

// Draft holds the user input for a new task
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     Date
	Tag         string
}

// Validate checks the required fields and returns the normalized draft
func (d Draft) Validate() (Draft, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Tag = strings.TrimSpace(d.Tag)

	if d.Title == "" {
		return d, &ValidationError{Field: "title", Reason: "title is required"}
	}
	if d.DueDate.IsZero() {
		return d, &ValidationError{Field: "dueDate", Reason: "due date is required"}
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if !d.Priority.Valid() {
		return d, &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", d.Priority)}
	}
	return d, nil
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Priority    *Priority
	DueDate     *Date
	Tag         *string
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.DueDate == nil && p.Tag == nil
}

// Apply merges the patch into t after validating it
func (p Patch) Apply(t *Task) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return &ValidationError{Field: "title", Reason: "title cannot be empty"}
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", *p.Priority)}
	}
	if p.DueDate != nil && p.DueDate.IsZero() {
		return &ValidationError{Field: "dueDate", Reason: "due date cannot be empty"}
	}

	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Tag != nil {
		t.Tag = strings.TrimSpace(*p.Tag)
	}
	return nil
}

// ValidationError reports input that cannot become a task
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
