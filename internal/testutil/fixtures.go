package testutil

import (
	"time"

	"github.com/roonakyadav/pro-track-lite/internal/task"
)

// FixedNow is the reference instant used by fixtures: 2024-01-10 12:00 UTC
var FixedNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

// SampleTasks returns the three-task collection used across package tests:
// two pending tasks due 2024-01-10 (high, low) and one completed task due 2024-01-09.
func SampleTasks() task.Collection {
	completedAt := time.Date(2024, time.January, 9, 16, 30, 0, 0, time.UTC)
	return task.Collection{
		{
			ID:        "t-low",
			Title:     "Water plants",
			Priority:  task.PriorityLow,
			DueDate:   task.MustParseDate("2024-01-10"),
			Tag:       "home",
			Status:    task.StatusPending,
			CreatedAt: time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			ID:          "t-medium",
			Title:       "Review pull request",
			Description: "Check the storage backend changes",
			Priority:    task.PriorityMedium,
			DueDate:     task.MustParseDate("2024-01-09"),
			Tag:         "Work",
			Status:      task.StatusCompleted,
			CompletedAt: &completedAt,
			CreatedAt:   time.Date(2024, time.January, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			ID:        "t-high",
			Title:     "Ship release",
			Priority:  task.PriorityHigh,
			DueDate:   task.MustParseDate("2024-01-10"),
			Tag:       "work",
			Status:    task.StatusPending,
			CreatedAt: time.Date(2024, time.January, 3, 8, 0, 0, 0, time.UTC),
		},
	}
}

// LegacyBlob is a collection blob in the browser application's format
const LegacyBlob = `[
  {"id":"1704873600000","title":"Plan sprint","description":"","priority":"high","dueDate":"2024-01-12","tag":"work","status":"pending","completedAt":null,"createdAt":"2024-01-10T08:00:00.000Z"},
  {"id":"1704877200000","title":"Buy milk","description":"2 litres","priority":"low","dueDate":"2024-01-10","tag":"","status":"completed","completedAt":"2024-01-10T10:15:00.000Z","createdAt":"2024-01-10T09:00:00.000Z"}
]`
