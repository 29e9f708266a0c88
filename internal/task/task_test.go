package task

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestPriorityRank(t *testing.T) {
	if PriorityHigh.Rank() != 3 || PriorityMedium.Rank() != 2 || PriorityLow.Rank() != 1 {
		t.Errorf("Unexpected ranks: high=%d medium=%d low=%d",
			PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
	if Priority("urgent").Valid() {
		t.Error("Expected unknown priority to be invalid")
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority(" HIGH ")
	if err != nil {
		t.Fatalf("ParsePriority failed: %v", err)
	}
	if p != PriorityHigh {
		t.Errorf("Expected 'high', got '%s'", p)
	}

	_, err = ParsePriority("urgent")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if verr.Field != "priority" {
		t.Errorf("Expected field 'priority', got '%s'", verr.Field)
	}
}

func TestDraftValidate(t *testing.T) {
	due := MustParseDate("2024-01-10")

	d, err := Draft{Title: "  Write report ", Tag: " work ", DueDate: due}.Validate()
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if d.Title != "Write report" || d.Tag != "work" {
		t.Errorf("Expected trimmed fields, got %q / %q", d.Title, d.Tag)
	}
	if d.Priority != PriorityMedium {
		t.Errorf("Expected default priority medium, got '%s'", d.Priority)
	}

	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{"blank title", Draft{Title: "   ", DueDate: due}, "title"},
		{"missing due date", Draft{Title: "x"}, "dueDate"},
		{"bad priority", Draft{Title: "x", DueDate: due, Priority: "urgent"}, "priority"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.draft.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Expected field '%s', got '%s'", tt.field, verr.Field)
			}
		})
	}
}

func TestToggleKeepsCompletedAtConsistent(t *testing.T) {
	task := Task{ID: "1", Status: StatusPending}
	at := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	task.Toggle(at)
	if !task.IsCompleted() || task.CompletedAt == nil || !task.CompletedAt.Equal(at) {
		t.Fatalf("Expected completed at %v, got %+v", at, task)
	}

	task.Toggle(at.Add(time.Hour))
	if task.Status != StatusPending || task.CompletedAt != nil {
		t.Errorf("Expected pending with nil completedAt, got %+v", task)
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	pending := Task{Status: StatusPending, DueDate: MustParseDate("2024-01-09")}
	if !pending.IsOverdue(now) {
		t.Error("Expected pending task due yesterday to be overdue")
	}

	completed := pending
	completed.Complete(now)
	if completed.IsOverdue(now) {
		t.Error("Expected completed task never to be overdue")
	}

	future := Task{Status: StatusPending, DueDate: MustParseDate("2024-01-11")}
	if future.IsOverdue(now) {
		t.Error("Expected task due tomorrow not to be overdue")
	}
}

func TestPatchApply(t *testing.T) {
	task := Task{ID: "1", Title: "Old", Tag: "home", Priority: PriorityLow}
	title := "  New title "
	high := PriorityHigh

	if err := (Patch{Title: &title, Priority: &high}).Apply(&task); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if task.Title != "New title" {
		t.Errorf("Expected 'New title', got '%s'", task.Title)
	}
	if task.Priority != PriorityHigh {
		t.Errorf("Expected priority high, got '%s'", task.Priority)
	}
	if task.Tag != "home" {
		t.Errorf("Expected untouched tag 'home', got '%s'", task.Tag)
	}

	empty := ""
	if err := (Patch{Title: &empty}).Apply(&task); err == nil {
		t.Error("Expected error for empty title")
	}
	if task.Title != "New title" {
		t.Errorf("Expected title unchanged after rejected patch, got '%s'", task.Title)
	}
}

func TestDateJSON(t *testing.T) {
	var task Task
	blob := `{"id":"1700000000000","title":"Legacy","description":"","priority":"low",
		"dueDate":"2024-01-09","tag":"","status":"completed",
		"completedAt":"2024-01-09T10:00:00.000Z","createdAt":"2024-01-01T08:30:00.000Z","extra":true}`
	if err := json.Unmarshal([]byte(blob), &task); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if task.DueDate != NewDate(2024, time.January, 9) {
		t.Errorf("Expected due date 2024-01-09, got %s", task.DueDate)
	}
	if task.CompletedAt == nil {
		t.Fatal("Expected completedAt to be set")
	}

	out, err := json.Marshal(Task{ID: "2", DueDate: NewDate(2024, time.March, 5), Status: StatusPending})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("Unmarshal raw failed: %v", err)
	}
	if raw["dueDate"] != "2024-03-05" {
		t.Errorf("Expected dueDate '2024-03-05', got %v", raw["dueDate"])
	}
	if v, ok := raw["completedAt"]; !ok || v != nil {
		t.Errorf("Expected completedAt null, got %v (present=%v)", v, ok)
	}
}

func TestDateArithmetic(t *testing.T) {
	d := MustParseDate("2024-02-28")
	if got := d.AddDays(2).String(); got != "2024-03-01" {
		t.Errorf("Expected 2024-03-01, got %s", got)
	}
	if !d.Before(d.AddDays(1)) || d.Compare(d) != 0 {
		t.Error("Unexpected date comparison result")
	}
	if _, err := ParseDate("10/01/2024"); err == nil {
		t.Error("Expected error for malformed date")
	}
}

func TestCollectionRemove(t *testing.T) {
	c := Collection{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	out, removed := c.Remove("2")
	if !removed || len(out) != 2 || out.Find("2") != nil {
		t.Errorf("Expected task 2 removed, got %v", out.IDs())
	}

	same, removed := out.Remove("2")
	if removed || len(same) != 2 {
		t.Error("Expected removing a missing id to be a no-op")
	}
}

func TestCollectionCloneIsDeep(t *testing.T) {
	at := time.Now()
	c := Collection{{ID: "1", Status: StatusCompleted, CompletedAt: &at}}
	clone := c.Clone()
	clone[0].Title = "changed"
	*clone[0].CompletedAt = at.Add(time.Hour)

	if c[0].Title == "changed" || !c[0].CompletedAt.Equal(at) {
		t.Error("Expected clone to be independent of the original")
	}
}
