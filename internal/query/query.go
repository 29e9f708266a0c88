// Package query filters and orders the task collection for display.
package query

import (
	"sort"
	"strings"

	"github.com/roonakyadav/pro-track-lite/internal/task"
)

// All disables the status and priority filters
const All = "all"

// Filter narrows a query. Zero values match everything.
type Filter struct {
	Status   task.Status   // exact match; "" or "all" for any
	Priority task.Priority // exact match; "" or "all" for any
	Tag      string        // case-insensitive substring of the tag
	Search   string        // case-insensitive substring of title, description or tag
}

// ParseFilter builds a Filter from raw user input
func ParseFilter(status, priority, tag, search string) (Filter, error) {
	f := Filter{Tag: tag, Search: search}

	if s := strings.TrimSpace(status); s != "" && !strings.EqualFold(s, All) {
		st, err := task.ParseStatus(s)
		if err != nil {
			return Filter{}, err
		}
		f.Status = st
	}
	if p := strings.TrimSpace(priority); p != "" && !strings.EqualFold(p, All) {
		pr, err := task.ParsePriority(p)
		if err != nil {
			return Filter{}, err
		}
		f.Priority = pr
	}
	return f, nil
}

// IsEmpty reports whether the filter matches every task
func (f Filter) IsEmpty() bool {
	return !f.hasStatus() && !f.hasPriority() && f.Tag == "" && f.Search == ""
}

// Match reports whether t passes every criterion of the filter
func (f Filter) Match(t task.Task) bool {
	if f.hasStatus() && t.Status != f.Status {
		return false
	}
	if f.hasPriority() && t.Priority != f.Priority {
		return false
	}
	if f.Tag != "" && !containsFold(t.Tag, f.Tag) {
		return false
	}
	if f.Search != "" &&
		!containsFold(t.Title, f.Search) &&
		!containsFold(t.Description, f.Search) &&
		!containsFold(t.Tag, f.Search) {
		return false
	}
	return true
}

func (f Filter) hasStatus() bool {
	return f.Status != "" && f.Status != All
}

func (f Filter) hasPriority() bool {
	return f.Priority != "" && f.Priority != All
}

// Run returns the tasks matching f in display order. The input is not modified.
func Run(tasks task.Collection, f Filter) task.Collection {
	result := make(task.Collection, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			result = append(result, t)
		}
	}
	Sort(result)
	return result
}

// Sort orders tasks in place: earliest due date first, then higher priority,
// then older tasks, then by ID. The order is total, so it never depends on
// the storage order.
func Sort(tasks task.Collection) {
	sort.Slice(tasks, func(i, j int) bool {
		return Less(tasks[i], tasks[j])
	})
}

// Less is the display ordering used by Sort
func Less(a, b task.Task) bool {
	if c := a.DueDate.Compare(b.DueDate); c != 0 {
		return c < 0
	}
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra > rb
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
