// Package stats derives dashboard figures from the task collection.
//
// Every function is a pure derivation over a snapshot. The current instant is
// passed in, and calendar days are taken in its location.
package stats

import (
	"math"
	"time"

	"github.com/roonakyadav/pro-track-lite/internal/query"
	"github.com/roonakyadav/pro-track-lite/internal/task"
)

// DefaultSeriesDays is the length of the completion series shown by default
const DefaultSeriesDays = 7

// Counts are the headline totals
type Counts struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
	Pending   int `json:"pending" yaml:"pending"`
	Overdue   int `json:"overdue" yaml:"overdue"`
}

// DayCount is the number of tasks completed on one calendar day
type DayCount struct {
	Day   task.Date `json:"day" yaml:"day"`
	Count int       `json:"count" yaml:"count"`
}

// Distribution counts tasks per priority regardless of status
type Distribution struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

// Of returns the count for p
func (d Distribution) Of(p task.Priority) int {
	switch p {
	case task.PriorityHigh:
		return d.High
	case task.PriorityMedium:
		return d.Medium
	case task.PriorityLow:
		return d.Low
	default:
		return 0
	}
}

// Progress is the completed share of the collection
type Progress struct {
	Completed int `json:"completed" yaml:"completed"`
	Total     int `json:"total" yaml:"total"`
	Percent   int `json:"percent" yaml:"percent"`
}

// Summary bundles everything the stats view renders
type Summary struct {
	Counts       Counts       `json:"counts" yaml:"counts"`
	Progress     Progress     `json:"progress" yaml:"progress"`
	Series       []DayCount   `json:"completionSeries" yaml:"completion_series"`
	Distribution Distribution `json:"priorityDistribution" yaml:"priority_distribution"`
}

// Count computes total, completed, pending and overdue counts
func Count(tasks task.Collection, now time.Time) Counts {
	c := Counts{Total: len(tasks)}
	for i := range tasks {
		t := &tasks[i]
		switch t.Status {
		case task.StatusCompleted:
			c.Completed++
		case task.StatusPending:
			c.Pending++
			if t.IsOverdue(now) {
				c.Overdue++
			}
		}
	}
	return c
}

// CompletionSeries counts completions per calendar day for the last days
// days, oldest first and ending with today. Days without completions are
// included with a zero count.
func CompletionSeries(tasks task.Collection, now time.Time, days int) []DayCount {
	if days <= 0 {
		return []DayCount{}
	}

	today := task.DateOf(now)
	first := today.AddDays(-(days - 1))

	series := make([]DayCount, days)
	for i := range series {
		series[i].Day = first.AddDays(i)
	}

	loc := now.Location()
	for _, t := range tasks {
		if t.Status != task.StatusCompleted || t.CompletedAt == nil {
			continue
		}
		day := task.DateOf(t.CompletedAt.In(loc))
		if day.Before(first) || today.Before(day) {
			continue
		}
		idx := daysBetween(first, day)
		series[idx].Count++
	}
	return series
}

// PriorityDistribution counts tasks per priority
func PriorityDistribution(tasks task.Collection) Distribution {
	var d Distribution
	for _, t := range tasks {
		switch t.Priority {
		case task.PriorityHigh:
			d.High++
		case task.PriorityMedium:
			d.Medium++
		case task.PriorityLow:
			d.Low++
		}
	}
	return d
}

// ComputeProgress returns the completed share rounded to a whole percent.
// An empty collection is 0%.
func ComputeProgress(tasks task.Collection) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) * 100 / float64(p.Total)))
	}
	return p
}

// DueSoon returns pending tasks due between today and today+windowDays
// inclusive, in display order. Overdue tasks are not included.
func DueSoon(tasks task.Collection, now time.Time, windowDays int) task.Collection {
	if windowDays < 0 {
		windowDays = 0
	}
	today := task.DateOf(now)
	last := today.AddDays(windowDays)

	result := task.Collection{}
	for _, t := range tasks {
		if t.Status != task.StatusPending {
			continue
		}
		if t.DueDate.Before(today) || last.Before(t.DueDate) {
			continue
		}
		result = append(result, t)
	}
	query.Sort(result)
	return result
}

// Summarize computes the full dashboard for a series of the given length
func Summarize(tasks task.Collection, now time.Time, days int) Summary {
	return Summary{
		Counts:       Count(tasks, now),
		Progress:     ComputeProgress(tasks),
		Series:       CompletionSeries(tasks, now, days),
		Distribution: PriorityDistribution(tasks),
	}
}

func daysBetween(from, to task.Date) int {
	a := from.In(time.UTC)
	b := to.In(time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
