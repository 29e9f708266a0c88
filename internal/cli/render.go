package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roonakyadav/pro-track-lite/internal/stats"
	"github.com/roonakyadav/pro-track-lite/internal/task"
)

const barWidth = 20

// printTasks writes tasks as an aligned table
func printTasks(w io.Writer, tasks task.Collection, now time.Time, short func(string) string) error {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tDUE\tTAG\tTITLE")
	for i := range tasks {
		t := &tasks[i]
		done := "[ ]"
		if t.IsCompleted() {
			done = "[x]"
		}
		title := t.Title
		if t.IsOverdue(now) {
			title += " (overdue)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			short(t.ID), done, t.Priority, t.DueDate, t.Tag, title)
	}
	return tw.Flush()
}

// printSummary writes the statistics view
func printSummary(w io.Writer, s stats.Summary) error {
	c := s.Counts
	fmt.Fprintf(w, "Tasks:     %d total, %d completed, %d pending, %d overdue\n",
		c.Total, c.Completed, c.Pending, c.Overdue)
	fmt.Fprintf(w, "Progress:  %s %d%%\n", bar(s.Progress.Percent, 100), s.Progress.Percent)

	if len(s.Series) > 0 {
		maxCount := 0
		for _, d := range s.Series {
			if d.Count > maxCount {
				maxCount = d.Count
			}
		}

		fmt.Fprintln(w)
		fmt.Fprintf(w, "Completed, last %d days:\n", len(s.Series))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, d := range s.Series {
			fmt.Fprintf(tw, "  %s\t%s\t%d\n", d.Day.In(time.UTC).Format("Mon 01-02"), strings.Repeat("#", scale(d.Count, maxCount)), d.Count)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "By priority:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range task.Priorities {
		fmt.Fprintf(tw, "  %s\t%d\n", p, s.Distribution.Of(p))
	}
	return tw.Flush()
}

// bar renders value/max as a fixed-width progress bar
func bar(value, max int) string {
	filled := scale(value, max)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func scale(value, max int) int {
	if max <= 0 || value <= 0 {
		return 0
	}
	if value >= max {
		return barWidth
	}
	return value * barWidth / max
}

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML writes v as YAML
func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
