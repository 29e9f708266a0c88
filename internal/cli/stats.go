package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roonakyadav/pro-track-lite/internal/stats"
	"github.com/roonakyadav/pro-track-lite/internal/task"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics",
	Long: `Show task counts, overall progress, completions per day and the
priority distribution.`,
	RunE: runStats,
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Show pending tasks that are due soon",
	Long: `Show pending tasks due today or within the reminder window
(reminders.window_days, 1 by default: today and tomorrow).`,
	RunE: runRemind,
}

func init() {
	statsCmd.Flags().Int("days", 0, "Length of the completion series (default from analytics.series_days)")
	statsCmd.Flags().Bool("json", false, "Output JSON")

	remindCmd.Flags().Int("days", -1, "Reminder window in days (default from reminders.window_days)")
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	days, _ := cmd.Flags().GetInt("days")
	asJSON, _ := cmd.Flags().GetBool("json")
	return a.stats(days, asJSON)
}

func (a *app) stats(days int, asJSON bool) error {
	if days <= 0 {
		days = a.cfg.Analytics.SeriesDays
	}
	if days <= 0 {
		days = stats.DefaultSeriesDays
	}

	summary := stats.Summarize(a.store.Tasks(), a.now(), days)
	if asJSON {
		return writeJSON(a.out, summary)
	}
	return printSummary(a.out, summary)
}

func runRemind(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	days, _ := cmd.Flags().GetInt("days")
	if days < 0 {
		days = a.cfg.Reminders.WindowDays
	}
	return a.remind(days)
}

func (a *app) remind(windowDays int) error {
	now := a.now()
	all := a.store.Tasks()
	today := task.DateOf(now)
	due := stats.DueSoon(all, now, windowDays)

	// Tasks due today are overdue from midnight on but already listed above.
	overdue := 0
	for _, t := range all {
		if t.IsOverdue(now) && t.DueDate.Before(today) {
			overdue++
		}
	}

	if len(due) == 0 {
		fmt.Fprintln(a.out, "Nothing due soon.")
	} else {
		short := abbreviator(all.IDs())
		fmt.Fprintf(a.out, "Due soon (%d):\n", len(due))
		for _, t := range due {
			fmt.Fprintf(a.out, "  %s  %-8s %-6s  %s\n", short(t.ID), dueLabel(t.DueDate, today), t.Priority, t.Title)
		}
	}

	if overdue > 0 {
		fmt.Fprintf(a.out, "%d pending task(s) overdue, see: protrack list --status pending\n", overdue)
	}
	return nil
}

func dueLabel(due, today task.Date) string {
	switch {
	case due == today:
		return "today"
	case due == today.AddDays(1):
		return "tomorrow"
	default:
		return due.String()
	}
}
