package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roonakyadav/pro-track-lite/internal/query"
	"github.com/roonakyadav/pro-track-lite/internal/task"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a pending task.

The title is required, and so is --due. Priority defaults to medium.

Examples:
  protrack add "Write report" --due 2024-01-12 --priority high --tag work`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks ordered by due date, then priority.

Filters combine; "all" disables the status and priority filters.`,
	RunE: runList,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a task",
	Long: `Change fields of a task. Only the flags given are updated.

The id may be abbreviated to any unique prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var toggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Aliases: []string{"done"},
	Short:   "Mark a task completed, or pending again",
	Args:    cobra.ExactArgs(1),
	RunE:    runToggle,
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	addCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringP("priority", "p", string(task.PriorityMedium), "Priority: high, medium or low")
	addCmd.Flags().StringP("tag", "t", "", "Free-form tag")
	addCmd.Flags().StringP("description", "d", "", "Longer description")

	addListFlags(listCmd)

	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().StringP("description", "d", "", "New description")
	editCmd.Flags().StringP("priority", "p", "", "New priority: high, medium or low")
	editCmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")
	editCmd.Flags().StringP("tag", "t", "", "New tag")

	deleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("status", "s", query.All, "Filter by status: all, pending or completed")
	cmd.Flags().StringP("priority", "p", query.All, "Filter by priority: all, high, medium or low")
	cmd.Flags().StringP("tag", "t", "", "Filter by tag (substring)")
	cmd.Flags().StringP("search", "q", "", "Search title, description and tag")
	cmd.Flags().Bool("json", false, "Output JSON")
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	due, _ := cmd.Flags().GetString("due")
	priority, _ := cmd.Flags().GetString("priority")
	tag, _ := cmd.Flags().GetString("tag")
	description, _ := cmd.Flags().GetString("description")

	d, err := draftFromInput(strings.Join(args, " "), description, priority, due, tag)
	if err != nil {
		return err
	}
	_, err = a.add(cmd.Context(), d)
	return err
}

func draftFromInput(title, description, priority, due, tag string) (task.Draft, error) {
	d := task.Draft{Title: title, Description: description, Tag: tag}

	if strings.TrimSpace(priority) != "" {
		p, err := task.ParsePriority(priority)
		if err != nil {
			return d, err
		}
		d.Priority = p
	}

	date, err := task.ParseDate(due)
	if err != nil {
		return d, &task.ValidationError{Field: "dueDate", Reason: err.Error()}
	}
	d.DueDate = date
	return d, nil
}

func (a *app) add(ctx context.Context, d task.Draft) (task.Task, error) {
	return a.store.Add(ctx, d)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	status, _ := cmd.Flags().GetString("status")
	priority, _ := cmd.Flags().GetString("priority")
	tag, _ := cmd.Flags().GetString("tag")
	search, _ := cmd.Flags().GetString("search")
	asJSON, _ := cmd.Flags().GetBool("json")

	f, err := query.ParseFilter(status, priority, tag, search)
	if err != nil {
		return err
	}
	return a.list(f, asJSON)
}

func (a *app) list(f query.Filter, asJSON bool) error {
	all := a.store.Tasks()
	result := query.Run(all, f)
	a.logger.Debug("query", "filter", f, "matched", len(result), "total", len(all))

	if asJSON {
		return writeJSON(a.out, result)
	}
	return printTasks(a.out, result, a.now(), abbreviator(all.IDs()))
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	patch, err := patchFromFlags(cmd)
	if err != nil {
		return err
	}
	return a.edit(cmd.Context(), args[0], patch)
}

// patchFromFlags turns the flags the user actually set into a Patch
func patchFromFlags(cmd *cobra.Command) (task.Patch, error) {
	var patch task.Patch
	flags := cmd.Flags()

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		patch.Title = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		patch.Description = &v
	}
	if flags.Changed("tag") {
		v, _ := flags.GetString("tag")
		patch.Tag = &v
	}
	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		p, err := task.ParsePriority(v)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if flags.Changed("due") {
		v, _ := flags.GetString("due")
		d, err := task.ParseDate(v)
		if err != nil {
			return patch, &task.ValidationError{Field: "dueDate", Reason: err.Error()}
		}
		patch.DueDate = &d
	}
	return patch, nil
}

func (a *app) edit(ctx context.Context, ref string, patch task.Patch) error {
	if patch.IsEmpty() {
		return errors.New("nothing to change (see protrack edit --help)")
	}
	id, err := a.resolve(ref)
	if err != nil {
		return err
	}
	_, err = a.store.Edit(ctx, id, patch)
	return err
}

func runToggle(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.toggle(cmd.Context(), args[0])
}

func (a *app) toggle(ctx context.Context, ref string) error {
	id, err := a.resolve(ref)
	if err != nil {
		return err
	}
	_, err = a.store.ToggleStatus(ctx, id)
	return err
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	yes, _ := cmd.Flags().GetBool("yes")
	return a.delete(cmd.Context(), args[0], yes)
}

func (a *app) delete(ctx context.Context, ref string, yes bool) error {
	id, err := a.resolve(ref)
	if err != nil {
		return err
	}

	if !yes {
		t, _ := a.store.Get(id)
		ok, err := a.confirm(fmt.Sprintf("Delete %q?", t.Title))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
	}

	_, err = a.store.Delete(ctx, id)
	return err
}

// confirm asks a yes/no question on the app's input. Anything but y/yes is no.
func (a *app) confirm(question string) (bool, error) {
	fmt.Fprintf(a.out, "%s [y/N] ", question)

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.out)
			return false, nil
		}
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
