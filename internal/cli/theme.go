package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roonakyadav/pro-track-lite/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:       "theme [show|toggle|light|dark]",
	Short:     "Show or change the display theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"show", "toggle", "light", "dark"},
	RunE:      runTheme,
}

func runTheme(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	action := "show"
	if len(args) > 0 {
		action = args[0]
	}
	return a.setTheme(cmd.Context(), action)
}

func (a *app) setTheme(ctx context.Context, action string) error {
	var (
		current theme.Theme
		err     error
	)
	switch action {
	case "show":
		current, err = a.theme.Load(ctx)
	case "toggle":
		current, err = a.theme.Toggle(ctx)
	default:
		current, err = theme.Parse(action)
		if err != nil {
			return err
		}
		err = a.theme.Set(ctx, current)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Theme: %s\n", current)
	return nil
}
