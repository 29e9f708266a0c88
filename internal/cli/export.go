package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roonakyadav/pro-track-lite/internal/query"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print every task as JSON or YAML",
	Long: `Print the whole task collection in display order.

The JSON form is the same format the collection is stored in.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	format, _ := cmd.Flags().GetString("format")
	return a.export(format)
}

func (a *app) export(format string) error {
	tasks := query.Run(a.store.Tasks(), query.Filter{})

	switch format {
	case "json":
		return writeJSON(a.out, tasks)
	case "yaml", "yml":
		return writeYAML(a.out, tasks)
	default:
		return fmt.Errorf("unknown export format %q (want json or yaml)", format)
	}
}
