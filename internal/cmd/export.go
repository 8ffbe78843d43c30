package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paramount/restobid/internal/export"
	"github.com/paramount/restobid/internal/filelock"
)

// NewExportCommand creates and returns the export subcommand
func NewExportCommand(app *App) *cobra.Command {
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <project>",
		Short: "Export the estimate as CSV or ESX",
		Long: `Exports the project's line items.

CSV is written locally. ESX is produced by an external conversion server
(configured via export.server_url or RESTOBID_EXPORT_URL); the server
converts the estimate to the Xactimate exchange format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(app, args[0], format, outPath, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&format, "format", "csv", "export format: csv or esx")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file path (default <output_dir>/<project>.<format>)")
	return cmd
}

func runExport(app *App, ref, format, outPath string, output io.Writer) error {
	st, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	project, err := st.FindProject(contextForStore(), ref)
	if err != nil {
		return err
	}
	if len(project.LineItems) == 0 {
		return fmt.Errorf("project %q has no line items to export", project.Name)
	}

	var data []byte
	switch strings.ToLower(format) {
	case "csv":
		data = export.CSV(project)
	case "esx":
		client := export.NewESXClient(app.Config.Export.ServerURL, app.Config.Export.Timeout)
		data, err = client.Upload(project)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format %q (expected csv or esx)", format)
	}

	if outPath == "" {
		outPath = filepath.Join(app.Config.Export.OutputDir,
			fmt.Sprintf("%s.%s", sanitizeFilename(project.Name), strings.ToLower(format)))
	}
	if err := filelock.AtomicWrite(outPath, data); err != nil {
		return err
	}

	app.Logger.LogInfo(fmt.Sprintf("exported project %s to %s", project.Name, outPath))
	fmt.Fprintf(output, "Exported %d line items to %s\n", len(project.LineItems), outPath)
	return nil
}

// sanitizeFilename replaces path-hostile characters in a project name.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", " ", "_")
	return replacer.Replace(name)
}
