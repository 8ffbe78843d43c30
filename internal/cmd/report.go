package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/paramount/restobid/internal/filelock"
	"github.com/paramount/restobid/internal/report"
)

// NewReportCommand creates and returns the report subcommand
func NewReportCommand(app *App) *cobra.Command {
	var html bool
	var outPath string

	cmd := &cobra.Command{
		Use:   "report <project>",
		Short: "Render the estimate report",
		Long: `Prints the estimate report as Markdown: classification, rooms,
equipment counts, and line items. With --html the report is rendered to a
standalone HTML file instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(app, args[0], html, outPath, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	cmd.Flags().BoolVar(&html, "html", false, "render HTML instead of Markdown")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func runReport(app *App, ref string, html bool, outPath string, output io.Writer) error {
	st, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	project, err := st.FindProject(contextForStore(), ref)
	if err != nil {
		return err
	}

	var data []byte
	if html {
		data, err = report.HTML(app.Dataset, project)
		if err != nil {
			return err
		}
		if outPath == "" {
			outPath = filepath.Join(app.Config.Export.OutputDir,
				sanitizeFilename(project.Name)+".html")
		}
	} else {
		data = []byte(report.Markdown(app.Dataset, project))
	}

	if outPath != "" {
		if err := filelock.AtomicWrite(outPath, data); err != nil {
			return err
		}
		fmt.Fprintf(output, "Report written to %s\n", outPath)
		return nil
	}

	_, err = output.Write(data)
	return err
}
