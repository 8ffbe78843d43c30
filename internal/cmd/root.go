package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for restobid
func NewRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "restobid",
		Short: "Field estimating aid for property damage restoration",
		Long: `Restobid walks a technician through IICRC damage assessment questions,
classifies the loss (water category/class, fire soot profile, mold
remediation level), and generates the restoration line items and drying
equipment counts an estimate needs.

Projects are stored locally; estimates export as CSV or upload to an ESX
conversion server for Xactimate import.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default .restobid/config.yaml)")

	app := &App{}
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		loaded, err := NewApp(configPath, c.ErrOrStderr())
		if err != nil {
			return err
		}
		*app = *loaded
		return nil
	}

	// Add subcommands
	cmd.AddCommand(NewProjectNewCommand(app))
	cmd.AddCommand(NewProjectsCommand(app))
	cmd.AddCommand(NewShowCommand(app))
	cmd.AddCommand(NewNotesCommand(app))
	cmd.AddCommand(NewAssessCommand(app))
	cmd.AddCommand(NewRoomCommand(app))
	cmd.AddCommand(NewItemsCommand(app))
	cmd.AddCommand(NewPhotoCommand(app))
	cmd.AddCommand(NewExportCommand(app))
	cmd.AddCommand(NewReportCommand(app))

	return cmd
}
