package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/paramount/restobid/internal/display"
)

// NewItemsCommand creates and returns the items subcommand
func NewItemsCommand(app *App) *cobra.Command {
	var roomName string

	cmd := &cobra.Command{
		Use:   "items <project>",
		Short: "Show the generated line items for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItems(app, args[0], roomName, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&roomName, "room", "", "show only items for this room (\"rough\" for pre-room items)")
	return cmd
}

func runItems(app *App, ref, roomName string, output io.Writer) error {
	st, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	project, err := st.FindProject(contextForStore(), ref)
	if err != nil {
		return err
	}

	items := project.LineItems
	switch roomName {
	case "":
	case "rough":
		items = project.ItemsForRoom("")
	default:
		room := project.RoomByName(roomName)
		if room == nil {
			return fmt.Errorf("project %q has no room named %q", project.Name, roomName)
		}
		items = project.ItemsForRoom(room.ID)
	}

	display.LineItemTable(output, items)
	return nil
}
