package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/paramount/restobid/internal/display"
	"github.com/paramount/restobid/internal/models"
)

// NewProjectNewCommand creates and returns the new subcommand
func NewProjectNewCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new assessment project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runProjectNew(app, name, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
}

func runProjectNew(app *App, name string, output io.Writer) error {
	if name == "" {
		name = "Assessment " + time.Now().Format("2006-01-02")
	}

	st, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := contextForStore()
	if summaries, err := st.ListProjects(ctx); err == nil {
		for _, s := range summaries {
			if s.Name == name {
				return fmt.Errorf("project %q already exists (id %s)", name, s.ID)
			}
		}
	}

	project := models.NewProject(name)
	if err := st.SaveProject(ctx, project); err != nil {
		return err
	}

	app.Logger.LogInfo(fmt.Sprintf("created project %s (%s)", project.Name, project.ID))
	fmt.Fprintf(output, "Created project %q\n", project.Name)
	fmt.Fprintf(output, "  ID: %s\n", project.ID)
	fmt.Fprintf(output, "Next: restobid assess %q\n", project.Name)
	return nil
}

// NewProjectsCommand creates and returns the projects subcommand
func NewProjectsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List assessment projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectsList(app, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <project>",
		Short: "Delete a project and its rooms, items, and photos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectDelete(app, args[0], cmd.OutOrStdout())
		},
		SilenceUsage: true,
	})

	return cmd
}

func runProjectsList(app *App, output io.Writer) error {
	st, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	summaries, err := st.ListProjects(contextForStore())
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(output, "No projects. Create one with: restobid new <name>")
		return nil
	}

	for _, s := range summaries {
		damage := string(s.DamageType)
		if damage == "" {
			damage = "unassessed"
		}
		fmt.Fprintf(output, "%-36s  %-20s  %-10s  %d rooms, %d items  (updated %s)\n",
			s.ID, s.Name, damage, s.RoomCount, s.ItemCount, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runProjectDelete(app *App, ref string, output io.Writer) error {
	st, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := contextForStore()
	project, err := st.FindProject(ctx, ref)
	if err != nil {
		return err
	}
	if err := st.DeleteProject(ctx, project.ID); err != nil {
		return err
	}

	app.Logger.LogInfo(fmt.Sprintf("deleted project %s (%s)", project.Name, project.ID))
	fmt.Fprintf(output, "Deleted project %q\n", project.Name)
	return nil
}

// NewShowCommand creates and returns the show subcommand
func NewShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project's classification, rooms, and items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectShow(app, args[0], cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
}

func runProjectShow(app *App, ref string, output io.Writer) error {
	st, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	project, err := st.FindProject(contextForStore(), ref)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Project: %s\n", project.Name)
	fmt.Fprintf(output, "  ID: %s\n", project.ID)
	fmt.Fprintf(output, "  Updated: %s\n", project.UpdatedAt.Format("2006-01-02 15:04"))

	if project.Classification == nil {
		fmt.Fprintf(output, "  Not yet assessed. Next: restobid assess %q\n", project.Name)
	} else {
		fmt.Fprintln(output)
		display.Classification(output, project.Classification)
	}

	if len(project.Rooms) > 0 {
		fmt.Fprintf(output, "\nRooms (%d):\n", len(project.Rooms))
		for i := range project.Rooms {
			room := &project.Rooms[i]
			fmt.Fprintf(output, "  %s  %.0f x %.0f x %.0f ft\n",
				room.Name, room.Length, room.Width, room.EffectiveHeight())
		}
	}

	fmt.Fprintln(output)
	display.LineItemTable(output, project.LineItems)

	if len(project.Photos) > 0 {
		fmt.Fprintf(output, "\nPhotos: %d\n", len(project.Photos))
	}
	if project.Notes != "" {
		fmt.Fprintf(output, "\nNotes: %s\n", project.Notes)
	}
	return nil
}

// NewNotesCommand creates and returns the notes subcommand
func NewNotesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <project> [text]",
		Short: "Show or set a project's field notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectNotes(app, args[0], strings.Join(args[1:], " "), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
}

func runProjectNotes(app *App, ref, text string, output io.Writer) error {
	st, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := contextForStore()
	project, err := st.FindProject(ctx, ref)
	if err != nil {
		return err
	}

	if text == "" {
		if project.Notes == "" {
			fmt.Fprintln(output, "No notes.")
		} else {
			fmt.Fprintln(output, project.Notes)
		}
		return nil
	}

	project.Notes = text
	project.UpdatedAt = time.Now()
	if err := st.SaveProject(ctx, project); err != nil {
		return err
	}
	fmt.Fprintf(output, "Saved notes for %q\n", project.Name)
	return nil
}
