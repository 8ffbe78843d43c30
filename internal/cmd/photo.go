package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/paramount/restobid/internal/models"
)

// NewPhotoCommand creates and returns the photo subcommand
func NewPhotoCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photo",
		Short: "Attach photo references to a project",
	}

	var caption string
	addCmd := &cobra.Command{
		Use:   "add <project> <path>",
		Short: "Record a photo taken during the assessment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPhotoAdd(app, args[0], args[1], caption, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	addCmd.Flags().StringVar(&caption, "caption", "", "photo caption")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list <project>",
		Short: "List photo references on a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPhotoList(app, args[0], cmd.OutOrStdout())
		},
		SilenceUsage: true,
	})

	return cmd
}

func runPhotoAdd(app *App, ref, path, caption string, output io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		app.Logger.LogWarn(fmt.Sprintf("photo path %s is not readable: %v", path, err))
	}

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

	project.Photos = append(project.Photos, models.PhotoAttachment{
		ID:      uuid.NewString(),
		Path:    path,
		Caption: caption,
		AddedAt: time.Now().UTC(),
	})
	project.UpdatedAt = time.Now().UTC()

	if err := st.SaveProject(ctx, project); err != nil {
		return err
	}
	fmt.Fprintf(output, "Attached photo %s (%d total)\n", path, len(project.Photos))
	return nil
}

func runPhotoList(app *App, ref string, output io.Writer) error {
	st, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	project, err := st.FindProject(contextForStore(), ref)
	if err != nil {
		return err
	}
	if len(project.Photos) == 0 {
		fmt.Fprintln(output, "No photos attached.")
		return nil
	}
	for _, photo := range project.Photos {
		caption := photo.Caption
		if caption == "" {
			caption = "(no caption)"
		}
		fmt.Fprintf(output, "%s  %s  %s\n", photo.AddedAt.Format("2006-01-02 15:04"), photo.Path, caption)
	}
	return nil
}
