package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/paramount/restobid/internal/lineitems"
	"github.com/paramount/restobid/internal/models"
	"github.com/paramount/restobid/internal/sizing"
)

// roomFlags holds the measurement flags for room add.
type roomFlags struct {
	roomType   string
	length     float64
	width      float64
	height     float64
	floorType  string
	damagePct  float64
	wickHeight float64
	walls      []string
	notes      string
}

// NewRoomCommand creates and returns the room subcommand
func NewRoomCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Manage measured rooms on a project",
	}

	var flags roomFlags
	addCmd := &cobra.Command{
		Use:   "add <project> <room-name>",
		Short: "Add or update a measured room and regenerate its line items",
		Long: `Records a room's measurements and damage observations. If the project
already has a classification, the room's line items are generated
immediately, replacing prior entries for the same codes in that room.

Re-adding a room with the same name updates its measurements.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoomAdd(app, args[0], args[1], flags, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	addCmd.Flags().StringVar(&flags.roomType, "type", "", "room type (bathroom, kitchen, bedroom, ...)")
	addCmd.Flags().Float64Var(&flags.length, "length", 0, "room length in feet (required)")
	addCmd.Flags().Float64Var(&flags.width, "width", 0, "room width in feet (required)")
	addCmd.Flags().Float64Var(&flags.height, "height", 0, "ceiling height in feet (default 9)")
	addCmd.Flags().StringVar(&flags.floorType, "floor", "", "floor type (carpet, hardwood, tile, ...)")
	addCmd.Flags().Float64Var(&flags.damagePct, "damage-pct", 100, "portion of floor area affected, 0-100")
	addCmd.Flags().Float64Var(&flags.wickHeight, "wick", 0, "water wick height on walls in inches")
	addCmd.Flags().StringSliceVar(&flags.walls, "walls", nil, "affected walls (north,east,south,west)")
	addCmd.Flags().StringVar(&flags.notes, "notes", "", "free-form room notes")
	addCmd.MarkFlagRequired("length")
	addCmd.MarkFlagRequired("width")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list <project>",
		Short: "List the rooms measured on a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoomList(app, args[0], cmd.OutOrStdout())
		},
		SilenceUsage: true,
	})

	return cmd
}

func runRoomAdd(app *App, ref, name string, flags roomFlags, output io.Writer) error {
	walls, err := parseWalls(flags.walls)
	if err != nil {
		return err
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

	room := models.Room{
		ID:             uuid.NewString(),
		Name:           name,
		Type:           strings.ToLower(flags.roomType),
		Length:         flags.length,
		Width:          flags.width,
		Height:         flags.height,
		FloorType:      strings.ToLower(flags.floorType),
		DamagePercent:  flags.damagePct,
		WallWickHeight: flags.wickHeight,
		AffectedWalls:  walls,
		Notes:          flags.notes,
	}
	if existing := project.RoomByName(name); existing != nil {
		room.ID = existing.ID
		room.CreatedAt = existing.CreatedAt
	}
	if err := room.Validate(); err != nil {
		return err
	}
	touchRoom(&room)

	project.PutRoom(room)

	geo := sizing.DeriveGeometry(&room)
	fmt.Fprintf(output, "Room %q: %.0f SF floor, %.0f LF perimeter, %.0f CF volume\n",
		room.Name, geo.FloorArea, geo.Perimeter, geo.CubicVolume)

	if profile, ok := app.Dataset.RoomType(room.Type); ok && len(profile.ScopeHints) > 0 {
		fmt.Fprintf(output, "Scope hints for %s:\n", profile.Label)
		for _, hint := range profile.ScopeHints {
			fmt.Fprintf(output, "  - %s\n", hint)
		}
	}

	if project.Classification != nil {
		items, err := lineitems.GenerateForRoom(app.Dataset, project.Classification, &room)
		if err != nil {
			return err
		}
		project.UpsertLineItems(items)
		fmt.Fprintf(output, "Generated %d line items for %q\n", len(items), room.Name)
	} else {
		fmt.Fprintf(output, "No classification yet. Run: restobid assess %q\n", project.Name)
	}

	if err := st.SaveProject(ctx, project); err != nil {
		return err
	}
	app.Logger.LogInfo(fmt.Sprintf("saved room %s on project %s", room.Name, project.Name))
	return nil
}

func runRoomList(app *App, ref string, output io.Writer) error {
	st, err := app.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	project, err := st.FindProject(contextForStore(), ref)
	if err != nil {
		return err
	}
	if len(project.Rooms) == 0 {
		fmt.Fprintln(output, "No rooms measured yet.")
		return nil
	}

	for i := range project.Rooms {
		room := &project.Rooms[i]
		geo := sizing.DeriveGeometry(room)
		fmt.Fprintf(output, "%-20s %5.1f x %5.1f x %4.1f ft  %6.0f SF  %3.0f%% affected",
			room.Name, room.Length, room.Width, room.EffectiveHeight(), geo.FloorArea, room.DamagePercent)
		if len(room.AffectedWalls) > 0 {
			names := make([]string, len(room.AffectedWalls))
			for j, w := range room.AffectedWalls {
				names[j] = string(w)
			}
			fmt.Fprintf(output, "  walls: %s", strings.Join(names, ","))
		}
		fmt.Fprintln(output)
	}
	return nil
}

// touchRoom stamps the room's timestamps, preserving CreatedAt on updates.
func touchRoom(room *models.Room) {
	now := time.Now().UTC()
	if room.CreatedAt.IsZero() {
		room.CreatedAt = now
	}
	room.UpdatedAt = now
}

func parseWalls(names []string) ([]models.Wall, error) {
	var walls []models.Wall
	for _, name := range names {
		wall, err := models.ParseWall(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return nil, err
		}
		walls = append(walls, wall)
	}
	return walls, nil
}
