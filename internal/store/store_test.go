package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paramount/restobid/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleProject(t *testing.T) *models.Project {
	t.Helper()
	p := models.NewProject("burst pipe - 14 Elm St")
	p.DamageType = models.DamageWater
	p.Classification = &models.Classification{
		DamageType: models.DamageWater,
		Water: &models.WaterClassification{
			Category:     2,
			CategoryName: "Category 2 - Gray Water",
			Class:        2,
			ClassName:    "Class 2 - Fast Evaporation",
		},
	}
	p.PutRoom(models.Room{
		ID:             "room-1",
		Name:           "bedroom",
		Type:           "bedroom",
		Length:         12,
		Width:          10,
		Height:         8,
		FloorType:      "carpet",
		DamagePercent:  80,
		WallWickHeight: 12,
		AffectedWalls:  []models.Wall{models.WallNorth, models.WallWest},
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	})
	p.UpsertLineItems([]models.LineItem{
		{Code: "WTRDRY", Description: "Air mover", Quantity: 2, Unit: "EA", Category: "Equipment", RoomID: "room-1", RoomName: "bedroom"},
		{Code: "WTREXT", Description: "Extraction", Quantity: 96, Unit: "SF", Category: "Extraction", RoomID: "room-1", RoomName: "bedroom"},
	})
	p.Photos = append(p.Photos, models.PhotoAttachment{
		ID:      "photo-1",
		Path:    "/tmp/IMG_0001.jpg",
		Caption: "wick line on north wall",
		AddedAt: time.Now().UTC(),
	})
	return p
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p := sampleProject(t)
	require.NoError(t, st.SaveProject(ctx, p))

	loaded, err := st.LoadProject(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, p.ID, loaded.ID)
	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, models.DamageWater, loaded.DamageType)
	require.NotNil(t, loaded.Classification)
	assert.Equal(t, 2, loaded.Classification.Water.Category)

	require.Len(t, loaded.Rooms, 1)
	room := loaded.Rooms[0]
	assert.Equal(t, "bedroom", room.Name)
	assert.Equal(t, []models.Wall{models.WallNorth, models.WallWest}, room.AffectedWalls)
	assert.Equal(t, 80.0, room.DamagePercent)

	require.Len(t, loaded.LineItems, 2)
	assert.Equal(t, "WTRDRY", loaded.LineItems[0].Code)
	assert.Equal(t, 96.0, loaded.LineItems[1].Quantity)

	require.Len(t, loaded.Photos, 1)
	assert.Equal(t, "wick line on north wall", loaded.Photos[0].Caption)
}

func TestSaveReplacesChildRows(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p := sampleProject(t)
	require.NoError(t, st.SaveProject(ctx, p))

	// Drop one line item and save again; the removed row must not survive.
	p.LineItems = p.LineItems[:1]
	require.NoError(t, st.SaveProject(ctx, p))

	loaded, err := st.LoadProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, loaded.LineItems, 1)
	assert.Equal(t, "WTRDRY", loaded.LineItems[0].Code)
}

func TestSaveIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p := sampleProject(t)
	require.NoError(t, st.SaveProject(ctx, p))
	require.NoError(t, st.SaveProject(ctx, p))

	loaded, err := st.LoadProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Rooms, 1)
	assert.Len(t, loaded.LineItems, 2)
	assert.Len(t, loaded.Photos, 1)
}

func TestLoadProjectNotFound(t *testing.T) {
	st := openTestStore(t)

	_, err := st.LoadProject(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestListProjectsOrderedByUpdate(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	older := models.NewProject("older")
	older.UpdatedAt = time.Now().UTC().Add(-time.Hour)
	newer := models.NewProject("newer")
	require.NoError(t, st.SaveProject(ctx, older))
	require.NoError(t, st.SaveProject(ctx, newer))

	summaries, err := st.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "newer", summaries[0].Name)
	assert.Equal(t, "older", summaries[1].Name)
}

func TestListProjectCounts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p := sampleProject(t)
	require.NoError(t, st.SaveProject(ctx, p))

	summaries, err := st.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].RoomCount)
	assert.Equal(t, 2, summaries[0].ItemCount)
}

func TestDeleteProject(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p := sampleProject(t)
	require.NoError(t, st.SaveProject(ctx, p))
	require.NoError(t, st.DeleteProject(ctx, p.ID))

	_, err := st.LoadProject(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	err = st.DeleteProject(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestFindProject(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p := sampleProject(t)
	require.NoError(t, st.SaveProject(ctx, p))

	t.Run("by exact id", func(t *testing.T) {
		found, err := st.FindProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, found.ID)
	})

	t.Run("by name", func(t *testing.T) {
		found, err := st.FindProject(ctx, p.Name)
		require.NoError(t, err)
		assert.Equal(t, p.ID, found.ID)
	})

	t.Run("by id prefix", func(t *testing.T) {
		found, err := st.FindProject(ctx, p.ID[:8])
		require.NoError(t, err)
		assert.Equal(t, p.ID, found.ID)
	})

	t.Run("unknown reference", func(t *testing.T) {
		_, err := st.FindProject(ctx, "zzzz")
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestOpenLocksDataDirectory(t *testing.T) {
	dir := t.TempDir()

	st, err := Open(dir)
	require.NoError(t, err)
	defer st.Close()

	_, err = Open(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another restobid instance")
}

func TestReopenAfterClose(t *testing.T) {
	dir := t.TempDir()

	st, err := Open(dir)
	require.NoError(t, err)

	p := sampleProject(t)
	require.NoError(t, st.SaveProject(context.Background(), p))
	require.NoError(t, st.Close())

	st2, err := Open(dir)
	require.NoError(t, err)
	defer st2.Close()

	loaded, err := st2.LoadProject(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, loaded.Name)
}
