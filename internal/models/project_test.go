package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	p := NewProject("kitchen flood")

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "kitchen flood", p.Name)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestPutRoom(t *testing.T) {
	p := NewProject("test")

	p.PutRoom(Room{ID: "r1", Name: "bedroom", Length: 10, Width: 10})
	p.PutRoom(Room{ID: "r2", Name: "hall", Length: 6, Width: 3})
	require.Len(t, p.Rooms, 2)

	// Replacing by ID keeps list order.
	p.PutRoom(Room{ID: "r1", Name: "bedroom", Length: 12, Width: 10})
	require.Len(t, p.Rooms, 2)
	assert.Equal(t, 12.0, p.Rooms[0].Length)
	assert.Equal(t, "hall", p.Rooms[1].Name)

	assert.NotNil(t, p.Room("r2"))
	assert.Nil(t, p.Room("r3"))
	assert.NotNil(t, p.RoomByName("hall"))
	assert.Nil(t, p.RoomByName("attic"))
}

func TestUpsertLineItemsMergesByCodeAndRoom(t *testing.T) {
	p := NewProject("test")

	p.UpsertLineItems([]LineItem{
		{Code: "WTRDRY", Description: "Air mover", Quantity: 2, Unit: "EA", RoomID: "r1"},
		{Code: "WTRDRY", Description: "Air mover", Quantity: 3, Unit: "EA", RoomID: "r2"},
		{Code: "WTREXT", Description: "Extraction", Quantity: 100, Unit: "SF", RoomID: "r1"},
	})
	require.Len(t, p.LineItems, 3, "same code in different rooms stays distinct")

	firstID := p.LineItems[0].ID
	firstAdded := p.LineItems[0].AddedAt
	require.NotEmpty(t, firstID)

	// Regenerating room r1 replaces quantities but keeps identity, and
	// leaves r2's entry untouched.
	p.UpsertLineItems([]LineItem{
		{Code: "WTRDRY", Description: "Air mover", Quantity: 4, Unit: "EA", RoomID: "r1"},
	})
	require.Len(t, p.LineItems, 3)
	assert.Equal(t, 4.0, p.LineItems[0].Quantity)
	assert.Equal(t, firstID, p.LineItems[0].ID)
	assert.Equal(t, firstAdded, p.LineItems[0].AddedAt)
	assert.Equal(t, 3.0, p.LineItems[1].Quantity)
}

func TestUpsertLineItemsIdempotent(t *testing.T) {
	p := NewProject("test")
	items := []LineItem{
		{Code: "WTRDRY", Quantity: 2, Unit: "EA"},
		{Code: "WTRDHM", Quantity: 1, Unit: "EA"},
	}

	p.UpsertLineItems(items)
	p.UpsertLineItems(items)
	p.UpsertLineItems(items)

	assert.Len(t, p.LineItems, 2)
}

func TestItemsForRoom(t *testing.T) {
	p := NewProject("test")
	p.UpsertLineItems([]LineItem{
		{Code: "WTRDRY", Quantity: 2, RoomID: ""},
		{Code: "WTRDRY", Quantity: 3, RoomID: "r1"},
		{Code: "WTREXT", Quantity: 100, RoomID: "r1"},
	})

	rough := p.ItemsForRoom("")
	require.Len(t, rough, 1)
	assert.Equal(t, 2.0, rough[0].Quantity)

	scoped := p.ItemsForRoom("r1")
	assert.Len(t, scoped, 2)

	assert.Empty(t, p.ItemsForRoom("r9"))
}
