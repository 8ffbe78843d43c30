package models

import (
	"time"

	"github.com/google/uuid"
)

// PhotoAttachment is an opaque record for a photo captured outside this
// tool. Only the reference travels with the project.
type PhotoAttachment struct {
	ID      string    `json:"id"`
	Path    string    `json:"path"`
	Caption string    `json:"caption,omitempty"`
	AddedAt time.Time `json:"addedAt"`
}

// Project is the persisted aggregate for one assessment: the damage
// classification plus the rooms measured and the line items generated from
// them. It is the sole mutation target of the classification engine and
// line item generator outputs.
type Project struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	DamageType     DamageType        `json:"damageType,omitempty"`
	Classification *Classification   `json:"classification,omitempty"` // Nil until a flow completes
	Rooms          []Room            `json:"rooms"`
	LineItems      []LineItem        `json:"lineItems"`
	Photos         []PhotoAttachment `json:"photos"`
	Notes          string            `json:"notes,omitempty"`
}

// NewProject creates an empty project with a fresh identity.
func NewProject(name string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Room returns the room with the given ID, or nil.
func (p *Project) Room(id string) *Room {
	for i := range p.Rooms {
		if p.Rooms[i].ID == id {
			return &p.Rooms[i]
		}
	}
	return nil
}

// RoomByName returns the first room with the given name, or nil.
func (p *Project) RoomByName(name string) *Room {
	for i := range p.Rooms {
		if p.Rooms[i].Name == name {
			return &p.Rooms[i]
		}
	}
	return nil
}

// PutRoom inserts or replaces a room by ID, preserving list order for
// existing rooms.
func (p *Project) PutRoom(room Room) {
	for i := range p.Rooms {
		if p.Rooms[i].ID == room.ID {
			p.Rooms[i] = room
			p.UpdatedAt = time.Now().UTC()
			return
		}
	}
	p.Rooms = append(p.Rooms, room)
	p.UpdatedAt = time.Now().UTC()
}

// UpsertLineItems merges generated items into the project keyed by
// (code, roomID). An existing entry keeps its identity and has its quantity,
// description, unit, and category replaced; new entries are appended in the
// order generated. Items belonging to other keys are untouched, so
// regenerating one room never disturbs another room's entries.
func (p *Project) UpsertLineItems(items []LineItem) {
	index := make(map[ItemKey]int, len(p.LineItems))
	for i := range p.LineItems {
		index[p.LineItems[i].Key()] = i
	}

	now := time.Now().UTC()
	for _, item := range items {
		if i, ok := index[item.Key()]; ok {
			item.ID = p.LineItems[i].ID
			item.AddedAt = p.LineItems[i].AddedAt
			p.LineItems[i] = item
			continue
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.AddedAt.IsZero() {
			item.AddedAt = now
		}
		index[item.Key()] = len(p.LineItems)
		p.LineItems = append(p.LineItems, item)
	}
	p.UpdatedAt = now
}

// ItemsForRoom returns the line items scoped to the given room ID, in
// project order. An empty ID selects the rough pre-room estimate items.
func (p *Project) ItemsForRoom(roomID string) []LineItem {
	var items []LineItem
	for _, item := range p.LineItems {
		if item.RoomID == roomID {
			items = append(items, item)
		}
	}
	return items
}
