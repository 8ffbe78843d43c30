package models

import (
	"fmt"
	"time"
)

// DefaultCeilingHeight is assumed when a room is saved without a height, in
// feet. Matches the typical residential ceiling the estimating formulas use.
const DefaultCeilingHeight = 9.0

// Wall identifies one wall of a rectangular room.
type Wall string

// Walls of a rectangular room. North and south run along the room width,
// east and west along the length.
const (
	WallNorth Wall = "north"
	WallEast  Wall = "east"
	WallSouth Wall = "south"
	WallWest  Wall = "west"
)

// AllWalls lists every wall in display order.
var AllWalls = []Wall{WallNorth, WallEast, WallSouth, WallWest}

// ParseWall validates a wall name.
func ParseWall(s string) (Wall, error) {
	switch Wall(s) {
	case WallNorth, WallEast, WallSouth, WallWest:
		return Wall(s), nil
	}
	return "", &ValidationError{
		Field:  "wall",
		Reason: fmt.Sprintf("unknown wall %q (expected north, east, south, or west)", s),
	}
}

// FloorCarpet is the floor type that selects carpet-specific extraction,
// pad removal, and furniture blocking rules.
const FloorCarpet = "carpet"

// Room captures measured dimensions and damage observations for one room.
// Dimensions are in feet; WallWickHeight is in inches.
type Room struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type,omitempty"` // Room type tag (bathroom, kitchen, ...)
	Length         float64   `json:"length"`
	Width          float64   `json:"width"`
	Height         float64   `json:"height"`
	FloorType      string    `json:"floorType"`      // carpet, hardwood, laminate, tile, vinyl, concrete
	DamagePercent  float64   `json:"damagePercent"`  // Portion of floor area affected, 0-100
	WallWickHeight float64   `json:"wallWickHeight"` // Water wick height on walls, inches
	AffectedWalls  []Wall    `json:"affectedWalls"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate checks the invariants required to persist a room. Height is
// defaulted rather than rejected; length and width must be positive.
func (r *Room) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Reason: "room name is required"}
	}
	if r.Length <= 0 {
		return &ValidationError{Field: "length", Reason: "room length must be positive"}
	}
	if r.Width <= 0 {
		return &ValidationError{Field: "width", Reason: "room width must be positive"}
	}
	if r.DamagePercent < 0 || r.DamagePercent > 100 {
		return &ValidationError{Field: "damagePercent", Reason: "damage percentage must be between 0 and 100"}
	}
	if r.WallWickHeight < 0 {
		return &ValidationError{Field: "wallWickHeight", Reason: "wall wick height cannot be negative"}
	}
	return nil
}

// EffectiveHeight returns the room height, defaulting when unset.
func (r *Room) EffectiveHeight() float64 {
	if r.Height <= 0 {
		return DefaultCeilingHeight
	}
	return r.Height
}

// HasWall reports whether the given wall is marked as affected.
func (r *Room) HasWall(w Wall) bool {
	for _, wall := range r.AffectedWalls {
		if wall == w {
			return true
		}
	}
	return false
}
