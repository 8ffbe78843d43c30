// Package sizing derives physical quantities from room measurements and
// turns them into drying equipment counts using the IICRC sizing factors.
// All functions are pure arithmetic; validation of room dimensions happens
// before a room reaches this package.
package sizing

import "github.com/paramount/restobid/internal/models"

// Geometry holds the quantities derived from a room's measurements.
// Areas are in square feet, lengths in linear feet, volume in cubic feet.
type Geometry struct {
	FloorArea          float64 // length x width
	Perimeter          float64 // 2 x (length + width)
	WallArea           float64 // perimeter x height
	CubicVolume        float64 // floor area x height
	AffectedWallLength float64 // sum of affected wall linear dimensions
	AffectedFloorArea  float64 // floor area x damage percentage
}

// DeriveGeometry computes the derived quantities for a room. North and
// south walls contribute the room width to the affected wall length, east
// and west contribute the length.
func DeriveGeometry(room *models.Room) Geometry {
	height := room.EffectiveHeight()
	floorArea := room.Length * room.Width
	perimeter := 2 * (room.Length + room.Width)

	var affectedWall float64
	for _, wall := range room.AffectedWalls {
		switch wall {
		case models.WallNorth, models.WallSouth:
			affectedWall += room.Width
		case models.WallEast, models.WallWest:
			affectedWall += room.Length
		}
	}

	return Geometry{
		FloorArea:          floorArea,
		Perimeter:          perimeter,
		WallArea:           perimeter * height,
		CubicVolume:        floorArea * height,
		AffectedWallLength: affectedWall,
		AffectedFloorArea:  floorArea * room.DamagePercent / 100,
	}
}
