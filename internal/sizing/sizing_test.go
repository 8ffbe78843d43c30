package sizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paramount/restobid/internal/models"
	"github.com/paramount/restobid/internal/refdata"
)

func loadDataset(t *testing.T) *refdata.Dataset {
	t.Helper()
	ds, err := refdata.Load()
	require.NoError(t, err)
	return ds
}

func TestDeriveGeometry(t *testing.T) {
	room := &models.Room{
		Name:          "living room",
		Length:        20,
		Width:         15,
		Height:        9,
		DamagePercent: 100,
		AffectedWalls: []models.Wall{models.WallNorth, models.WallEast},
	}

	geo := DeriveGeometry(room)

	assert.Equal(t, 300.0, geo.FloorArea)
	assert.Equal(t, 70.0, geo.Perimeter)
	assert.Equal(t, 630.0, geo.WallArea)
	assert.Equal(t, 2700.0, geo.CubicVolume)
	assert.Equal(t, 35.0, geo.AffectedWallLength, "north contributes width, east contributes length")
	assert.Equal(t, 300.0, geo.AffectedFloorArea)
}

func TestDeriveGeometryPartialDamage(t *testing.T) {
	room := &models.Room{Name: "office", Length: 10, Width: 10, DamagePercent: 30}

	geo := DeriveGeometry(room)

	assert.Equal(t, 100.0, geo.FloorArea)
	assert.Equal(t, 30.0, geo.AffectedFloorArea)
	assert.Equal(t, 900.0, geo.CubicVolume, "height defaults to 9 ft")
	assert.Zero(t, geo.AffectedWallLength)
}

func TestSizeEquipment(t *testing.T) {
	ds := loadDataset(t)

	tests := []struct {
		name      string
		class     int
		geo       Geometry
		wantPints int
		wantUnits int
		wantFans  int
	}{
		{
			name:      "class 2 full room",
			class:     2,
			geo:       Geometry{CubicVolume: 2700, AffectedFloorArea: 150},
			wantPints: 54, // ceil(2700/50)
			wantUnits: 1,  // ceil(54/110)
			wantFans:  3,  // ceil(150/60)
		},
		{
			name:      "class 1 uses the 100 factor",
			class:     1,
			geo:       Geometry{CubicVolume: 1000, AffectedFloorArea: 61},
			wantPints: 10,
			wantUnits: 1,
			wantFans:  2,
		},
		{
			name:      "class 4 large volume needs multiple units",
			class:     4,
			geo:       Geometry{CubicVolume: 10000, AffectedFloorArea: 600},
			wantPints: 250, // ceil(10000/40)
			wantUnits: 3,   // ceil(250/110)
			wantFans:  10,
		},
		{
			name:      "unknown class falls back to class 2 factor",
			class:     7,
			geo:       Geometry{CubicVolume: 2700, AffectedFloorArea: 150},
			wantPints: 54,
			wantUnits: 1,
			wantFans:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq := SizeEquipment(ds, tt.class, tt.geo)
			assert.Equal(t, tt.wantPints, eq.DehumidifierPints)
			assert.Equal(t, tt.wantUnits, eq.DehumidifierUnits)
			assert.Equal(t, tt.wantFans, eq.AirMovers)
		})
	}
}

func TestNegativeAirCFM(t *testing.T) {
	ds := loadDataset(t)

	// 2700 CF at 4 ACH: ceil(2700*4/60) = 180 CFM.
	assert.Equal(t, 180, NegativeAirCFM(ds, 2700, "mold_remediation"))
	assert.Equal(t, 180, NegativeAirCFM(ds, 2700, "unknown_work_type"), "unknown work types use 4 ACH")
}
