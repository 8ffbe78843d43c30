package sizing

import (
	"math"

	"github.com/paramount/restobid/internal/refdata"
)

// LGR identifies the low grain refrigerant dehumidifier factor table, the
// default equipment kind for structural drying.
const LGR = "lgr"

// EquipmentCounts holds the drying equipment sized for one room.
type EquipmentCounts struct {
	DehumidifierPints int // Required AHAM pints/day for the room volume
	DehumidifierUnits int // Reference units needed to supply those pints
	AirMovers         int // One per sizing-factor SF of wet floor
}

// SizeEquipment sizes drying equipment for a water loss from the drying
// class and the room's derived geometry. Unknown class numbers fall back to
// the class 2 factor so equipment stays computable whenever geometry exists.
func SizeEquipment(ds *refdata.Dataset, class int, geo Geometry) EquipmentCounts {
	factor := ds.DehumidifierFactor(LGR, class)
	pints := int(math.Ceil(geo.CubicVolume / factor))
	units := int(math.Ceil(float64(pints) / ds.Sizing.DehumidifierCapacityPints))
	airMovers := int(math.Ceil(geo.AffectedFloorArea / ds.Sizing.AirMoverFloorSF))
	return EquipmentCounts{
		DehumidifierPints: pints,
		DehumidifierUnits: units,
		AirMovers:         airMovers,
	}
}

// NegativeAirCFM computes the airflow a negative air machine must move for
// the given room volume and work type: (volume x ACH) / 60. Work types
// absent from the sizing table use 4 ACH, the S520/S500 recommendation.
func NegativeAirCFM(ds *refdata.Dataset, cubicVolume float64, workType string) int {
	ach, ok := ds.Sizing.NegativeAirACH[workType]
	if !ok {
		ach = 4
	}
	return int(math.Ceil(cubicVolume * ach / 60))
}
