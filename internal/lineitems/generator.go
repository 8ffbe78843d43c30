package lineitems

import (
	"fmt"
	"math"

	"github.com/paramount/restobid/internal/models"
	"github.com/paramount/restobid/internal/refdata"
	"github.com/paramount/restobid/internal/sizing"
)

// Rough-mode assumptions for pre-room estimates. A 200 SF room with a 9 ft
// ceiling stands in for geometry until actual measurements exist; outputs
// built on it are labeled as estimates pending measurements.
const (
	RoughFloorAreaSF    = 200.0
	RoughCeilingFt      = 9.0
	roughPlaceholderQty = 1.0
)

// RoughEstimateNote labels every rough-mode output for the user.
const RoughEstimateNote = "Estimate based on assumed 200 SF room - pending actual measurements"

// defaultMonitoringDays is the assumed drying/monitoring duration for
// per-day equipment and labor items.
const defaultMonitoringDays = 3

// samplingQty is the fixed air/surface sample count added for mold work.
const samplingQty = 2

// RoughGeometry returns the assumed geometry rough mode sizes equipment
// against.
func RoughGeometry() sizing.Geometry {
	return sizing.Geometry{
		FloorArea:         RoughFloorAreaSF,
		CubicVolume:       RoughFloorAreaSF * RoughCeilingFt,
		AffectedFloorArea: RoughFloorAreaSF,
	}
}

// Generate produces the rough pre-room line items for a classification.
// Quantities for area- and length-based work are unit placeholders until a
// room supplies geometry; equipment counts are sized from the assumed
// default geometry so the estimate is immediately actionable.
func Generate(ds *refdata.Dataset, cls *models.Classification) ([]models.LineItem, error) {
	b, err := newBuilder(ds, nil, "")
	if err != nil {
		return nil, err
	}

	switch cls.DamageType {
	case models.DamageWater:
		b.roughWater(cls.Water)
	case models.DamageFire:
		b.roughFire(cls.Fire)
	case models.DamageMold:
		b.roughMold(cls.Mold)
	default:
		return nil, &models.ValidationError{
			Field:  "damageType",
			Reason: fmt.Sprintf("cannot generate line items for damage type %q", cls.DamageType),
		}
	}
	return b.items, nil
}

// GenerateForRoom produces the room-scoped line items for a classification,
// sized from the room's derived geometry. Items carry the room association
// key so the project upsert replaces prior entries for re-derived codes.
func GenerateForRoom(ds *refdata.Dataset, cls *models.Classification, room *models.Room) ([]models.LineItem, error) {
	if err := room.Validate(); err != nil {
		return nil, err
	}
	geo := sizing.DeriveGeometry(room)

	b, err := newBuilder(ds, room, room.Name)
	if err != nil {
		return nil, err
	}

	switch cls.DamageType {
	case models.DamageWater:
		b.roomWater(cls.Water, room, geo)
	case models.DamageFire:
		b.roomFire(cls.Fire, geo)
	case models.DamageMold:
		b.roomMold(cls.Mold, geo)
	default:
		return nil, &models.ValidationError{
			Field:  "damageType",
			Reason: fmt.Sprintf("cannot generate line items for damage type %q", cls.DamageType),
		}
	}
	return b.items, nil
}

// builder accumulates generated items, resolving each code against the
// catalog and deduplicating by code within the batch: when a later rule
// re-derives a code, its quantity supersedes the earlier one.
type builder struct {
	ds       *refdata.Dataset
	roomID   string
	roomName string
	items    []models.LineItem
	index    map[string]int
}

func newBuilder(ds *refdata.Dataset, room *models.Room, roomName string) (*builder, error) {
	b := &builder{ds: ds, roomName: roomName, index: make(map[string]int)}
	if room != nil {
		b.roomID = room.ID
	}
	return b, nil
}

// add appends or supersedes one item. Catalog misses are configuration
// defects caught by VerifyCatalog at startup; should one slip through, the
// item degrades to a code-labeled entry rather than aborting the pipeline.
func (b *builder) add(code, category string, quantity float64) {
	entry, ok := b.ds.CatalogEntry(code)
	if !ok {
		entry = refdata.CatalogEntry{Description: code, Unit: "EA"}
	}

	description := entry.Description
	if b.roomName != "" {
		description = fmt.Sprintf("%s - %s", entry.Description, b.roomName)
	}

	item := models.LineItem{
		Code:        code,
		Description: description,
		Quantity:    round2(quantity),
		Unit:        entry.Unit,
		Category:    category,
		RoomID:      b.roomID,
		RoomName:    b.roomName,
	}

	if i, ok := b.index[code]; ok {
		b.items[i] = item
		return
	}
	b.index[code] = len(b.items)
	b.items = append(b.items, item)
}

// round2 rounds a quantity to two decimal places before storage.
func round2(q float64) float64 {
	return math.Round(q*100) / 100
}

// roughWater applies the water rule table with assumed defaults. Floor type
// is unknown pre-room, so carpet-wand extraction is assumed and the
// carpet-only pad removal and furniture blocking rules are skipped.
func (b *builder) roughWater(wc *models.WaterClassification) {
	eq := sizing.SizeEquipment(b.ds, wc.Class, RoughGeometry())

	b.add(CodeAirMover, CategoryEquipment, float64(eq.AirMovers))
	b.add(CodeDehumidifier, CategoryEquipment, float64(eq.DehumidifierUnits))
	b.add(CodeMonitoring, CategoryLabor, defaultMonitoringDays)
	b.add(CodeExtractCarpet, CategoryExtraction, roughPlaceholderQty)

	if wc.Category >= 2 {
		b.add(CodeAntimicrobial, CategoryTreatment, roughPlaceholderQty)
	}
	if wc.Category >= 3 {
		b.add(CodeContainment, CategoryContainment, roughPlaceholderQty)
	}
	// No geometry yet: class 2+ implies wall wicking, so a flood cut is
	// assumed outright rather than gated on wall selection.
	if wc.Class >= 2 {
		b.add(CodeFloodCut2Ft, CategoryDemo, roughPlaceholderQty)
	}
	if wc.Class >= 3 {
		b.add(CodeInsulation, CategoryDemo, roughPlaceholderQty)
	}
	if wc.HasMold {
		b.add(CodeFogging, CategoryTreatment, roughPlaceholderQty)
	}
}

// roomWater applies the water rule table sized from actual geometry.
func (b *builder) roomWater(wc *models.WaterClassification, room *models.Room, geo sizing.Geometry) {
	eq := sizing.SizeEquipment(b.ds, wc.Class, geo)
	carpet := room.FloorType == models.FloorCarpet

	b.add(CodeAirMover, CategoryEquipment, float64(eq.AirMovers))
	b.add(CodeDehumidifier, CategoryEquipment, float64(eq.DehumidifierUnits))
	b.add(CodeMonitoring, CategoryLabor, defaultMonitoringDays)

	if carpet {
		b.add(CodeExtractCarpet, CategoryExtraction, geo.AffectedFloorArea)
		b.add(CodePadRemoval, CategoryDemo, geo.AffectedFloorArea)
	} else {
		b.add(CodeExtractHard, CategoryExtraction, geo.AffectedFloorArea)
	}

	if wc.Category >= 2 {
		b.add(CodeAntimicrobial, CategoryTreatment, geo.AffectedFloorArea)
	}
	if wc.Category >= 3 {
		b.add(CodeContainment, CategoryContainment, geo.Perimeter)
	}

	// Flood cut height follows the observed wick height: a 2-foot cut
	// covers wicking up to 24 inches, anything higher takes the 4-foot cut.
	if geo.AffectedWallLength > 0 && room.WallWickHeight > 0 {
		if room.WallWickHeight <= 24 {
			b.add(CodeFloodCut2Ft, CategoryDemo, geo.AffectedWallLength)
		} else {
			b.add(CodeFloodCut4Ft, CategoryDemo, geo.AffectedWallLength)
		}
	}

	if wc.Class >= 3 {
		b.add(CodeInsulation, CategoryDemo, geo.WallArea)
	}
	if wc.HasMold {
		b.add(CodeFogging, CategoryTreatment, geo.FloorArea)
	}
	if carpet {
		b.add(CodeFurnitureBlock, CategoryContents, math.Ceil(geo.FloorArea/50))
	}
}

// roughFire applies the fire rule table with placeholder quantities.
func (b *builder) roughFire(fc *models.FireClassification) {
	b.add(CodeAirScrubber, CategoryEquipment, defaultMonitoringDays)
	b.add(CodeThermalFog, CategoryDeodorization, roughPlaceholderQty)
	b.sootItems(fc, roughPlaceholderQty, roughPlaceholderQty)
	if fc.HVACAffected {
		b.add(CodeDuctCleaning, CategoryHVAC, 1)
	}
}

// roomFire applies the fire rule table sized from actual geometry. Wall
// cleaning applies to the affected wall area; fogging to the room volume.
func (b *builder) roomFire(fc *models.FireClassification, geo sizing.Geometry) {
	affectedWallArea := geo.AffectedWallLength * geo.WallArea / geo.Perimeter

	b.add(CodeAirScrubber, CategoryEquipment, defaultMonitoringDays)
	b.add(CodeThermalFog, CategoryDeodorization, geo.CubicVolume)
	b.sootItems(fc, geo.FloorArea, affectedWallArea)
	if fc.HVACAffected {
		b.add(CodeDuctCleaning, CategoryHVAC, 1)
	}
}

// sootItems adds the soot-type and soot-level cleaning items shared by both
// fire modes.
func (b *builder) sootItems(fc *models.FireClassification, surfaceQty, wallQty float64) {
	switch fc.SootType {
	case "dry", "synthetic":
		b.add(CodeHEPAVacuum, CategoryCleaning, surfaceQty)
		b.add(CodeDrySoot, CategoryCleaning, surfaceQty)
	case "wet", "protein", "mixed":
		b.add(CodeWetSoot, CategoryCleaning, surfaceQty)
	}

	switch fc.SootLevel {
	case "light", "odor_only":
		b.add(CodeLightSmoke, CategoryCleaning, wallQty)
	case "heavy", "severe":
		b.add(CodeHeavySmoke, CategoryCleaning, wallQty)
	}
}

// roughMold applies the mold rule table with placeholder quantities, plus
// the fixed sampling item that only belongs to the pre-room estimate.
func (b *builder) roughMold(mc *models.MoldClassification) {
	b.add(CodeHEPAVacuum, CategoryCleaning, roughPlaceholderQty)
	b.add(CodeAntimicrobial, CategoryTreatment, roughPlaceholderQty)

	if mc.Level >= 3 {
		b.add(CodeContainSetup, CategoryContainment, 1)
		b.add(CodeContainment, CategoryContainment, roughPlaceholderQty)
		b.add(CodeAirScrubber, CategoryEquipment, defaultMonitoringDays)
	}
	if mc.Depth == "deep" || mc.Depth == "hidden" {
		b.add(CodeFloodCut2Ft, CategoryDemo, roughPlaceholderQty)
		b.add(CodeFramingCleaning, CategoryCleaning, roughPlaceholderQty)
	}
	if mc.Level >= 4 {
		b.add(CodeEquipDecon, CategorySafety, 1)
		b.add(CodeFogging, CategoryTreatment, roughPlaceholderQty)
	}
	b.add(CodeSampling, CategoryTesting, samplingQty)
}

// roomMold applies the mold rule table sized from actual geometry. Drywall
// removal follows the affected walls when selected, the full perimeter
// otherwise.
func (b *builder) roomMold(mc *models.MoldClassification, geo sizing.Geometry) {
	wallLength := geo.AffectedWallLength
	if wallLength == 0 {
		wallLength = geo.Perimeter
	}
	wallArea := wallLength * geo.WallArea / geo.Perimeter

	b.add(CodeHEPAVacuum, CategoryCleaning, geo.FloorArea)
	b.add(CodeAntimicrobial, CategoryTreatment, geo.FloorArea)

	if mc.Level >= 3 {
		b.add(CodeContainSetup, CategoryContainment, 1)
		b.add(CodeContainment, CategoryContainment, geo.Perimeter)
		b.add(CodeAirScrubber, CategoryEquipment, defaultMonitoringDays)
	}
	if mc.Depth == "deep" || mc.Depth == "hidden" {
		b.add(CodeFloodCut2Ft, CategoryDemo, wallLength)
		b.add(CodeFramingCleaning, CategoryCleaning, wallArea)
	}
	if mc.Level >= 4 {
		b.add(CodeEquipDecon, CategorySafety, 1)
		b.add(CodeFogging, CategoryTreatment, geo.FloorArea)
	}
}
