// Package refdata loads and serves the immutable reference dataset the
// estimating engines consume: IICRC severity definitions, question scripts,
// equipment sizing factors, room type profiles, and the line item code
// catalog. The dataset is embedded in the binary, loaded once at startup,
// and verified for internal consistency before any classification runs.
package refdata

import (
	"fmt"

	"github.com/paramount/restobid/internal/models"
)

// ConfigError reports an inconsistency in the reference dataset discovered
// at load time: a rule-emitted code missing from the catalog, or a question
// script without matching severity definitions. It is fatal at startup;
// no classification is possible against an inconsistent dataset.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "reference data: " + e.Reason
}

// CategoryDef describes one water contamination category (S500).
type CategoryDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Degradation string `yaml:"degradation,omitempty"`
	PPERequired string `yaml:"ppe_required,omitempty"`
}

// ClassDef describes one water evaporation-load class (S500).
type ClassDef struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Characteristics []string `yaml:"characteristics,omitempty"`
	DryingTime      string   `yaml:"drying_time,omitempty"`
}

// RemediationLevelDef describes one mold remediation scope level (S520).
type RemediationLevelDef struct {
	Size        string `yaml:"size,omitempty"`
	Description string `yaml:"description,omitempty"`
	PPE         string `yaml:"ppe,omitempty"`
	Containment string `yaml:"containment,omitempty"`
	Personnel   string `yaml:"personnel,omitempty"`
}

// SootTypeDef describes one fire residue type (S700).
type SootTypeDef struct {
	Name            string   `yaml:"name"`
	Characteristics []string `yaml:"characteristics,omitempty"`
	Source          string   `yaml:"source,omitempty"`
	Cleaning        string   `yaml:"cleaning,omitempty"`
	Caution         string   `yaml:"caution,omitempty"`
}

// WaterDefs holds the water severity definitions keyed by number.
type WaterDefs struct {
	Categories map[int]CategoryDef `yaml:"categories"`
	Classes    map[int]ClassDef    `yaml:"classes"`
}

// MoldDefs holds the mold remediation level definitions keyed by number.
type MoldDefs struct {
	Levels map[int]RemediationLevelDef `yaml:"levels"`
}

// FireDefs holds the soot type definitions keyed by tag.
type FireDefs struct {
	SootTypes map[string]SootTypeDef `yaml:"soot_types"`
}

// RoomTypeProfile carries advisory material and scope hints for a room type.
// Profiles inform the user when adding a room; they never feed the
// deterministic generation rules.
type RoomTypeProfile struct {
	Label            string   `yaml:"label"`
	TypicalMaterials []string `yaml:"typical_materials,omitempty"`
	ScopeHints       []string `yaml:"scope_hints,omitempty"`
	CommonCodes      []string `yaml:"common_codes,omitempty"`
	Notes            string   `yaml:"notes,omitempty"`
}

// SizingFactors holds the numeric factors for equipment count formulas.
type SizingFactors struct {
	// Dehumidifier maps equipment kind (lgr, conventional, desiccant) to
	// class number to the cubic-feet divisor yielding required AHAM pints.
	Dehumidifier map[string]map[int]float64 `yaml:"dehumidifier"`

	// DehumidifierCapacityPints is the reference unit capacity (pints/day)
	// used to turn required pints into a unit count.
	DehumidifierCapacityPints float64 `yaml:"dehumidifier_capacity_pints"`

	// AirMoverFloorSF is the wet floor square footage served by one air
	// mover (midpoint of the 50-70 SF guidance).
	AirMoverFloorSF float64 `yaml:"air_mover_floor_sf"`

	// NegativeAirACH maps work type to the recommended air changes per hour
	// for negative air machines.
	NegativeAirACH map[string]float64 `yaml:"negative_air_ach"`
}

// Option is one selectable answer for a question, carrying the tagged
// payload the classification engine interprets.
type Option struct {
	Label string
	Data  models.OptionData
}

// Question is one step of a damage-type question script.
type Question struct {
	Prompt  string
	Options []Option
}

// CatalogEntry describes one line item code.
type CatalogEntry struct {
	Description string `yaml:"description"`
	Unit        string `yaml:"unit"`
}

// Dataset is the fully-resolved in-memory reference dataset. It is loaded
// once at startup and read-only thereafter.
type Dataset struct {
	Water     WaterDefs
	Mold      MoldDefs
	Fire      FireDefs
	RoomTypes map[string]RoomTypeProfile
	Sizing    SizingFactors
	Scripts   map[models.DamageType][]Question
	Catalog   map[string]CatalogEntry
}

// Script returns the question script for a damage type.
// Returns a ValidationError for damage types without a script.
func (d *Dataset) Script(t models.DamageType) ([]Question, error) {
	script, ok := d.Scripts[t]
	if !ok {
		return nil, &models.ValidationError{
			Field:  "damageType",
			Reason: fmt.Sprintf("no question script for damage type %q", t),
		}
	}
	return script, nil
}

// Catalog lookups return ok=false for unknown codes; the generator treats
// that as a startup-time configuration defect, not a runtime error.

// CatalogEntry returns the catalog record for a code.
func (d *Dataset) CatalogEntry(code string) (CatalogEntry, bool) {
	entry, ok := d.Catalog[code]
	return entry, ok
}

// WaterCategory returns the definition for a water category number.
func (d *Dataset) WaterCategory(n int) (CategoryDef, bool) {
	def, ok := d.Water.Categories[n]
	return def, ok
}

// WaterClass returns the definition for a water class number.
func (d *Dataset) WaterClass(n int) (ClassDef, bool) {
	def, ok := d.Water.Classes[n]
	return def, ok
}

// MoldLevel returns the definition for a mold remediation level.
func (d *Dataset) MoldLevel(n int) (RemediationLevelDef, bool) {
	def, ok := d.Mold.Levels[n]
	return def, ok
}

// HasMoldLevel reports whether the dataset models the given level. The
// classification engine uses this for the HVAC depth escalation, which only
// applies when a level 5 is defined.
func (d *Dataset) HasMoldLevel(n int) bool {
	_, ok := d.Mold.Levels[n]
	return ok
}

// SootType returns the definition for a soot type tag.
func (d *Dataset) SootType(tag string) (SootTypeDef, bool) {
	def, ok := d.Fire.SootTypes[tag]
	return def, ok
}

// RoomType returns the advisory profile for a room type tag.
func (d *Dataset) RoomType(tag string) (RoomTypeProfile, bool) {
	profile, ok := d.RoomTypes[tag]
	return profile, ok
}

// DehumidifierFactor returns the cubic-feet divisor for the given equipment
// kind and class number. Unknown classes fall back to the class 2 factor so
// equipment stays computable once geometry exists.
func (d *Dataset) DehumidifierFactor(kind string, class int) float64 {
	factors, ok := d.Sizing.Dehumidifier[kind]
	if !ok {
		factors = d.Sizing.Dehumidifier["lgr"]
	}
	if f, ok := factors[class]; ok {
		return f
	}
	return factors[2]
}
