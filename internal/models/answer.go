package models

// OptionData is the closed union of per-damage-type answer payloads. Each
// question option carries exactly one of the three concrete types below, so
// the classification engine's field access is exhaustively checked instead of
// duck-typed against free-form keys.
type OptionData interface {
	// DamageType reports which damage type's script this payload belongs to.
	DamageType() DamageType
}

// Time modifier tags carried by water elapsed-time answers.
const (
	ModifierNone               = "none"
	ModifierMayUpgradeCategory = "may_upgrade_category"
	ModifierUpgradeCategory    = "upgrade_category"
	ModifierAssumeCat3         = "assume_cat3"
)

// Mold observation tags carried by the water script's mold question.
const (
	MoldObservedNone  = "none"
	MoldObservedMinor = "minor"
	MoldObservedMajor = "major"
)

// WaterOptionData is the payload for water damage question options.
// Zero values mean the option carries no hint for that field.
type WaterOptionData struct {
	Category     int    `yaml:"category,omitempty"`      // Category hint (1-3)
	Class        int    `yaml:"class,omitempty"`         // Class hint (1-4)
	TimeModifier string `yaml:"time_modifier,omitempty"` // Elapsed-time modifier tag
	Mold         string `yaml:"mold,omitempty"`          // none, minor, major
}

// DamageType implements OptionData.
func (WaterOptionData) DamageType() DamageType { return DamageWater }

// FireOptionData is the payload for fire damage question options.
type FireOptionData struct {
	SootType  string `yaml:"soot_type,omitempty"`  // dry, wet, protein, synthetic, mixed
	Extent    string `yaml:"extent,omitempty"`     // minor, moderate, major
	SootLevel string `yaml:"soot_level,omitempty"` // odor_only, light, heavy, severe
	HVAC      string `yaml:"hvac,omitempty"`       // no, possible, yes
}

// DamageType implements OptionData.
func (FireOptionData) DamageType() DamageType { return DamageFire }

// MoldOptionData is the payload for mold question options.
type MoldOptionData struct {
	Level    int    `yaml:"level,omitempty"`    // Remediation level hint (1-5)
	Depth    string `yaml:"depth,omitempty"`    // surface, deep, hidden, hvac
	Moisture string `yaml:"moisture,omitempty"` // resolved, active, unknown
	Health   string `yaml:"health,omitempty"`   // none, mild, significant
}

// DamageType implements OptionData.
func (MoldOptionData) DamageType() DamageType { return DamageMold }

// Answer records one answered question: a snapshot of the prompt and the
// selected option's label, plus the option's tagged payload the
// classification engine interprets.
type Answer struct {
	Question string     // Prompt text at the time of answering
	Selected string     // Selected option label
	Data     OptionData // Tagged payload from the selected option
}

// AnswerSet accumulates answers keyed by question index (0-based, dense from
// zero once a flow completes). Only the answer collector mutates it.
type AnswerSet map[int]Answer
