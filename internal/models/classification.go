package models

// Classification is the damage-type-tagged result of a completed question
// flow. Exactly one of Water, Fire, or Mold is set, matching DamageType.
//
// MissingDefinitions lists severity keys that had no entry in the reference
// dataset and were rendered with a synthesized label instead. Callers log
// these; they never abort classification.
type Classification struct {
	DamageType         DamageType           `json:"damageType"`
	Water              *WaterClassification `json:"water,omitempty"`
	Fire               *FireClassification  `json:"fire,omitempty"`
	Mold               *MoldClassification  `json:"mold,omitempty"`
	MissingDefinitions []string             `json:"-"`
}

// WaterClassification holds the IICRC S500 result for water damage.
// Category and Class are monotonic maxima over the answer set; HasMold is
// sticky once any answer reports visible growth.
type WaterClassification struct {
	Category            int    `json:"category"` // 1 (clean) to 3 (grossly contaminated)
	CategoryName        string `json:"categoryName"`
	CategoryDescription string `json:"categoryDescription,omitempty"`
	Class               int    `json:"class"` // 1 (limited) to 4 (bound water)
	ClassName           string `json:"className"`
	ClassDescription    string `json:"classDescription,omitempty"`
	HasMold             bool   `json:"hasMold"`
	PPERequired         string `json:"ppeRequired,omitempty"`
}

// FireClassification holds the S700 result for fire and smoke damage.
// Descriptive fields are last-write-wins; HVACAffected is sticky.
type FireClassification struct {
	SootType       string `json:"sootType"` // dry, wet, protein, synthetic, mixed
	SootTypeName   string `json:"sootTypeName"`
	CleaningMethod string `json:"cleaningMethod,omitempty"`
	Extent         string `json:"extent"`    // minor, moderate, major
	SootLevel      string `json:"sootLevel"` // odor_only, light, heavy, severe
	HVACAffected   bool   `json:"hvacAffected"`
}

// MoldClassification holds the S520 result for mold damage. Level is a
// monotonic maximum; Depth is last-write-wins with the HVAC special case;
// the two boolean flags are sticky.
type MoldClassification struct {
	Level          int    `json:"level"` // Remediation level 1-4 (5 = HVAC when modeled)
	LevelName      string `json:"levelName"`
	Size           string `json:"size,omitempty"`
	PPE            string `json:"ppe,omitempty"`
	Containment    string `json:"containment,omitempty"`
	Personnel      string `json:"personnel,omitempty"`
	Depth          string `json:"depth"` // surface, deep, hidden, hvac
	MoistureActive bool   `json:"moistureActive"`
	HealthConcerns bool   `json:"healthConcerns"`
}
