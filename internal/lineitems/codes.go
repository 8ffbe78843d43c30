// Package lineitems turns a damage classification (and optionally a room's
// derived geometry) into a deduplicated, categorized list of estimate line
// items. Two generation modes exist deliberately: a rough pre-room estimate
// built on assumed defaults, and a room-scoped exact mode sized from actual
// measurements. The two rule sets overlap but are not identical and are
// kept distinct on purpose.
package lineitems

// Line item codes emitted by the generation rules. Every code listed here
// must resolve against the reference catalog; VerifyCatalog enforces that
// once at startup.
const (
	// Water
	CodeAirMover        = "WTRDRY"
	CodeDehumidifier    = "WTRDHM"
	CodeMonitoring      = "WTREQ"
	CodeExtractCarpet   = "WTREXT"
	CodeExtractHard     = "WTREXTH"
	CodePadRemoval      = "WTRPAD"
	CodeAntimicrobial   = "WTRGRM"
	CodeContainment     = "WTRCNTLF"
	CodeFloodCut2Ft     = "WTRDRYWLF"
	CodeFloodCut4Ft     = "WTRDRYWI"
	CodeInsulation      = "WTRINS"
	CodeFogging         = "HMRDIS"
	CodeFurnitureBlock  = "WTRBLK"

	// Fire
	CodeAirScrubber     = "WTRNAFAN"
	CodeThermalFog      = "CLNFOG"
	CodeDrySoot         = "CLNSOOT"
	CodeWetSoot         = "CLNSOOTW"
	CodeHEPAVacuum      = "HEPAFSH"
	CodeLightSmoke      = "CLNSMOKE"
	CodeHeavySmoke      = "CLNSMOKEH"
	CodeDuctCleaning    = "CLNDUCT"

	// Mold
	CodeContainSetup    = "HMRCNT"
	CodeFramingCleaning = "HMRABR"
	CodeEquipDecon      = "HMREQD"
	CodeSampling        = "HMRASBTS"
)

// Item category tags, grouping related work in displays and exports.
const (
	CategoryEquipment     = "Equipment"
	CategoryLabor         = "Labor"
	CategoryExtraction    = "Extraction"
	CategoryDemo          = "Demo"
	CategoryTreatment     = "Treatment"
	CategoryContainment   = "Containment"
	CategoryCleaning      = "Cleaning"
	CategoryDeodorization = "Deodorization"
	CategoryHVAC          = "HVAC"
	CategorySafety        = "Safety"
	CategoryTesting       = "Testing"
	CategoryContents      = "Contents"
)
