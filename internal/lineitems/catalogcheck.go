package lineitems

import (
	"fmt"

	"github.com/paramount/restobid/internal/models"
	"github.com/paramount/restobid/internal/refdata"
)

// emittableCodes lists every code any generation rule can emit, per damage
// type. Kept next to the rule tables; a rule emitting a code absent from
// this list is a bug the catalog closure test catches.
var emittableCodes = map[models.DamageType][]string{
	models.DamageWater: {
		CodeAirMover, CodeDehumidifier, CodeMonitoring,
		CodeExtractCarpet, CodeExtractHard, CodePadRemoval,
		CodeAntimicrobial, CodeContainment,
		CodeFloodCut2Ft, CodeFloodCut4Ft,
		CodeInsulation, CodeFogging, CodeFurnitureBlock,
	},
	models.DamageFire: {
		CodeAirScrubber, CodeThermalFog,
		CodeHEPAVacuum, CodeDrySoot, CodeWetSoot,
		CodeLightSmoke, CodeHeavySmoke, CodeDuctCleaning,
	},
	models.DamageMold: {
		CodeHEPAVacuum, CodeAntimicrobial,
		CodeContainSetup, CodeContainment, CodeAirScrubber,
		CodeFloodCut2Ft, CodeFramingCleaning,
		CodeEquipDecon, CodeFogging, CodeSampling,
	},
}

// EmittableCodes returns the codes the generator can emit for a damage type.
func EmittableCodes(t models.DamageType) []string {
	return emittableCodes[t]
}

// VerifyCatalog checks that every code the generation rules can emit exists
// in the reference catalog. Run once at startup after the dataset loads; a
// miss is a configuration defect that aborts the program, so generation
// itself never fails on catalog lookups.
func VerifyCatalog(ds *refdata.Dataset) error {
	for damageType, codes := range emittableCodes {
		for _, code := range codes {
			if _, ok := ds.CatalogEntry(code); !ok {
				return &refdata.ConfigError{
					Reason: fmt.Sprintf("%s rule emits code %s with no catalog entry", damageType, code),
				}
			}
		}
	}
	return nil
}
