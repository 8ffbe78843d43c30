// Package classify implements the damage classification engine and the
// answer collector that feeds it. Classification is a pure function of the
// reference dataset, the damage type, and the accumulated answers: severity
// fields aggregate worst-observed-wins, descriptive fields take the most
// recent answer, and hazard flags are sticky once set.
package classify

import (
	"fmt"

	"github.com/paramount/restobid/internal/models"
	"github.com/paramount/restobid/internal/refdata"
)

// Classify maps a completed answer set to a Classification for the given
// damage type. It is deterministic and total over answer sets drawn from the
// matching question script; answers carrying another script's payload or
// indices beyond the script length are rejected with a ValidationError.
//
// Missing severity definitions never fail classification: the engine
// synthesizes a generic label and records the miss on the result for the
// caller to log.
func Classify(ds *refdata.Dataset, damageType models.DamageType, answers models.AnswerSet) (*models.Classification, error) {
	script, err := ds.Script(damageType)
	if err != nil {
		return nil, err
	}

	ordered, err := orderedAnswers(damageType, script, answers)
	if err != nil {
		return nil, err
	}

	result := &models.Classification{DamageType: damageType}
	switch damageType {
	case models.DamageWater:
		result.Water = classifyWater(ds, ordered, result)
	case models.DamageFire:
		result.Fire = classifyFire(ds, ordered, result)
	case models.DamageMold:
		result.Mold = classifyMold(ds, ordered, result)
	}
	return result, nil
}

// orderedAnswers validates the answer set against the script and returns the
// answers in question order. Modifier rules depend on answer order, so the
// map is never iterated directly.
func orderedAnswers(damageType models.DamageType, script []refdata.Question, answers models.AnswerSet) ([]models.Answer, error) {
	for index := range answers {
		if index < 0 || index >= len(script) {
			return nil, &models.ValidationError{
				Field:  "answers",
				Reason: fmt.Sprintf("answer index %d is outside the %d-question %s script", index, len(script), damageType),
			}
		}
	}

	ordered := make([]models.Answer, 0, len(answers))
	for i := 0; i < len(script); i++ {
		answer, ok := answers[i]
		if !ok {
			continue
		}
		if answer.Data != nil && answer.Data.DamageType() != damageType {
			return nil, &models.ValidationError{
				Field:  "answers",
				Reason: fmt.Sprintf("answer %d carries a %s payload in a %s flow", i, answer.Data.DamageType(), damageType),
			}
		}
		ordered = append(ordered, answer)
	}
	return ordered, nil
}

// classifyWater applies the S500 rules: category and class are monotonic
// maxima, elapsed-time modifiers escalate the category, and the mold flag is
// sticky. Escalation applies once per matching answer, in answer order.
func classifyWater(ds *refdata.Dataset, answers []models.Answer, result *models.Classification) *models.WaterClassification {
	category := 1
	class := 1
	hasMold := false

	for _, answer := range answers {
		data, ok := answer.Data.(models.WaterOptionData)
		if !ok {
			continue
		}

		if data.Category > 0 {
			category = max(category, data.Category)
		}
		switch data.TimeModifier {
		case models.ModifierUpgradeCategory, models.ModifierAssumeCat3:
			category = min(category+1, 3)
		case models.ModifierMayUpgradeCategory:
			if category < 3 {
				category = max(category, 2)
			}
		}

		if data.Class > 0 {
			class = max(class, data.Class)
		}
		if data.Mold == models.MoldObservedMinor || data.Mold == models.MoldObservedMajor {
			hasMold = true
		}
	}

	wc := &models.WaterClassification{
		Category:     category,
		CategoryName: fmt.Sprintf("Category %d", category),
		Class:        class,
		ClassName:    fmt.Sprintf("Class %d", class),
		HasMold:      hasMold,
	}
	if def, ok := ds.WaterCategory(category); ok {
		wc.CategoryName = def.Name
		wc.CategoryDescription = def.Description
		wc.PPERequired = def.PPERequired
	} else {
		result.MissingDefinitions = append(result.MissingDefinitions, fmt.Sprintf("water category %d", category))
	}
	if def, ok := ds.WaterClass(class); ok {
		wc.ClassName = def.Name
		wc.ClassDescription = def.Description
	} else {
		result.MissingDefinitions = append(result.MissingDefinitions, fmt.Sprintf("water class %d", class))
	}
	return wc
}

// classifyFire applies the S700 rules: soot type, extent, and soot level are
// last-write-wins descriptive fields with defaults, while HVAC involvement is
// sticky once reported as "yes" or "possible".
func classifyFire(ds *refdata.Dataset, answers []models.Answer, result *models.Classification) *models.FireClassification {
	sootType := "dry"
	extent := "minor"
	sootLevel := "light"
	hvacAffected := false

	for _, answer := range answers {
		data, ok := answer.Data.(models.FireOptionData)
		if !ok {
			continue
		}
		if data.SootType != "" {
			sootType = data.SootType
		}
		if data.Extent != "" {
			extent = data.Extent
		}
		if data.SootLevel != "" {
			sootLevel = data.SootLevel
		}
		if data.HVAC == "yes" || data.HVAC == "possible" {
			hvacAffected = true
		}
	}

	fc := &models.FireClassification{
		SootType:     sootType,
		SootTypeName: sootType,
		Extent:       extent,
		SootLevel:    sootLevel,
		HVACAffected: hvacAffected,
	}
	if def, ok := ds.SootType(sootType); ok {
		fc.SootTypeName = def.Name
		fc.CleaningMethod = def.Cleaning
	} else {
		result.MissingDefinitions = append(result.MissingDefinitions, fmt.Sprintf("soot type %q", sootType))
	}
	return fc
}

// classifyMold applies the S520 rules: the remediation level is a monotonic
// maximum, depth is last-write-wins with HVAC contamination escalating to
// level 5 when the dataset models it, and the moisture/health flags are
// sticky.
func classifyMold(ds *refdata.Dataset, answers []models.Answer, result *models.Classification) *models.MoldClassification {
	level := 1
	depth := "surface"
	moistureActive := false
	healthConcerns := false

	for _, answer := range answers {
		data, ok := answer.Data.(models.MoldOptionData)
		if !ok {
			continue
		}
		if data.Level > 0 {
			level = max(level, data.Level)
		}
		if data.Depth != "" {
			depth = data.Depth
			if data.Depth == "hvac" && ds.HasMoldLevel(5) {
				level = max(level, 5)
			}
		}
		if data.Moisture == "active" {
			moistureActive = true
		}
		if data.Health == "mild" || data.Health == "significant" {
			healthConcerns = true
		}
	}

	mc := &models.MoldClassification{
		Level:          level,
		LevelName:      fmt.Sprintf("Level %d", level),
		Depth:          depth,
		MoistureActive: moistureActive,
		HealthConcerns: healthConcerns,
	}
	if def, ok := ds.MoldLevel(level); ok {
		mc.Size = def.Size
		mc.PPE = def.PPE
		mc.Containment = def.Containment
		mc.Personnel = def.Personnel
	} else {
		result.MissingDefinitions = append(result.MissingDefinitions, fmt.Sprintf("mold level %d", level))
	}
	return mc
}
