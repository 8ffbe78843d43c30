package classify

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

func waterAnswers(data ...models.WaterOptionData) models.AnswerSet {
	answers := make(models.AnswerSet, len(data))
	for i, d := range data {
		answers[i] = models.Answer{Question: "q", Selected: "a", Data: d}
	}
	return answers
}

func TestClassifyWaterCategoryMonotonic(t *testing.T) {
	ds := loadDataset(t)

	tests := []struct {
		name         string
		answers      models.AnswerSet
		wantCategory int
	}{
		{
			name:         "defaults to category 1",
			answers:      waterAnswers(models.WaterOptionData{}),
			wantCategory: 1,
		},
		{
			name: "takes the maximum category observed",
			answers: waterAnswers(
				models.WaterOptionData{Category: 3},
				models.WaterOptionData{Category: 1},
			),
			wantCategory: 3,
		},
		{
			name: "later lower category cannot downgrade",
			answers: waterAnswers(
				models.WaterOptionData{Category: 2},
				models.WaterOptionData{Category: 1},
			),
			wantCategory: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls, err := Classify(ds, models.DamageWater, tt.answers)
			require.NoError(t, err)
			require.NotNil(t, cls.Water)
			assert.Equal(t, tt.wantCategory, cls.Water.Category)
		})
	}
}

func TestClassifyWaterTimeEscalation(t *testing.T) {
	ds := loadDataset(t)

	tests := []struct {
		name         string
		answers      models.AnswerSet
		wantCategory int
	}{
		{
			name: "upgrade_category bumps one step",
			answers: waterAnswers(
				models.WaterOptionData{Category: 1},
				models.WaterOptionData{TimeModifier: models.ModifierUpgradeCategory},
			),
			wantCategory: 2,
		},
		{
			name: "upgrade_category caps at 3",
			answers: waterAnswers(
				models.WaterOptionData{Category: 3},
				models.WaterOptionData{TimeModifier: models.ModifierUpgradeCategory},
			),
			wantCategory: 3,
		},
		{
			name: "assume_cat3 bumps one step like upgrade",
			answers: waterAnswers(
				models.WaterOptionData{Category: 2},
				models.WaterOptionData{TimeModifier: models.ModifierAssumeCat3},
			),
			wantCategory: 3,
		},
		{
			name: "may_upgrade raises category 1 to 2",
			answers: waterAnswers(
				models.WaterOptionData{Category: 1},
				models.WaterOptionData{TimeModifier: models.ModifierMayUpgradeCategory},
			),
			wantCategory: 2,
		},
		{
			name: "may_upgrade leaves category 3 alone",
			answers: waterAnswers(
				models.WaterOptionData{Category: 3},
				models.WaterOptionData{TimeModifier: models.ModifierMayUpgradeCategory},
			),
			wantCategory: 3,
		},
		{
			name: "none modifier does nothing",
			answers: waterAnswers(
				models.WaterOptionData{Category: 1},
				models.WaterOptionData{TimeModifier: models.ModifierNone},
			),
			wantCategory: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls, err := Classify(ds, models.DamageWater, tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCategory, cls.Water.Category)
		})
	}
}

func TestClassifyWaterClassAndMold(t *testing.T) {
	ds := loadDataset(t)

	answers := waterAnswers(
		models.WaterOptionData{Category: 1},
		models.WaterOptionData{TimeModifier: models.ModifierNone},
		models.WaterOptionData{Class: 3},
		models.WaterOptionData{Class: 2},
		models.WaterOptionData{Mold: models.MoldObservedMinor},
	)

	cls, err := Classify(ds, models.DamageWater, answers)
	require.NoError(t, err)

	assert.Equal(t, 3, cls.Water.Class, "class is the maximum observed")
	assert.True(t, cls.Water.HasMold, "mold flag is sticky")
	assert.Equal(t, "Class 3 - Fastest Evaporation", cls.Water.ClassName)
	assert.NotEmpty(t, cls.Water.PPERequired)
	assert.Empty(t, cls.MissingDefinitions)
}

func TestClassifyDeterministic(t *testing.T) {
	ds := loadDataset(t)

	answers := waterAnswers(
		models.WaterOptionData{Category: 2},
		models.WaterOptionData{TimeModifier: models.ModifierUpgradeCategory},
		models.WaterOptionData{Class: 2},
		models.WaterOptionData{Class: 3},
		models.WaterOptionData{Mold: models.MoldObservedNone},
	)

	first, err := Classify(ds, models.DamageWater, answers)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Classify(ds, models.DamageWater, answers)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassifyFireDefaultsAndOverrides(t *testing.T) {
	ds := loadDataset(t)

	t.Run("empty answers yield defaults", func(t *testing.T) {
		cls, err := Classify(ds, models.DamageFire, models.AnswerSet{})
		require.NoError(t, err)
		require.NotNil(t, cls.Fire)
		assert.Equal(t, "dry", cls.Fire.SootType)
		assert.Equal(t, "minor", cls.Fire.Extent)
		assert.Equal(t, "light", cls.Fire.SootLevel)
		assert.False(t, cls.Fire.HVACAffected)
	})

	t.Run("descriptive fields are last-write-wins", func(t *testing.T) {
		answers := models.AnswerSet{
			0: {Data: models.FireOptionData{SootType: "protein"}},
			1: {Data: models.FireOptionData{Extent: "major"}},
			2: {Data: models.FireOptionData{SootLevel: "heavy"}},
			3: {Data: models.FireOptionData{SootType: "wet"}},
		}
		cls, err := Classify(ds, models.DamageFire, answers)
		require.NoError(t, err)
		assert.Equal(t, "wet", cls.Fire.SootType)
		assert.Equal(t, "Wet/Oily Soot", cls.Fire.SootTypeName)
		assert.NotEmpty(t, cls.Fire.CleaningMethod)
	})

	t.Run("hvac sticky on possible", func(t *testing.T) {
		answers := models.AnswerSet{
			0: {Data: models.FireOptionData{HVAC: "possible"}},
			1: {Data: models.FireOptionData{HVAC: "no"}},
		}
		cls, err := Classify(ds, models.DamageFire, answers)
		require.NoError(t, err)
		assert.True(t, cls.Fire.HVACAffected)
	})
}

func TestClassifyMold(t *testing.T) {
	ds := loadDataset(t)

	t.Run("level is monotonic and depth last-write-wins", func(t *testing.T) {
		answers := models.AnswerSet{
			0: {Data: models.MoldOptionData{Level: 3}},
			1: {Data: models.MoldOptionData{Depth: "deep"}},
			2: {Data: models.MoldOptionData{Moisture: "active"}},
			3: {Data: models.MoldOptionData{Health: "mild"}},
		}
		cls, err := Classify(ds, models.DamageMold, answers)
		require.NoError(t, err)
		require.NotNil(t, cls.Mold)
		assert.Equal(t, 3, cls.Mold.Level)
		assert.Equal(t, "deep", cls.Mold.Depth)
		assert.True(t, cls.Mold.MoistureActive)
		assert.True(t, cls.Mold.HealthConcerns)
		assert.Contains(t, cls.Mold.Containment, "negative air")
	})

	t.Run("hvac depth escalates to level 5", func(t *testing.T) {
		answers := models.AnswerSet{
			0: {Data: models.MoldOptionData{Level: 2}},
			1: {Data: models.MoldOptionData{Depth: "hvac", Level: 5}},
		}
		cls, err := Classify(ds, models.DamageMold, answers)
		require.NoError(t, err)
		assert.Equal(t, 5, cls.Mold.Level)
		assert.Equal(t, "hvac", cls.Mold.Depth)
	})
}

func TestClassifyRejectsForeignPayload(t *testing.T) {
	ds := loadDataset(t)

	answers := models.AnswerSet{
		0: {Data: models.FireOptionData{SootType: "dry"}},
	}
	_, err := Classify(ds, models.DamageWater, answers)
	require.Error(t, err)

	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestClassifyRejectsOutOfRangeIndex(t *testing.T) {
	ds := loadDataset(t)

	answers := models.AnswerSet{
		99: {Data: models.WaterOptionData{Category: 1}},
	}
	_, err := Classify(ds, models.DamageWater, answers)
	require.Error(t, err)

	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestClassifyUnknownDamageType(t *testing.T) {
	ds := loadDataset(t)

	_, err := Classify(ds, models.DamageType("earthquake"), models.AnswerSet{})
	require.Error(t, err)
}
