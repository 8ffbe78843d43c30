package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paramount/restobid/internal/models"
)

func TestLoadEmbeddedDataset(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	assert.Len(t, ds.Water.Categories, 3)
	assert.Len(t, ds.Water.Classes, 4)
	assert.Len(t, ds.Mold.Levels, 5)
	assert.Len(t, ds.Fire.SootTypes, 5)
	assert.NotEmpty(t, ds.RoomTypes)
	assert.NotEmpty(t, ds.Catalog)
}

func TestScripts(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	water, err := ds.Script(models.DamageWater)
	require.NoError(t, err)
	assert.Len(t, water, 5)

	fire, err := ds.Script(models.DamageFire)
	require.NoError(t, err)
	assert.Len(t, fire, 4)

	mold, err := ds.Script(models.DamageMold)
	require.NoError(t, err)
	assert.Len(t, mold, 4)

	_, err = ds.Script(models.DamageType("hail"))
	require.Error(t, err)
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

// Option payloads must carry the concrete type matching their script, so the
// engine's type switches are total.
func TestScriptPayloadTypes(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	for damageType, script := range ds.Scripts {
		for qi, question := range script {
			require.NotEmpty(t, question.Prompt)
			require.NotEmpty(t, question.Options, "%s question %d has no options", damageType, qi)
			for oi, option := range question.Options {
				require.NotEmpty(t, option.Label)
				require.NotNil(t, option.Data, "%s q%d option %d has no payload", damageType, qi, oi)
				assert.Equal(t, damageType, option.Data.DamageType())
			}
		}
	}
}

func TestHVACOptionCarriesLevelFive(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	script, err := ds.Script(models.DamageMold)
	require.NoError(t, err)

	var found bool
	for _, question := range script {
		for _, option := range question.Options {
			data, ok := option.Data.(models.MoldOptionData)
			if ok && data.Depth == "hvac" {
				found = true
				assert.Equal(t, 5, data.Level)
			}
		}
	}
	assert.True(t, found, "mold script offers an HVAC depth option")
	assert.True(t, ds.HasMoldLevel(5))
}

func TestSeverityLookups(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	cat, ok := ds.WaterCategory(3)
	require.True(t, ok)
	assert.Contains(t, cat.Name, "Black Water")
	assert.NotEmpty(t, cat.PPERequired)

	_, ok = ds.WaterCategory(4)
	assert.False(t, ok)

	class, ok := ds.WaterClass(4)
	require.True(t, ok)
	assert.Contains(t, class.Name, "Specialty")

	soot, ok := ds.SootType("protein")
	require.True(t, ok)
	assert.NotEmpty(t, soot.Cleaning)

	_, ok = ds.SootType("nuclear")
	assert.False(t, ok)

	level, ok := ds.MoldLevel(4)
	require.True(t, ok)
	assert.NotEmpty(t, level.Containment)
}

func TestDehumidifierFactor(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100.0, ds.DehumidifierFactor("lgr", 1))
	assert.Equal(t, 40.0, ds.DehumidifierFactor("lgr", 4))
	assert.Equal(t, 50.0, ds.DehumidifierFactor("lgr", 9), "unknown class falls back to class 2")
	assert.Equal(t, 50.0, ds.DehumidifierFactor("unobtainium", 2), "unknown kind falls back to lgr")
}

func TestCatalogEntriesComplete(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	for code, entry := range ds.Catalog {
		assert.NotEmpty(t, entry.Description, "code %s", code)
		assert.NotEmpty(t, entry.Unit, "code %s", code)
	}
}

func TestRoomTypeProfiles(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	profile, ok := ds.RoomType("basement")
	require.True(t, ok)
	assert.Equal(t, "Basement", profile.Label)
	assert.NotEmpty(t, profile.ScopeHints)

	// Profiles may only reference catalog codes.
	for tag, profile := range ds.RoomTypes {
		for _, code := range profile.CommonCodes {
			_, ok := ds.CatalogEntry(code)
			assert.True(t, ok, "room type %s references unknown code %s", tag, code)
		}
	}

	_, ok = ds.RoomType("ballroom")
	assert.False(t, ok)
}
