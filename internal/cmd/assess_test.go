package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paramount/restobid/internal/config"
	"github.com/paramount/restobid/internal/logger"
	"github.com/paramount/restobid/internal/models"
	"github.com/paramount/restobid/internal/refdata"
)

func testApp(t *testing.T) *App {
	t.Helper()
	ds, err := refdata.Load()
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Export.OutputDir = t.TempDir()

	return &App{Config: cfg, Dataset: ds, Logger: logger.NewNoOpLogger()}
}

func scriptedInput(lines ...string) MenuReader {
	return NewDefaultMenuReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestCollectClassificationWaterFlow(t *testing.T) {
	app := testApp(t)
	var out bytes.Buffer

	// Water, sewage source, >48h, walls over 2ft, >40%, significant mold.
	reader := scriptedInput("1", "4", "3", "3", "3", "3")

	cls, err := collectClassification(app, reader, &out)
	require.NoError(t, err)
	require.NotNil(t, cls)
	require.NotNil(t, cls.Water)

	assert.Equal(t, 3, cls.Water.Category)
	assert.Equal(t, 3, cls.Water.Class)
	assert.True(t, cls.Water.HasMold)
	assert.Contains(t, out.String(), "[1/5]")
	assert.Contains(t, out.String(), "What is the water source?")
}

func TestCollectClassificationQuit(t *testing.T) {
	app := testApp(t)
	var out bytes.Buffer

	cls, err := collectClassification(app, scriptedInput("q"), &out)
	require.NoError(t, err)
	assert.Nil(t, cls)
}

func TestCollectClassificationQuitMidScript(t *testing.T) {
	app := testApp(t)
	var out bytes.Buffer

	cls, err := collectClassification(app, scriptedInput("2", "1", "q"), &out)
	require.NoError(t, err)
	assert.Nil(t, cls)
}

func TestCollectClassificationBackRevisesAnswer(t *testing.T) {
	app := testApp(t)
	var out bytes.Buffer

	// Answer sewage (cat 3), back up, revise to clean supply, then take the
	// mildest remaining answers.
	reader := scriptedInput("1", "4", "b", "1", "1", "1", "1", "1")

	cls, err := collectClassification(app, reader, &out)
	require.NoError(t, err)
	require.NotNil(t, cls)
	assert.Equal(t, 1, cls.Water.Category)
}

func TestCollectClassificationBackToTypeSelection(t *testing.T) {
	app := testApp(t)
	var out bytes.Buffer

	// Start fire, back out to type selection, then run the mold script.
	reader := scriptedInput("2", "b", "3", "1", "1", "1", "1")

	cls, err := collectClassification(app, reader, &out)
	require.NoError(t, err)
	require.NotNil(t, cls)
	assert.Equal(t, models.DamageMold, cls.DamageType)
	require.NotNil(t, cls.Mold)
	assert.Equal(t, 1, cls.Mold.Level)
}

func TestCollectClassificationInvalidInputReprompts(t *testing.T) {
	app := testApp(t)
	var out bytes.Buffer

	reader := scriptedInput("fire", "17", "x", "2", "1", "1", "1")

	cls, err := collectClassification(app, reader, &out)
	require.NoError(t, err)
	require.NotNil(t, cls)
	assert.Equal(t, models.DamageFire, cls.DamageType)
	assert.Contains(t, out.String(), "Invalid selection")
}

func TestSelectDamageTypeByName(t *testing.T) {
	var out bytes.Buffer

	dt, quit, err := selectDamageType(scriptedInput("water"), &out)
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, models.DamageWater, dt)
}

func TestReadMenuChoice(t *testing.T) {
	t.Run("number selection", func(t *testing.T) {
		var out bytes.Buffer
		choice, err := readMenuChoice(&out, scriptedInput("2"), 4)
		require.NoError(t, err)
		assert.Equal(t, 1, choice.Index)
	})

	t.Run("back and quit", func(t *testing.T) {
		var out bytes.Buffer
		choice, err := readMenuChoice(&out, scriptedInput("b"), 4)
		require.NoError(t, err)
		assert.True(t, choice.Back)

		choice, err = readMenuChoice(&out, scriptedInput("Q"), 4)
		require.NoError(t, err)
		assert.True(t, choice.Quit)
	})

	t.Run("out of range reprompts", func(t *testing.T) {
		var out bytes.Buffer
		choice, err := readMenuChoice(&out, scriptedInput("0", "5", "4"), 4)
		require.NoError(t, err)
		assert.Equal(t, 3, choice.Index)
		assert.Contains(t, out.String(), "Invalid selection")
	})
}
