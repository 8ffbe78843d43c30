package export

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paramount/restobid/internal/models"
)

func exportProject() *models.Project {
	p := models.NewProject("smoke job")
	p.DamageType = models.DamageFire
	p.Classification = &models.Classification{
		DamageType: models.DamageFire,
		Fire:       &models.FireClassification{SootType: "wet", Extent: "major", SootLevel: "heavy"},
	}
	p.PutRoom(models.Room{ID: "r1", Name: "kitchen", Type: "kitchen", Length: 12, Width: 10})
	p.UpsertLineItems([]models.LineItem{
		{Code: "CLNSOOTW", Description: "Clean soot, wet method - kitchen", Quantity: 120, Unit: "SF", Category: "Cleaning", RoomID: "r1", RoomName: "kitchen"},
		{Code: "CLNDUCT", Description: "HVAC duct cleaning", Quantity: 1, Unit: "SYS", Category: "HVAC"},
	})
	return p
}

func TestCSVOutput(t *testing.T) {
	data := string(CSV(exportProject()))
	lines := strings.Split(strings.TrimRight(data, "\r\n"), "\r\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "Code,Description,Quantity,Unit,Category,Room", lines[0])
	assert.Equal(t, `CLNSOOTW,"Clean soot, wet method - kitchen",120.00,SF,Cleaning,kitchen`, lines[1])
	assert.Equal(t, "CLNDUCT,HVAC duct cleaning,1.00,SYS,HVAC,", lines[2])
}

func TestCSVEscaping(t *testing.T) {
	p := models.NewProject("escape")
	p.UpsertLineItems([]models.LineItem{
		{Code: "X1", Description: `Contains, comma`, Quantity: 1, Unit: "EA"},
		{Code: "X2", Description: `Has "quotes"`, Quantity: 2, Unit: "EA"},
		{Code: "X3", Description: "Plain", Quantity: 3.5, Unit: "SF"},
	})

	data := string(CSV(p))
	assert.Contains(t, data, `"Contains, comma"`)
	assert.Contains(t, data, `"Has ""quotes"""`)
	assert.Contains(t, data, "X3,Plain,3.50,SF,,")
}

func TestBuildPayload(t *testing.T) {
	body, err := BuildPayload(exportProject())
	require.NoError(t, err)

	var decoded struct {
		Project struct {
			Name           string          `json:"name"`
			DamageType     string          `json:"damageType"`
			Classification json.RawMessage `json:"classification"`
		} `json:"project"`
		Rooms []struct {
			Name   string  `json:"name"`
			Height float64 `json:"height"`
		} `json:"rooms"`
		LineItems []struct {
			Code     string  `json:"code"`
			Quantity float64 `json:"quantity"`
		} `json:"lineItems"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "smoke job", decoded.Project.Name)
	assert.Equal(t, "fire", decoded.Project.DamageType)
	assert.NotEmpty(t, decoded.Project.Classification)

	require.Len(t, decoded.Rooms, 1)
	assert.Equal(t, "kitchen", decoded.Rooms[0].Name)
	assert.Equal(t, 9.0, decoded.Rooms[0].Height, "unset height exports the default")

	require.Len(t, decoded.LineItems, 2)
	assert.Equal(t, "CLNSOOTW", decoded.LineItems[0].Code)
	assert.Equal(t, 120.0, decoded.LineItems[0].Quantity)
}

func TestBuildPayloadEmptyCollections(t *testing.T) {
	p := models.NewProject("bare")
	body, err := BuildPayload(p)
	require.NoError(t, err)

	assert.Contains(t, string(body), `"rooms":[]`)
	assert.Contains(t, string(body), `"lineItems":[]`)
}

func TestNewESXClientDefaults(t *testing.T) {
	c := NewESXClient("http://localhost:8080/", 0)
	assert.Equal(t, "http://localhost:8080", c.serverURL, "trailing slash trimmed")
	assert.Equal(t, 30*time.Second, c.timeout)
}

func TestUploadUnreachableServer(t *testing.T) {
	c := NewESXClient("http://127.0.0.1:1", 500*time.Millisecond)

	_, err := c.Upload(exportProject())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conversion server")
}
