package refdata

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/paramount/restobid/internal/models"
)

//go:embed data/iicrc.yaml
var iicrcYAML []byte

//go:embed data/catalog.yaml
var catalogYAML []byte

// rawOption is the on-disk shape of a question option. It carries the union
// of all per-damage-type hint fields; convert() narrows it to the closed
// payload type matching the script's damage type.
type rawOption struct {
	Label string `yaml:"label"`

	// Water hints
	Category     int    `yaml:"category,omitempty"`
	Class        int    `yaml:"class,omitempty"`
	TimeModifier string `yaml:"time_modifier,omitempty"`
	Mold         string `yaml:"mold,omitempty"`

	// Fire hints
	SootType  string `yaml:"soot_type,omitempty"`
	Extent    string `yaml:"extent,omitempty"`
	SootLevel string `yaml:"soot_level,omitempty"`
	HVAC      string `yaml:"hvac,omitempty"`

	// Mold hints
	Level    int    `yaml:"level,omitempty"`
	Depth    string `yaml:"depth,omitempty"`
	Moisture string `yaml:"moisture,omitempty"`
	Health   string `yaml:"health,omitempty"`
}

func (o rawOption) convert(t models.DamageType) (Option, error) {
	opt := Option{Label: o.Label}
	switch t {
	case models.DamageWater:
		opt.Data = models.WaterOptionData{
			Category:     o.Category,
			Class:        o.Class,
			TimeModifier: o.TimeModifier,
			Mold:         o.Mold,
		}
	case models.DamageFire:
		opt.Data = models.FireOptionData{
			SootType:  o.SootType,
			Extent:    o.Extent,
			SootLevel: o.SootLevel,
			HVAC:      o.HVAC,
		}
	case models.DamageMold:
		opt.Data = models.MoldOptionData{
			Level:    o.Level,
			Depth:    o.Depth,
			Moisture: o.Moisture,
			Health:   o.Health,
		}
	default:
		return Option{}, fmt.Errorf("unknown script damage type %q", t)
	}
	return opt, nil
}

// rawQuestion is the on-disk shape of a script question.
type rawQuestion struct {
	Prompt  string      `yaml:"prompt"`
	Options []rawOption `yaml:"options"`
}

// iicrcFile is the on-disk shape of the IICRC dataset file.
type iicrcFile struct {
	Water     WaterDefs                  `yaml:"water"`
	Mold      MoldDefs                   `yaml:"mold"`
	Fire      FireDefs                   `yaml:"fire"`
	RoomTypes map[string]RoomTypeProfile `yaml:"room_types"`
	Sizing    SizingFactors              `yaml:"sizing"`
	Scripts   map[string][]rawQuestion   `yaml:"scripts"`
}

// catalogFile is the on-disk shape of the line item catalog file.
type catalogFile struct {
	Codes map[string]CatalogEntry `yaml:"codes"`
}

// Load parses the embedded dataset files and verifies their internal
// consistency. Returns a ConfigError for structural defects; the caller
// must treat that as fatal.
func Load() (*Dataset, error) {
	var iicrc iicrcFile
	if err := yaml.Unmarshal(iicrcYAML, &iicrc); err != nil {
		return nil, fmt.Errorf("parse iicrc dataset: %w", err)
	}

	var catalog catalogFile
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		return nil, fmt.Errorf("parse line item catalog: %w", err)
	}

	ds := &Dataset{
		Water:     iicrc.Water,
		Mold:      iicrc.Mold,
		Fire:      iicrc.Fire,
		RoomTypes: iicrc.RoomTypes,
		Sizing:    iicrc.Sizing,
		Scripts:   make(map[models.DamageType][]Question, len(iicrc.Scripts)),
		Catalog:   catalog.Codes,
	}

	for name, rawQuestions := range iicrc.Scripts {
		damageType, err := models.ParseDamageType(name)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("script for unmodeled damage type %q", name)}
		}
		questions := make([]Question, 0, len(rawQuestions))
		for i, rq := range rawQuestions {
			if rq.Prompt == "" {
				return nil, &ConfigError{Reason: fmt.Sprintf("%s script question %d has no prompt", name, i)}
			}
			if len(rq.Options) == 0 {
				return nil, &ConfigError{Reason: fmt.Sprintf("%s script question %d has no options", name, i)}
			}
			q := Question{Prompt: rq.Prompt, Options: make([]Option, 0, len(rq.Options))}
			for _, ro := range rq.Options {
				opt, err := ro.convert(damageType)
				if err != nil {
					return nil, &ConfigError{Reason: err.Error()}
				}
				q.Options = append(q.Options, opt)
			}
			questions = append(questions, q)
		}
		ds.Scripts[damageType] = questions
	}

	if err := ds.verify(); err != nil {
		return nil, err
	}
	return ds, nil
}

// verify checks the cross-references the engines depend on structurally:
// every scripted damage type must have severity definitions to resolve
// against, and the sizing table must carry the factors the equipment
// formulas divide by. Catalog closure over generator-emitted codes is
// checked separately by the line item generator, which owns its code set.
func (d *Dataset) verify() error {
	for damageType := range d.Scripts {
		switch damageType {
		case models.DamageWater:
			if len(d.Water.Categories) == 0 || len(d.Water.Classes) == 0 {
				return &ConfigError{Reason: "water script present but water severity definitions are empty"}
			}
		case models.DamageFire:
			if len(d.Fire.SootTypes) == 0 {
				return &ConfigError{Reason: "fire script present but soot type definitions are empty"}
			}
		case models.DamageMold:
			if len(d.Mold.Levels) == 0 {
				return &ConfigError{Reason: "mold script present but remediation level definitions are empty"}
			}
		}
	}

	lgr, ok := d.Sizing.Dehumidifier["lgr"]
	if !ok || len(lgr) == 0 {
		return &ConfigError{Reason: "sizing table has no LGR dehumidifier factors"}
	}
	if _, ok := lgr[2]; !ok {
		return &ConfigError{Reason: "sizing table has no class 2 LGR factor (required as the unknown-class fallback)"}
	}
	if d.Sizing.DehumidifierCapacityPints <= 0 {
		return &ConfigError{Reason: "dehumidifier reference capacity must be positive"}
	}
	if d.Sizing.AirMoverFloorSF <= 0 {
		return &ConfigError{Reason: "air mover floor coverage must be positive"}
	}

	if len(d.Catalog) == 0 {
		return &ConfigError{Reason: "line item catalog is empty"}
	}
	for code, entry := range d.Catalog {
		if entry.Description == "" || entry.Unit == "" {
			return &ConfigError{Reason: fmt.Sprintf("catalog code %s is missing description or unit", code)}
		}
	}
	return nil
}
