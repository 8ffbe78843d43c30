// Package models defines the core domain types shared across the restobid
// application: damage types, answer sets, classifications, rooms, line items,
// and the project aggregate that owns them.
package models

import "fmt"

// DamageType identifies the primary damage category for an assessment.
type DamageType string

// Supported damage types. Each has its own question script, classification
// rules, and line item rules.
const (
	DamageWater DamageType = "water"
	DamageFire  DamageType = "fire"
	DamageMold  DamageType = "mold"
)

// ParseDamageType validates a user-supplied damage type string.
// Returns a ValidationError for unknown types.
func ParseDamageType(s string) (DamageType, error) {
	switch DamageType(s) {
	case DamageWater, DamageFire, DamageMold:
		return DamageType(s), nil
	}
	return "", &ValidationError{
		Field:  "damageType",
		Reason: fmt.Sprintf("unknown damage type %q (expected water, fire, or mold)", s),
	}
}

// Label returns the display label for the damage type.
func (t DamageType) Label() string {
	switch t {
	case DamageWater:
		return "Water Damage"
	case DamageFire:
		return "Fire & Smoke"
	case DamageMold:
		return "Mold Remediation"
	}
	return "Assessment"
}
