package models

import "time"

// LineItem is one coded, unit-quantified estimate entry. RoomID is empty for
// rough pre-room estimates and set for room-scoped items. Within a project
// there is at most one item per (Code, RoomID) pair.
type LineItem struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"` // May be room-qualified ("Air mover - Master Bedroom")
	Quantity    float64   `json:"quantity"`    // Non-negative, rounded to 2 decimal places
	Unit        string    `json:"unit"`
	Category    string    `json:"category"` // Equipment, Demo, Treatment, ...
	RoomID      string    `json:"roomId,omitempty"`
	RoomName    string    `json:"roomName,omitempty"`
	AddedAt     time.Time `json:"addedAt"`
}

// ItemKey is the identity of a line item within a project: regenerating a
// room's items replaces entries with matching keys instead of appending.
type ItemKey struct {
	Code   string
	RoomID string
}

// Key returns the item's project-scoped identity.
func (li *LineItem) Key() ItemKey {
	return ItemKey{Code: li.Code, RoomID: li.RoomID}
}
