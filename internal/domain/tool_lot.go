package domain

// LotState is the condition state of a tool lot. Stock is partitioned by
// state: the same physical tool type can exist in several lots at once,
// one per state, with independently tracked quantities.
type LotState string

const (
	LotStateAvailable      LotState = "AVAILABLE"
	LotStateLoaned         LotState = "LOANED"
	LotStateInRepair       LotState = "IN_REPAIR"
	LotStateDecommissioned LotState = "DECOMMISSIONED"
)

// Valid reports whether s belongs to the closed state set.
func (s LotState) Valid() bool {
	switch s {
	case LotStateAvailable, LotStateLoaned, LotStateInRepair, LotStateDecommissioned:
		return true
	}
	return false
}

// ToolLot is a quantity of physically identical tool units sharing a name,
// category, replacement value and condition state.
type ToolLot struct {
	ID                    int32    `json:"id"`
	Name                  string   `json:"name"`
	Category              string   `json:"category"`
	ReplacementValueCents int64    `json:"replacement_value_cents"`
	State                 LotState `json:"state"`
	Quantity              int32    `json:"quantity"`
}

// SameIdentity reports whether two lots hold interchangeable units, i.e.
// share the (name, category, replacement value) tuple. Lots with the same
// identity and state must be merged, never duplicated.
func (l *ToolLot) SameIdentity(other *ToolLot) bool {
	return l.Name == other.Name &&
		l.Category == other.Category &&
		l.ReplacementValueCents == other.ReplacementValueCents
}
