package model

import "github.com/finpal/finpal-backend/internal/money"

// UnsetPriority is the effective priority of a goal without an explicit
// rank. It sorts after every explicitly ranked goal.
const UnsetPriority = 999

// Goal is one entry in a user's ordered goal list, stored inside the goals
// blob on the user row. TargetAmount decodes defensively because older
// clients wrote it as a decorated string. CurrentAmount is a legacy alias
// for CurrentSaved; reads prefer CurrentAmount when both are present.
type Goal struct {
	ID            string        `json:"id"`
	Label         string        `json:"label"`
	Icon          string        `json:"icon,omitempty"`
	Color         string        `json:"color,omitempty"`
	TargetAmount  money.Amount  `json:"target_amount"`
	TargetDate    string        `json:"target_date,omitempty"`
	Priority      *int          `json:"priority,omitempty"`
	CurrentSaved  *money.Amount `json:"current_saved,omitempty"`
	CurrentAmount *money.Amount `json:"current_amount,omitempty"`
	SyncedAt      string        `json:"synced_at,omitempty"`
}

// EffectivePriority returns the goal's priority, or UnsetPriority when none
// is set.
func (g Goal) EffectivePriority() int {
	if g.Priority == nil {
		return UnsetPriority
	}
	return *g.Priority
}

// GoalBlob is the shape of the goals JSON column.
type GoalBlob struct {
	ActiveGoals []Goal `json:"active_goals"`
}
