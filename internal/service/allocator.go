package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finpal/finpal-backend/internal/model"
)

// The allocator turns monthly savings and a prioritized goal list into a
// per-goal contribution plan. It is deterministic for fixed inputs and a
// fixed now, performs no I/O, and never errors: malformed amounts and dates
// were already recovered to safe defaults upstream.
//
// The work is split into two pure passes so each is independently
// testable: ComputeGoalNeeds derives every goal's ideal monthly need,
// Allocate distributes the limited savings priority-first.

// dateLayout is the wire format for goal deadlines.
const dateLayout = "2006-01-02"

// defaultHorizonMonths is assumed when a goal has no usable deadline.
const defaultHorizonMonths = 12

// GoalNeed is the allocator's first-pass output for one goal: what the
// goal independently needs per month, ignoring competition from other
// goals.
type GoalNeed struct {
	Goal          model.Goal
	OriginalIndex int
	Priority      int
	TargetAmount  decimal.Decimal
	CurrentSaved  decimal.Decimal
	AmountNeeded  decimal.Decimal
	MonthsToGo    int
	Deadline      *time.Time
	IdealMonthly  decimal.Decimal
}

// dateOnly truncates a timestamp to its UTC calendar date. Deadlines are
// plain dates, so all deadline math happens at date granularity.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeGoalNeeds derives each goal's independent ideal need, returning
// the needs sorted priority-first (ascending priority, ties broken by
// original list position).
func ComputeGoalNeeds(goals []model.Goal, now time.Time) []GoalNeed {
	now = dateOnly(now)
	needs := make([]GoalNeed, len(goals))
	for i, goal := range goals {
		needs[i] = computeNeed(goal, i, now)
	}

	sort.SliceStable(needs, func(i, j int) bool {
		if needs[i].Priority != needs[j].Priority {
			return needs[i].Priority < needs[j].Priority
		}
		return needs[i].OriginalIndex < needs[j].OriginalIndex
	})

	return needs
}

func computeNeed(goal model.Goal, index int, now time.Time) GoalNeed {
	need := GoalNeed{
		Goal:          goal,
		OriginalIndex: index,
		Priority:      goal.EffectivePriority(),
		TargetAmount:  goal.TargetAmount.Decimal,
	}

	// current_amount is the legacy alias; it wins when present.
	switch {
	case goal.CurrentAmount != nil:
		need.CurrentSaved = goal.CurrentAmount.Decimal
	case goal.CurrentSaved != nil:
		need.CurrentSaved = goal.CurrentSaved.Decimal
	}

	need.AmountNeeded = decimal.Max(decimal.Zero, need.TargetAmount.Sub(need.CurrentSaved))
	need.MonthsToGo, need.Deadline = monthsToDeadline(goal.TargetDate, now)

	if need.AmountNeeded.IsPositive() {
		need.IdealMonthly = need.AmountNeeded.Div(decimal.NewFromInt(int64(need.MonthsToGo)))
	}

	return need
}

// monthsToDeadline returns the whole months between now and the goal's
// deadline (floored at 1) when the deadline parses and lies in the future,
// and the default horizon otherwise. The parsed deadline is returned for
// at-risk checks; it is nil when absent or unparseable.
func monthsToDeadline(targetDate string, now time.Time) (int, *time.Time) {
	if targetDate == "" {
		return defaultHorizonMonths, nil
	}

	deadline, err := time.ParseInLocation(dateLayout, targetDate, time.UTC)
	if err != nil {
		// Unparseable deadline recovers to the default horizon.
		return defaultHorizonMonths, nil
	}

	if !deadline.After(now) {
		return defaultHorizonMonths, &deadline
	}

	months := (deadline.Year()-now.Year())*12 + int(deadline.Month()-now.Month())
	if months < 1 {
		months = 1
	}
	return months, &deadline
}

// Allocate runs the priority-first second pass: each goal receives
// min(remaining, ideal), so a higher-priority goal is funded to its full
// ideal before anything cascades down. Returns the per-goal results in
// priority order plus the savings left after every need is met (or zero
// when goals exhaust the pool first). Total allocated never exceeds
// available.
func Allocate(needs []GoalNeed, available decimal.Decimal, now time.Time) ([]model.GoalAllocation, decimal.Decimal) {
	now = dateOnly(now)
	remaining := decimal.Max(decimal.Zero, available)
	results := make([]model.GoalAllocation, len(needs))

	for i, need := range needs {
		allocated := decimal.Min(remaining, need.IdealMonthly)
		remaining = decimal.Max(decimal.Zero, remaining.Sub(allocated))
		results[i] = buildAllocation(need, allocated, now)
	}

	return results, remaining
}

func buildAllocation(need GoalNeed, allocated decimal.Decimal, now time.Time) model.GoalAllocation {
	result := model.GoalAllocation{
		ID:               need.Goal.ID,
		Label:            need.Goal.Label,
		Icon:             need.Goal.Icon,
		Color:            need.Goal.Color,
		Priority:         need.Priority,
		TargetAmount:     need.TargetAmount,
		TargetDate:       need.Goal.TargetDate,
		CurrentSaved:     need.CurrentSaved,
		AmountNeeded:     need.AmountNeeded,
		IdealMonthly:     need.IdealMonthly.Round(2),
		AllocatedMonthly: allocated.Round(2),
		IsUnderfunded:    need.IdealMonthly.IsPositive() && allocated.LessThan(need.IdealMonthly),
	}

	if need.TargetAmount.IsPositive() {
		pct := need.CurrentSaved.Div(need.TargetAmount).Mul(decimal.NewFromInt(100))
		result.ProgressPercentage = decimal.Min(decimal.NewFromInt(100), pct).Round(1)
	}

	switch {
	case need.AmountNeeded.IsPositive() && allocated.IsPositive():
		months := int(need.AmountNeeded.Div(allocated).Ceil().IntPart())
		projected := now.AddDate(0, months, 0)
		result.MonthsToComplete = &months
		result.ProjectedCompletionDate = projected.Format(dateLayout)
		if need.Deadline != nil {
			result.DeadlineAtRisk = projected.After(*need.Deadline)
		}
	case need.AmountNeeded.IsPositive():
		// Zero funding this cycle: at risk whenever a deadline exists,
		// since no projection is possible.
		result.DeadlineAtRisk = need.Deadline != nil
	}

	result.OnTrack = !result.DeadlineAtRisk
	return result
}
