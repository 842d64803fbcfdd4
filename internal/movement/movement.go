// Package movement computes signed rank-movement deltas between a
// baseline ranking snapshot and a current one.
package movement

import (
	"github.com/jonathan/keyword-atlas/internal/types"
)

// UnrankedSentinel substitutes for "not ranked" before subtraction so
// movement arithmetic never branches on nullability. Summary statistics
// across the codebase depend on this exact value; rendering code
// special-cases NEW/LOST labels instead of changing the arithmetic.
const UnrankedSentinel = 1000

// Compute returns the signed delta between a baseline position and a
// current one. Positive means improvement (a better, lower-numbered
// position, or newly started ranking); negative means decline or
// drop-out. When both inputs are nil the delta is 0.
func Compute(baseline, current *int) int {
	return effective(baseline) - effective(current)
}

func effective(position *int) int {
	if position == nil {
		return UnrankedSentinel
	}
	return *position
}

// Change labels a movement for rendering. The label is derived from the
// raw inputs, never from the delta, so the sentinel arithmetic stays
// untouched.
type Change string

const (
	ChangeSteady   Change = "steady"
	ChangeImproved Change = "improved"
	ChangeDeclined Change = "declined"
	ChangeNew      Change = "new"
	ChangeLost     Change = "lost"
)

// Classify returns the rendering label for a baseline/current pair.
func Classify(baseline, current *int) Change {
	switch {
	case baseline == nil && current == nil:
		return ChangeSteady
	case baseline == nil:
		return ChangeNew
	case current == nil:
		return ChangeLost
	}

	delta := Compute(baseline, current)
	switch {
	case delta > 0:
		return ChangeImproved
	case delta < 0:
		return ChangeDeclined
	default:
		return ChangeSteady
	}
}

// ForEngines computes one MovementResult per engine for a pair of report
// rows. Either row may be nil when the keyword was missing from that
// snapshot entirely; a missing row reads as unranked on every engine.
func ForEngines(baseline, current *types.SerpSnapshotRow, engines []types.Engine) []types.MovementResult {
	results := make([]types.MovementResult, 0, len(engines))
	for _, engine := range engines {
		results = append(results, types.MovementResult{
			Engine: engine,
			Delta:  Compute(rowPosition(baseline, engine), rowPosition(current, engine)),
		})
	}
	return results
}

func rowPosition(row *types.SerpSnapshotRow, engine types.Engine) *int {
	if row == nil {
		return nil
	}
	return row.Position(engine)
}
