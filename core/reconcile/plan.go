package reconcile

import (
	"errors"

	"watchlist/core/entry"
)

// Decide maps one row of the import decision table to an action.
// It is pure: the caller supplies whether the id exists and, for keep_newer,
// how the end dates compare.
//
//	exists  strategy       resolution     action
//	no      any            -              insert
//	yes     replace        -              insert (store already cleared)
//	yes     skip_existing  -              skip
//	yes     merge          keep_existing  skip (conflict)
//	yes     merge          use_imported   update
//	yes     merge          keep_newer     update if the incoming end date wins, else skip (conflict)
func Decide(exists bool, strategy MergeStrategy, resolution ConflictResolution, cmp DateComparison) Action {
	if !exists {
		return Action{Type: ActionInsert, Reason: "new entry"}
	}

	switch strategy {
	case StrategyReplace:
		return Action{Type: ActionInsert, Reason: "store cleared by replace"}
	case StrategySkipExisting:
		return Action{Type: ActionSkip, Reason: "exists, skip_existing"}
	case StrategyMerge:
		switch resolution {
		case ResolutionUseImported:
			return Action{Type: ActionUpdate, Reason: "exists, use_imported"}
		case ResolutionKeepNewer:
			if cmp.IncomingWins() {
				return Action{Type: ActionUpdate, Reason: "keep_newer: " + string(cmp)}
			}
			return Action{Type: ActionSkip, Reason: "keep_newer: " + string(cmp), Conflict: true}
		case ResolutionKeepExisting:
			return Action{Type: ActionSkip, Reason: "exists, keep_existing", Conflict: true}
		}
	}

	return Action{Type: ActionSkip, Reason: "unsupported policy"}
}

// CompareEndDates compares the end dates used by keep_newer. Absent and
// malformed dates count as "no date".
func CompareEndDates(existing, incoming *string) DateComparison {
	e, eok := entry.ParseDate(existing)
	i, iok := entry.ParseDate(incoming)

	switch {
	case eok && iok:
		if i.After(e) {
			return ComparisonIncomingLater
		}
		return ComparisonExistingNotOlder
	case iok:
		return ComparisonIncomingOnly
	case eok:
		return ComparisonExistingOnly
	default:
		return ComparisonNoDates
	}
}

// decideFor resolves the action for an incoming entry against the stored one.
func decideFor(existing *entry.Entry, incoming entry.Entry, policy Policy) Action {
	cmp := ComparisonNoDates
	if existing != nil && policy.Resolution == ResolutionKeepNewer {
		cmp = CompareEndDates(existing.EndDate, incoming.EndDate)
	}

	a := Decide(existing != nil, policy.Strategy, policy.Resolution, cmp)
	a.Key = incoming.ID
	a.Entry = incoming
	return a
}

func newOutcome(policy Policy, dryRun bool) *Outcome {
	return &Outcome{
		Errors:     []EntryError{},
		Scope:      policy.Scope,
		Strategy:   policy.Strategy,
		Resolution: policy.Resolution,
		DryRun:     dryRun,
	}
}

// add records an action in the plan and its counters.
func (p *Plan) add(a Action) {
	p.Actions = append(p.Actions, a)

	switch a.Type {
	case ActionInsert:
		p.Outcome.Imported++
	case ActionUpdate:
		p.Outcome.Updated++
	case ActionSkip:
		p.Outcome.Skipped++
		if a.Conflict {
			p.Outcome.Conflicts++
		}
	}
}

// fail records a per-entry failure.
func (o *Outcome) fail(index int, id int64, err error) {
	kind := KindStore
	var verr *entry.ValidationError
	if errors.As(err, &verr) {
		kind = KindValidation
	}

	o.Errors = append(o.Errors, EntryError{
		Index:   index,
		ID:      id,
		Kind:    kind,
		Message: err.Error(),
		Err:     err,
	})
}

// FilterScope returns the entries that fall inside scope, in input order.
func FilterScope(entries []entry.Entry, scope entry.Scope) []entry.Entry {
	if scope.IsAll() {
		return entries
	}
	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if scope.Matches(e.Status) {
			out = append(out, e)
		}
	}
	return out
}
