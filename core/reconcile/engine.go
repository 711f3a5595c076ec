package reconcile

import (
	"context"
	"errors"

	"watchlist/core/entry"

	"go.uber.org/zap"
)

// Engine merges incoming entries into a Target under a Policy.
type Engine struct {
	target Target
	logger *zap.Logger
}

// NewEngine creates an engine for the given store.
func NewEngine(target Target, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{target: target, logger: logger}
}

// Reconcile applies entries to the store and reports what happened.
//
// Entries outside the policy scope are ignored entirely. Invalid entries and
// per-entry store failures are recorded in Outcome.Errors and the batch
// continues. The only failures returned as an error are an invalid policy and,
// under StrategyReplace, a failed clear; in both cases nothing was written.
func (e *Engine) Reconcile(ctx context.Context, entries []entry.Entry, policy Policy) (*Outcome, error) {
	plan, err := e.execute(ctx, entries, policy, false)
	if err != nil {
		return nil, err
	}
	return plan.Outcome, nil
}

// Plan computes the actions Reconcile would take without writing anything.
// Under StrategyReplace every admitted entry is planned as an insert.
func (e *Engine) Plan(ctx context.Context, entries []entry.Entry, policy Policy) (*Plan, error) {
	return e.execute(ctx, entries, policy, true)
}

func (e *Engine) execute(ctx context.Context, entries []entry.Entry, policy Policy, dryRun bool) (*Plan, error) {
	policy, err := policy.Normalize()
	if err != nil {
		return nil, err
	}

	plan := &Plan{Actions: []Action{}, Outcome: newOutcome(policy, dryRun)}
	seen := make(map[int64]struct{}, len(entries))

	// admit applies scope filtering, validation and duplicate detection.
	// Only entries inside the scope are counted in Total.
	admit := func(index int, in *entry.Entry) bool {
		if !policy.Scope.Matches(in.Status) {
			return false
		}
		plan.Outcome.Total++

		if err := in.Validate(); err != nil {
			e.reject(plan.Outcome, index, in.ID, err)
			return false
		}
		if _, dup := seen[in.ID]; dup {
			e.reject(plan.Outcome, index, in.ID, &entry.ValidationError{
				ID:     in.ID,
				Field:  "id",
				Reason: "duplicate id in snapshot",
			})
			return false
		}
		seen[in.ID] = struct{}{}
		return true
	}

	if policy.Strategy == StrategyReplace {
		return e.replace(ctx, entries, policy, plan, admit, dryRun)
	}

	for i := range entries {
		in := entries[i]
		if !admit(i, &in) {
			continue
		}

		var action Action
		err := e.target.Exclusive(ctx, func(s Store) error {
			existing, err := s.Get(ctx, in.ID)
			if err != nil {
				return &StoreError{Op: OpGet, ID: in.ID, Err: err}
			}

			action = decideFor(existing, in, policy)
			if dryRun || action.Type == ActionSkip {
				return nil
			}

			if _, err := s.Upsert(ctx, in); err != nil {
				return &StoreError{Op: OpUpsert, ID: in.ID, Err: err}
			}
			return nil
		})
		if err != nil {
			e.reject(plan.Outcome, i, in.ID, asStoreError(err, in.ID))
			continue
		}

		plan.add(action)
	}

	return plan, nil
}

// replace clears the store and inserts every admitted entry while holding the
// store lock for the whole sequence. A failed clear aborts before any entry
// is processed.
func (e *Engine) replace(
	ctx context.Context,
	entries []entry.Entry,
	policy Policy,
	plan *Plan,
	admit func(int, *entry.Entry) bool,
	dryRun bool,
) (*Plan, error) {
	if dryRun {
		for i := range entries {
			in := entries[i]
			if admit(i, &in) {
				plan.add(decideFor(nil, in, policy))
			}
		}
		return plan, nil
	}

	err := e.target.Exclusive(ctx, func(s Store) error {
		if err := s.Clear(ctx); err != nil {
			return &StoreError{Op: OpClear, Err: err}
		}

		for i := range entries {
			in := entries[i]
			if !admit(i, &in) {
				continue
			}

			if _, err := s.Upsert(ctx, in); err != nil {
				e.reject(plan.Outcome, i, in.ID, &StoreError{Op: OpUpsert, ID: in.ID, Err: err})
				continue
			}
			plan.add(decideFor(nil, in, policy))
		}
		return nil
	})
	if err != nil {
		e.logger.Error("Replace import aborted", zap.Error(err))
		return nil, asStoreError(err, 0)
	}

	return plan, nil
}

func (e *Engine) reject(out *Outcome, index int, id int64, err error) {
	e.logger.Debug("Entry rejected",
		zap.Int("index", index),
		zap.Int64("id", id),
		zap.Error(err),
	)
	out.fail(index, id, err)
}

// asStoreError makes sure failures coming out of the store lock are typed.
func asStoreError(err error, id int64) error {
	var serr *StoreError
	if errors.As(err, &serr) {
		return err
	}
	return &StoreError{Op: "lock", ID: id, Err: err}
}
