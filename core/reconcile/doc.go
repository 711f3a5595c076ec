// Package reconcile merges an incoming list of watchlist entries into the live
// store under a configurable policy and reports the outcome.
//
// # Policy
//
// An import is described by three knobs:
//   - Scope: "all" or a single status; entries outside it are ignored and not counted.
//   - MergeStrategy: merge, replace (clear the store first) or skip_existing.
//   - ConflictResolution: keep_existing, use_imported or keep_newer; only
//     consulted when an id already exists under merge.
//
// # Decision Table
//
// The per-entry decision is the pure function Decide, which takes whether the
// id exists, the strategy, the resolution and the result of CompareEndDates.
// keep_newer lets the incoming entry win only if its end date is strictly
// later, or if it is the only one with a readable end date.
//
// # Architecture
//
//  1. Engine.Plan: reads the store and returns the actions without writing (dry run).
//  2. Engine.Reconcile: decides and applies each entry while holding the store's
//     exclusive lock for that entry. Under replace the lock is held across the
//     clear and every insert.
//
// The store is reached through the Target interface; the watchlist store
// implements it with a single mutex.
//
// # Outcome
//
// Every admitted entry lands in exactly one of Imported, Updated, Skipped or
// Errors, so Total == Imported + Updated + Skipped + len(Errors). Conflicts
// counts the skips caused by an id collision under merge.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(store, logger)
//	policy, err := reconcile.ParsePolicy("merge", "keep_newer", "all")
//	outcome, err := engine.Reconcile(ctx, snap.Entries, policy)
package reconcile
