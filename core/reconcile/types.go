package reconcile

import (
	"fmt"
	"strings"

	"watchlist/core/entry"
)

// MergeStrategy is the top-level import policy.
type MergeStrategy string

const (
	// StrategyMerge merges incoming entries in place, consulting the conflict
	// resolution for ids that already exist.
	StrategyMerge MergeStrategy = "merge"
	// StrategyReplace clears the store before inserting every incoming entry.
	StrategyReplace MergeStrategy = "replace"
	// StrategySkipExisting only inserts ids that do not exist yet.
	StrategySkipExisting MergeStrategy = "skip_existing"
)

// ConflictResolution decides between an existing and an incoming entry with
// the same id. It is only consulted under StrategyMerge.
type ConflictResolution string

const (
	ResolutionKeepExisting ConflictResolution = "keep_existing"
	ResolutionUseImported  ConflictResolution = "use_imported"
	ResolutionKeepNewer    ConflictResolution = "keep_newer"
)

// ParseMergeStrategy validates a strategy name. Empty means StrategyMerge.
func ParseMergeStrategy(raw string) (MergeStrategy, error) {
	s := MergeStrategy(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case "":
		return StrategyMerge, nil
	case StrategyMerge, StrategyReplace, StrategySkipExisting:
		return s, nil
	default:
		return "", fmt.Errorf("unknown merge strategy %q", raw)
	}
}

// ParseConflictResolution validates a resolution name. Empty means ResolutionKeepExisting.
func ParseConflictResolution(raw string) (ConflictResolution, error) {
	r := ConflictResolution(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case "":
		return ResolutionKeepExisting, nil
	case ResolutionKeepExisting, ResolutionUseImported, ResolutionKeepNewer:
		return r, nil
	default:
		return "", fmt.Errorf("unknown conflict resolution %q", raw)
	}
}

// Policy bundles the knobs of one import.
type Policy struct {
	Scope      entry.Scope
	Strategy   MergeStrategy
	Resolution ConflictResolution
}

// ParsePolicy builds a policy from user supplied strings.
func ParsePolicy(strategy, resolution, scope string) (Policy, error) {
	s, err := ParseMergeStrategy(strategy)
	if err != nil {
		return Policy{}, err
	}
	r, err := ParseConflictResolution(resolution)
	if err != nil {
		return Policy{}, err
	}
	sc, err := entry.ParseScope(scope)
	if err != nil {
		return Policy{}, err
	}
	return Policy{Scope: sc, Strategy: s, Resolution: r}, nil
}

// Normalize validates the policy and fills empty fields with their defaults.
func (p Policy) Normalize() (Policy, error) {
	return ParsePolicy(string(p.Strategy), string(p.Resolution), string(p.Scope))
}

// Validate checks that every field holds a known value.
func (p Policy) Validate() error {
	_, err := p.Normalize()
	return err
}

// ActionType is the per-entry decision.
type ActionType string

const (
	ActionInsert ActionType = "insert"
	ActionUpdate ActionType = "update"
	ActionSkip   ActionType = "skip"
)

// DateComparison is the result of comparing the end dates of an existing and
// an incoming entry.
type DateComparison string

const (
	// ComparisonIncomingLater means both dates parse and the incoming one is strictly later.
	ComparisonIncomingLater DateComparison = "incoming_later"
	// ComparisonIncomingOnly means only the incoming date parses.
	ComparisonIncomingOnly DateComparison = "incoming_only"
	// ComparisonExistingNotOlder means both parse and the existing one is the same or later.
	ComparisonExistingNotOlder DateComparison = "existing_not_older"
	// ComparisonExistingOnly means only the existing date parses.
	ComparisonExistingOnly DateComparison = "existing_only"
	// ComparisonNoDates means neither date parses.
	ComparisonNoDates DateComparison = "no_dates"
)

// IncomingWins reports whether keep_newer should take the incoming entry.
func (c DateComparison) IncomingWins() bool {
	return c == ComparisonIncomingLater || c == ComparisonIncomingOnly
}

// Action is a planned or applied decision for one incoming entry.
type Action struct {
	Type   ActionType `json:"type"`
	Key    int64      `json:"id"`
	Reason string     `json:"reason"`

	// Conflict marks skips caused by an id collision under StrategyMerge.
	Conflict bool `json:"conflict,omitempty"`

	// Entry is the incoming entry the action applies to.
	Entry entry.Entry `json:"-"`
}

// ErrorKind classifies a per-entry failure.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindStore      ErrorKind = "store"
)

// EntryError is a per-entry failure recorded in an Outcome.
type EntryError struct {
	// Index is the position of the entry in the incoming snapshot.
	Index   int       `json:"index"`
	ID      int64     `json:"id"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`

	Err error `json:"-"`
}

func (e EntryError) Error() string {
	return fmt.Sprintf("entry #%d (id %d): %s", e.Index, e.ID, e.Message)
}

func (e EntryError) Unwrap() error {
	return e.Err
}

// Outcome reports what an import did, or would do for a dry run.
//
// Total counts the entries left after scope filtering; every one of them ends
// up in exactly one of Imported, Updated, Skipped or Errors.
type Outcome struct {
	Total    int `json:"total"`
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`

	// Conflicts is the part of Skipped caused by an existing id under
	// StrategyMerge (keep_existing, or keep_newer where the existing entry won).
	// Skips from StrategySkipExisting are not conflicts.
	Conflicts int `json:"conflicts"`

	Errors []EntryError `json:"errors"`

	Scope      entry.Scope        `json:"scope"`
	Strategy   MergeStrategy      `json:"merge_strategy"`
	Resolution ConflictResolution `json:"conflict_resolution"`
	DryRun     bool               `json:"dry_run"`
}

// Consistent reports whether the counters add up to Total.
func (o *Outcome) Consistent() bool {
	return o.Total == o.Imported+o.Updated+o.Skipped+len(o.Errors)
}

// Plan is the list of decisions for an import together with its outcome.
type Plan struct {
	Actions []Action `json:"actions"`
	Outcome *Outcome `json:"outcome"`
}
