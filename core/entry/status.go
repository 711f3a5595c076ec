package entry

import (
	"fmt"
	"strings"
)

// Status is the watch state of an entry.
type Status string

const (
	StatusWatching  Status = "watching"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on_hold"
	StatusDropped   Status = "dropped"
	StatusPlanned   Status = "planned"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{
	StatusWatching,
	StatusCompleted,
	StatusOnHold,
	StatusDropped,
	StatusPlanned,
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusWatching, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanned:
		return true
	default:
		return false
	}
}

// ParseStatus normalizes and validates a status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

// Scope restricts an export or import to one status, or to all entries.
type Scope string

// ScopeAll matches every entry.
const ScopeAll Scope = "all"

// legacyScopeFull is how older exports labelled a complete export.
const legacyScopeFull = "full"

// ParseScope accepts "all" (or the legacy "full"), an empty string meaning all,
// or any valid status.
func ParseScope(raw string) (Scope, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == string(ScopeAll) || v == legacyScopeFull {
		return ScopeAll, nil
	}
	if !Status(v).IsValid() {
		return "", fmt.Errorf("unknown scope %q", raw)
	}
	return Scope(v), nil
}

// IsAll reports whether the scope selects every entry.
func (s Scope) IsAll() bool {
	return s == ScopeAll || s == ""
}

// Matches reports whether an entry with the given status falls inside the scope.
// Status comparison is case-insensitive.
func (s Scope) Matches(status Status) bool {
	if s.IsAll() {
		return true
	}
	return strings.EqualFold(string(s), strings.TrimSpace(string(status)))
}

// Status returns the status filter for the scope, or nil for ScopeAll.
func (s Scope) Status() *Status {
	if s.IsAll() {
		return nil
	}
	st := Status(s)
	return &st
}
