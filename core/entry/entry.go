package entry

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MinScore is the "unrated" score.
	MinScore = 0
	// MaxScore is the highest rating.
	MaxScore = 10

	// DateLayout is the calendar date layout used for start and end dates.
	DateLayout = "2006-01-02"
)

// Entry is one tracked item.
type Entry struct {
	ID             int64   `json:"id"`
	Status         Status  `json:"status"`
	Score          int     `json:"score"`
	Progress       int     `json:"progress"`
	Notes          string  `json:"notes"`
	Favorite       bool    `json:"favorite"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
	Title          string  `json:"title"`
	ImageReference string  `json:"image_reference"`
}

// ValidationError reports an entry that violates a domain constraint.
type ValidationError struct {
	ID     int64
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entry %d: invalid %s: %s", e.ID, e.Field, e.Reason)
}

// Validate checks the domain constraints of the entry.
// It normalizes the status to lower case as a side effect.
func (e *Entry) Validate() error {
	if e.ID <= 0 {
		return &ValidationError{ID: e.ID, Field: "id", Reason: "must be positive"}
	}

	status, err := ParseStatus(string(e.Status))
	if err != nil {
		return &ValidationError{ID: e.ID, Field: "status", Reason: err.Error()}
	}
	e.Status = status

	if e.Score < MinScore || e.Score > MaxScore {
		return &ValidationError{
			ID:     e.ID,
			Field:  "score",
			Reason: fmt.Sprintf("%d outside %d-%d", e.Score, MinScore, MaxScore),
		}
	}
	if e.Progress < 0 {
		return &ValidationError{ID: e.ID, Field: "progress", Reason: "must not be negative"}
	}
	return nil
}

// ParseDate parses an optional YYYY-MM-DD date. Absent, blank or malformed
// values report ok=false.
func ParseDate(v *string) (t time.Time, ok bool) {
	if v == nil {
		return time.Time{}, false
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Date is a convenience constructor for optional date fields.
func Date(s string) *string {
	return &s
}

// Equal reports whether two entries carry the same content.
func (e Entry) Equal(o Entry) bool {
	return e.ID == o.ID &&
		e.Status == o.Status &&
		e.Score == o.Score &&
		e.Progress == o.Progress &&
		e.Notes == o.Notes &&
		e.Favorite == o.Favorite &&
		equalDate(e.StartDate, o.StartDate) &&
		equalDate(e.EndDate, o.EndDate) &&
		e.Title == o.Title &&
		e.ImageReference == o.ImageReference
}

func equalDate(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
