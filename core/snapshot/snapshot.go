package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"watchlist/core/entry"
)

const (
	// CurrentVersion is written into every new snapshot.
	CurrentVersion = "2.0"
	// CurrentMajor is the major component of CurrentVersion.
	CurrentMajor = 2
	// LegacyMajor is the major version of documents written by older releases.
	LegacyMajor = 1
)

// Snapshot is a parsed or freshly built export document.
type Snapshot struct {
	FormatVersion string        `json:"format_version"`
	CreatedAt     time.Time     `json:"created_at"`
	Metadata      Metadata      `json:"metadata"`
	Entries       []entry.Entry `json:"entries"`
}

// Metadata describes the producer of a snapshot and what it contains.
type Metadata struct {
	AppVersion  string      `json:"app_version"`
	OS          string      `json:"os"`
	DeviceName  string      `json:"device_name"`
	ExportScope entry.Scope `json:"export_scope"`
	EntryCount  int         `json:"entry_count"`
}

// document is the serialized form of the current format.
type document struct {
	FormatVersion string        `json:"format_version"`
	CreatedAt     string        `json:"created_at"`
	Metadata      Metadata      `json:"metadata"`
	Entries       []entry.Entry `json:"entries"`
}

// New builds a snapshot in the current format.
func New(entries []entry.Entry, meta Metadata, createdAt time.Time) *Snapshot {
	if entries == nil {
		entries = []entry.Entry{}
	}
	meta.EntryCount = len(entries)
	return &Snapshot{
		FormatVersion: CurrentVersion,
		CreatedAt:     createdAt,
		Metadata:      meta,
		Entries:       entries,
	}
}

// Serialize encodes the snapshot in the current format.
func (s *Snapshot) Serialize() ([]byte, error) {
	return Serialize(s.Entries, s.Metadata, s.CreatedAt)
}

// Serialize encodes entries and metadata as a snapshot document.
// The entry count in meta is replaced with len(entries).
func Serialize(entries []entry.Entry, meta Metadata, createdAt time.Time) ([]byte, error) {
	if entries == nil {
		entries = []entry.Entry{}
	}
	meta.EntryCount = len(entries)

	doc := document{
		FormatVersion: CurrentVersion,
		CreatedAt:     createdAt.Format(time.RFC3339),
		Metadata:      meta,
		Entries:       entries,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}
