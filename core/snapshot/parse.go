package snapshot

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"watchlist/core/entry"
)

// versionProbe reads only the version fields so the layout can be chosen
// before decoding the rest of the document.
type versionProbe struct {
	FormatVersion *string `json:"format_version"`
	Version       *string `json:"version"`
}

// legacyDocument is the layout written by 1.x releases.
type legacyDocument struct {
	Version   string         `json:"version"`
	Timestamp string         `json:"timestamp"`
	Metadata  legacyMetadata `json:"metadata"`
	AnimeList []legacyEntry  `json:"anime_list"`
}

type legacyMetadata struct {
	AppVersion string `json:"app_version"`
	OS         string `json:"os"`
	DeviceName string `json:"device_name"`
	ExportType string `json:"export_type"`
}

type legacyEntry struct {
	AnimeID   int64   `json:"anime_id"`
	Status    string  `json:"status"`
	Score     int     `json:"score"`
	Progress  int     `json:"progress"`
	Notes     string  `json:"notes"`
	Favorite  bool    `json:"favorite"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	ImageURL  string  `json:"image_url"`
	Title     string  `json:"title"`
}

// Parse decodes a snapshot document of any supported major version.
func Parse(data []byte) (*Snapshot, error) {
	var probe versionProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &FormatError{Reason: "malformed document", Err: err}
	}

	var version string
	switch {
	case probe.FormatVersion != nil:
		version = *probe.FormatVersion
	case probe.Version != nil:
		version = *probe.Version
	default:
		return nil, &FormatError{Reason: "missing format_version"}
	}

	major, _, err := ParseVersion(version)
	if err != nil {
		return nil, &VersionError{Version: version}
	}

	var snap *Snapshot
	switch major {
	case CurrentMajor:
		snap, err = parseCurrent(data)
	case LegacyMajor:
		snap, err = parseLegacy(data)
	default:
		return nil, &VersionError{Version: version}
	}
	if err != nil {
		return nil, err
	}

	snap.FormatVersion = version
	snap.Metadata.EntryCount = len(snap.Entries)
	return snap, nil
}

func parseCurrent(data []byte) (*Snapshot, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Reason: "malformed document", Err: err}
	}

	entries := doc.Entries
	if entries == nil {
		entries = []entry.Entry{}
	}

	return &Snapshot{
		CreatedAt: parseTimestamp(doc.CreatedAt),
		Metadata:  doc.Metadata,
		Entries:   entries,
	}, nil
}

func parseLegacy(data []byte) (*Snapshot, error) {
	var doc legacyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Reason: "malformed legacy document", Err: err}
	}

	scope, err := entry.ParseScope(doc.Metadata.ExportType)
	if err != nil {
		scope = entry.Scope(strings.ToLower(doc.Metadata.ExportType))
	}

	entries := make([]entry.Entry, 0, len(doc.AnimeList))
	for _, le := range doc.AnimeList {
		entries = append(entries, entry.Entry{
			ID:             le.AnimeID,
			Status:         entry.Status(le.Status),
			Score:          le.Score,
			Progress:       le.Progress,
			Notes:          le.Notes,
			Favorite:       le.Favorite,
			StartDate:      le.StartDate,
			EndDate:        le.EndDate,
			Title:          le.Title,
			ImageReference: le.ImageURL,
		})
	}

	return &Snapshot{
		CreatedAt: parseTimestamp(doc.Timestamp),
		Metadata: Metadata{
			AppVersion:  doc.Metadata.AppVersion,
			OS:          doc.Metadata.OS,
			DeviceName:  doc.Metadata.DeviceName,
			ExportScope: scope,
		},
		Entries: entries,
	}, nil
}

// ParseVersion splits a "major.minor[.patch]" version string.
// A missing minor component is reported as 0.
func ParseVersion(v string) (major, minor int, err error) {
	parts := strings.Split(strings.TrimSpace(v), ".")
	major, err = strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return 0, 0, &VersionError{Version: v}
	}
	if len(parts) > 1 {
		if minor, err = strconv.Atoi(parts[1]); err != nil {
			return 0, 0, &VersionError{Version: v}
		}
	}
	return major, minor, nil
}

// parseTimestamp accepts RFC 3339 with or without fractional seconds.
// Unreadable timestamps yield the zero time.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s)); err == nil {
		return t
	}
	return time.Time{}
}
