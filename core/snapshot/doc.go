// Package snapshot implements the portable export document for a watchlist.
//
// A Snapshot is an immutable bundle of entries plus export metadata, produced
// once by an export and read-only afterwards. The package only transforms
// in-memory values to and from bytes; reading and writing files is left to
// core/storage.
//
// # Format
//
// The current layout (format_version 2.x) is:
//
//	{
//	  "format_version": "2.0",
//	  "created_at": "2024-03-01T10:00:00Z",
//	  "metadata": {"app_version", "os", "device_name", "export_scope", "entry_count"},
//	  "entries": [{"id", "status", "score", "progress", "notes", "favorite",
//	               "start_date", "end_date", "title", "image_reference"}]
//	}
//
// Documents written by older releases (version 1.x, with "anime_list",
// "anime_id" and "image_url") are still accepted by Parse and mapped onto the
// same Snapshot value.
//
// # Compatibility
//
// Parse rejects documents whose major version is unknown with a VersionError,
// and unreadable input with a FormatError. Unknown fields are ignored and
// missing optional fields take their zero value. entry_count is always
// recomputed from the entries, never trusted.
//
// # Usage
//
//	data, err := snapshot.Serialize(entries, snapshot.NewMetadata("1.4.0", "", entry.ScopeAll), time.Now())
//
//	snap, err := snapshot.Parse(data)
//	var verr *snapshot.VersionError
//	if errors.As(err, &verr) {
//	    // produced by a newer, incompatible release
//	}
package snapshot
