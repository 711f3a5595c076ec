// Package entry defines the watchlist Entry and the small vocabulary shared by
// the store, the snapshot codec and the reconcile engine.
//
// # Entry
//
// An Entry is one tracked item keyed by the id assigned by the originating
// catalog. Ids are never generated locally; two entries with the same id are
// the same item.
//
// # Status and Scope
//
// Status is a closed set (watching, completed, on_hold, dropped, planned).
// Scope selects either every entry ("all") or the entries of one status, and is
// used both when exporting and when filtering an incoming snapshot.
//
// # Dates
//
// Start and end dates are optional YYYY-MM-DD strings. ParseDate treats an
// absent or malformed value as "no date"; validation never rejects a date.
package entry
