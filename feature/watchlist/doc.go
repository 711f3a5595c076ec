// Package watchlist exposes the watched-media list over a Service, an HTTP
// Handler and a loader Feature.
//
// The Service ties the store, the snapshot codec, the reconciliation engine
// and the storage backend together:
//
//   - Export / ExportTo: list the entries within a scope and serialize them.
//   - Import / ImportFrom: parse a snapshot and reconcile it under a policy.
//     Malformed snapshots and unknown policy values fail before the store is
//     touched.
//   - List, Get, Upsert, Delete, Search and Stats for everyday editing.
//
// # HTTP
//
//	GET    /entries?status=
//	GET    /entries/search?q=
//	GET    /entries/:id
//	PUT    /entries/:id
//	DELETE /entries/:id
//	GET    /stats
//	GET    /export?scope=
//	POST   /import?strategy=&resolution=&scope=&dry_run=
package watchlist
