// Package store persists watchlist entries with GORM.
//
// Entries live in the watchlist_entries table keyed by their external id.
// Every public method takes the store mutex; Exclusive holds it, inside a
// single database transaction, across a multi-step unit such as the
// get-decide-upsert sequence of an import or a replace's clear and inserts.
// Store implements reconcile.Target.
package store
