// Package database handles database connections and schema inspection.
//
// It wraps GORM and opens either an embedded SQLite file (the default) or a
// MySQL server based on the application's configuration.
//
// # Schema Inspection
//
// GetTableColumns reads a table's columns using PRAGMA table_info on SQLite and
// SHOW COLUMNS on MySQL. VerifyColumns builds on it to check that a migrated
// table carries the columns a store expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//
//	err = database.VerifyColumns(db, "watchlist_entries", []string{"id", "status"})
package database
