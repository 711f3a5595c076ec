// Package backup keeps rotating snapshot backups of the watchlist.
//
// Run exports the configured scope under the backup prefix and removes the
// oldest files beyond the retention count. The Scheduler triggers Run on a
// cron schedule and skips a run while the previous one is still going.
// Restore feeds a stored backup back through the normal import path.
package backup
