// Package config provides configuration management for the watchlist service.
//
// It uses Viper to read environment variables, optionally seeded from a .env
// file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and body limit
//   - Database: sqlite file or MySQL connection details
//   - Storage: local directory or S3/MinIO bucket for snapshot files
//   - Log: logging level and format
//   - Snapshot: device name written into exports
//   - Backup: schedule, scope and retention of automatic backups
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
