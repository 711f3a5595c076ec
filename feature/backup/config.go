package backup

// Config holds configuration for scheduled backups.
type Config struct {
	// Enabled turns on the cron scheduler. Manual runs work either way.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Schedule is a standard 5-field cron expression.
	Schedule string `mapstructure:"schedule" default:"0 3 * * *"`
	// Scope is the export scope of each backup.
	Scope string `mapstructure:"scope" default:"all"`
	// Retain is how many backups to keep. Zero keeps everything.
	Retain int `mapstructure:"retain" default:"7"`
	// Prefix is the directory (or key prefix) backups are written under.
	Prefix string `mapstructure:"prefix" default:"backups"`
}
