package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Backend selects where snapshot files live: "local" or "s3".
	Backend string `mapstructure:"backend" default:"local"`
	// LocalDir is the root directory of the local backend.
	LocalDir string `mapstructure:"local_dir" default:"data"`
	// Prefix is the key prefix used inside the bucket.
	Prefix string `mapstructure:"prefix" default:"watchlist"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket to store snapshots in.
	Bucket string `mapstructure:"bucket" default:"watchlist"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
