package snapshot

import (
	"os"
	"runtime"
	"strings"

	"watchlist/core/entry"
)

// Config holds producer settings stamped into exported snapshots.
type Config struct {
	// DeviceName overrides the hostname recorded in snapshot metadata.
	DeviceName string `mapstructure:"device_name" default:""`
}

// unknownDevice is recorded when no device name can be determined.
const unknownDevice = "Unknown"

var hostname = os.Hostname

// NewMetadata describes the current process as the producer of a snapshot.
// deviceName wins over the hostname when set.
func NewMetadata(appVersion, deviceName string, scope entry.Scope) Metadata {
	if scope == "" {
		scope = entry.ScopeAll
	}
	return Metadata{
		AppVersion:  appVersion,
		OS:          runtime.GOOS,
		DeviceName:  resolveDeviceName(deviceName),
		ExportScope: scope,
	}
}

func resolveDeviceName(override string) string {
	if name := strings.TrimSpace(override); name != "" {
		return name
	}
	if name, err := hostname(); err == nil && name != "" {
		return name
	}
	return unknownDevice
}
