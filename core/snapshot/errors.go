package snapshot

import "fmt"

// FormatError reports snapshot bytes that cannot be read as a snapshot document.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid snapshot: %s: %v", e.Reason, e.Err)
	}
	return "invalid snapshot: " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// VersionError reports a snapshot whose major format version is not supported.
type VersionError struct {
	Version string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported snapshot format version %q (supported major versions: %d, %d)",
		e.Version, LegacyMajor, CurrentMajor)
}
