package adapter

import (
	"errors"
	"fmt"

	"scandiff/internal/domain"
)

// ScanErrorKind identifies which step of loading a scan failed
type ScanErrorKind string

const (
	// ReadFailure - the scan file could not be read
	ReadFailure ScanErrorKind = "read"
	// ParseFailure - the file was read but is not valid scan output
	ParseFailure ScanErrorKind = "parse"
)

// ErrNotEnoughScans is returned when a scan folder holds fewer than two usable scans
var ErrNotEnoughScans = errors.New("at least two parsable scans are required")

// ScanError reports a failed load of one scan file
type ScanError struct {
	Kind ScanErrorKind
	Path string
	Err  error
}

// Error implements error
func (e *ScanError) Error() string {
	switch e.Kind {
	case ReadFailure:
		return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
	case ParseFailure:
		return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
	}
}

// Unwrap returns the underlying cause
func (e *ScanError) Unwrap() error {
	return e.Err
}

// IsReadFailure reports whether err is a ScanError of kind ReadFailure
func IsReadFailure(err error) bool {
	var scanErr *ScanError
	return errors.As(err, &scanErr) && scanErr.Kind == ReadFailure
}

// IsParseFailure reports whether err is a ScanError of kind ParseFailure
func IsParseFailure(err error) bool {
	var scanErr *ScanError
	return errors.As(err, &scanErr) && scanErr.Kind == ParseFailure
}

// Loader turns scan files into snapshots
type Loader interface {
	// Name returns the loader identifier
	Name() string

	// Load reads and parses a single scan file
	Load(path string) (*domain.Snapshot, error)

	// LatestPair picks the two most recent scans in a folder, older first
	LatestPair(dir string) (*domain.Snapshot, *domain.Snapshot, error)

	// Matches reports whether a file name looks like a scan this loader reads
	Matches(path string) bool
}
