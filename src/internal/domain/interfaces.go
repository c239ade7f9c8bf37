// Package domain defines core interfaces for dependency injection and abstraction.
//
// This package contains the interfaces that decouple the classification core
// from the hardware view, the vendor database and the metrics backend, so each
// can be replaced by a fixture or a recorder in tests.
package domain

import (
	"time"

	"github.com/turris-cz/turrishw/src/internal/hw"
	"github.com/turris-cz/turrishw/src/internal/sysfs"
)

// HardwareAccessor is the rooted read-only view of /sys, /proc and /usr that
// all classification reads go through.
type HardwareAccessor = sysfs.Accessor

// VendorResolver maps PCI vendor IDs to human-readable names.
type VendorResolver interface {
	hw.VendorLookup

	// Path is the vendor database file.
	Path() string

	// Err reports why the vendor database could not be loaded, if it could not.
	Err() error
}

// EnumerationRecorder receives classification events and per-enumeration
// statistics.
type EnumerationRecorder interface {
	hw.Observer

	// ObserveEnumeration records one enumeration of board that took d and
	// yielded count interfaces, or failed with err.
	ObserveEnumeration(board string, d time.Duration, count int, err error)
}
