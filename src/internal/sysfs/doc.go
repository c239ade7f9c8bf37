// Package sysfs provides read-only access to a rooted sysfs/procfs tree.
//
// The root is injected through New, so the same code runs against the live
// system ("/") and against captured fixture trees in tests. Nothing in this
// package writes to the filesystem.
//
// Missing paths are reported with errors.ErrCodeNotFound and other failures
// with errors.ErrCodeUnreadable, so callers can decide which conditions are
// fatal for a run and which only affect one interface.
//
// Per-interface network attributes (operstate, speed, ...) are parsed by
// github.com/prometheus/procfs/sysfs.
package sysfs
