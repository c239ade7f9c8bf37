// Package log provides simple leveled logging for turrishw.
//
// The package keeps a small global API (Debugf, Infof, Warnf, Errorf, Fatalf)
// on top of a single logrus logger. All output goes to stderr so that the
// interface listing printed on stdout stays machine readable.
//
// # Log Levels
//
//   - DEBUG: Detailed diagnostic information (only shown in verbose mode)
//   - INFO: General informational messages
//   - WARN: Interfaces that could not be classified, unsupported boards
//   - ERROR: Error messages for failures and exceptions
//
// # Example Usage
//
//	log.Warnf("unknown interface type: %s", name)
//
//	log.SetVerbose(true)
//	log.Debugf("resolved %s -> %s", name, path)
//
// Tests can capture output with SetOutput and silence it with DisableLogs.
package log
