// Package layout derives filesystem-safe names and builds the run's output
// directory tree.
//
// Each run owns a timestamped root directory created once at startup. Inside
// it, every target gets one subdirectory (named by the safe-name transform)
// holding that target's log file. Directories are created before any log
// file is opened into them.
//
// Known limitation: two targets whose safe names are identical share a
// subdirectory. The transform preserves length and position, so it cannot
// guarantee uniqueness; we accept the collision rather than correct it.
package layout
