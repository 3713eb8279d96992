// Package model defines the core data structures used throughout subfuzz.
//
// This package contains the following main types:
//   - Strategy: The progress-reporting strategy chosen once per run
//   - JobResult: The outcome of one fuzzer invocation against one target
//   - RunSummary: The aggregate result of a whole run
//   - ProgressSample: A point-in-time completion estimate (heuristic mode)
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (runner, report, database) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable for report output and
// database storage.
package model
