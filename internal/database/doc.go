// Package database provides SQLite-based storage for subfuzz run history.
//
// Each completed run is stored with its jobs so users can list past runs
// and find their output directories later (`subfuzz history`).
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
//
// History is strictly best-effort: the orchestration loop never depends on
// the database, and failures here degrade to warnings.
package database
