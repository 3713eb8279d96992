// Package target reads and normalizes the target list.
//
// Each non-blank, non-comment line of the list becomes one Target with a
// 1-based ordinal, a filesystem-safe identifier, and a URL template carrying
// the fuzz-insertion marker. Blank lines and '#'-prefixed lines are skipped
// without consuming an ordinal, so ordinals always count real targets.
//
// Targets are immutable after enumeration; the total target count is fixed
// at enumeration time.
package target
