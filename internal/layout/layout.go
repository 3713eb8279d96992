package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// runDirFormat names the run root with second resolution, e.g.
// subfuzz-20260825-143012. Two runs started within the same second share
// a root, which is harmless since jobs only append new subdirectories.
const runDirFormat = "subfuzz-20060102-150405"

// dirPerm is the permission for created directories. Group-readable but not
// world-accessible, matching how scan artifacts are stored elsewhere.
const dirPerm = 0750

// SafeName maps every character outside [A-Za-z0-9._-] to '_', preserving
// the input's length and character positions. It is used both for the
// per-target subdirectory name and the log file stem.
//
// This is a transform, not a uniqueness guarantee: distinct raw targets can
// produce identical safe names.
func SafeName(raw string) string {
	b := []byte(raw)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}

// Layout owns the run's output directory tree. Create one per run with
// NewLayout; it is safe to derive paths for any number of targets from it.
type Layout struct {
	// root is the timestamped run directory, created by NewLayout.
	root string
}

// NewLayout creates the timestamped run root under outputRoot and returns a
// Layout rooted there. The root is created exactly once, at startup, before
// any job runs.
func NewLayout(outputRoot string, startedAt time.Time) (*Layout, error) {
	root := filepath.Join(outputRoot, startedAt.Format(runDirFormat))
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create run directory %s: %w", root, err)
	}
	return &Layout{root: root}, nil
}

// Root returns the run's output root directory.
func (l *Layout) Root() string {
	return l.root
}

// TargetPaths ensures the per-target directory exists and returns it along
// with the log file path dir/<safeName>.log. The create is idempotent and
// recursive, so calling it twice for colliding safe names is fine.
func (l *Layout) TargetPaths(safeName string) (dir, logPath string, err error) {
	dir = filepath.Join(l.root, safeName)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", "", fmt.Errorf("failed to create target directory %s: %w", dir, err)
	}
	return dir, filepath.Join(dir, safeName+".log"), nil
}
