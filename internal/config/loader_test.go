package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfigFile verifies YAML parsing of defaults and per-target
// override blocks.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("valid file parses defaults and targets", func(t *testing.T) {
		t.Parallel()

		content := `defaults:
  match_codes: "200,301"
  recursion_depth: 2
targets:
  admin.example.com:
    extra_args: ["-rate", "50"]
    user_agent: "custom-agent"
`
		path := filepath.Join(t.TempDir(), ".subfuzz")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile failed: %v", err)
		}

		if cf.Defaults.MatchCodes != "200,301" {
			t.Errorf("defaults match_codes = %q, want '200,301'", cf.Defaults.MatchCodes)
		}
		if cf.Defaults.RecursionDepth != 2 {
			t.Errorf("defaults recursion_depth = %d, want 2", cf.Defaults.RecursionDepth)
		}

		ov, ok := cf.Targets["admin.example.com"]
		if !ok {
			t.Fatal("expected override for admin.example.com")
		}
		if len(ov.ExtraArgs) != 2 || ov.ExtraArgs[0] != "-rate" {
			t.Errorf("unexpected extra_args: %v", ov.ExtraArgs)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml returns an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".subfuzz")
		if err := os.WriteFile(path, []byte(":\n  - ]["), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}

// TestFileFor verifies defaults/override merging semantics.
func TestFileFor(t *testing.T) {
	t.Parallel()

	cf := &File{
		Defaults: TargetOverride{
			ExtraArgs:  []string{"-rate", "100"},
			MatchCodes: "200",
		},
		Targets: map[string]TargetOverride{
			"slow.example.com": {
				ExtraArgs:      []string{"-timeout", "30"},
				RecursionDepth: 1,
			},
		},
	}

	t.Run("unknown target gets defaults", func(t *testing.T) {
		t.Parallel()
		ov := cf.For("other.example.com")
		if ov.MatchCodes != "200" {
			t.Errorf("match codes = %q, want defaults value", ov.MatchCodes)
		}
		if len(ov.ExtraArgs) != 2 {
			t.Errorf("extra args = %v, want defaults only", ov.ExtraArgs)
		}
	})

	t.Run("override extends extra args and keeps defaults", func(t *testing.T) {
		t.Parallel()
		ov := cf.For("slow.example.com")
		want := []string{"-rate", "100", "-timeout", "30"}
		if len(ov.ExtraArgs) != len(want) {
			t.Fatalf("extra args = %v, want %v", ov.ExtraArgs, want)
		}
		for i := range want {
			if ov.ExtraArgs[i] != want[i] {
				t.Errorf("extra args[%d] = %q, want %q", i, ov.ExtraArgs[i], want[i])
			}
		}
		if ov.MatchCodes != "200" {
			t.Errorf("match codes = %q, want inherited '200'", ov.MatchCodes)
		}
		if ov.RecursionDepth != 1 {
			t.Errorf("recursion depth = %d, want 1", ov.RecursionDepth)
		}
	})

	t.Run("nil file yields zero override", func(t *testing.T) {
		t.Parallel()
		var nilFile *File
		ov := nilFile.For("anything")
		if ov.MatchCodes != "" || len(ov.ExtraArgs) != 0 {
			t.Errorf("expected zero override, got %+v", ov)
		}
	})
}
