package config

import (
	"errors"
	"testing"
	"time"
)

// TestNewConfig pins the defaults so changes to them are intentional.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default fuzzer binary is ffuf", func(t *testing.T) {
		t.Parallel()
		if cfg.FuzzerBin != "ffuf" {
			t.Errorf("expected FuzzerBin 'ffuf', got %q", cfg.FuzzerBin)
		}
	})

	t.Run("default pv binary is pv", func(t *testing.T) {
		t.Parallel()
		if cfg.PVBin != "pv" {
			t.Errorf("expected PVBin 'pv', got %q", cfg.PVBin)
		}
	})

	t.Run("default poll interval is one second", func(t *testing.T) {
		t.Parallel()
		if cfg.PollInterval != time.Second {
			t.Errorf("expected PollInterval 1s, got %v", cfg.PollInterval)
		}
	})

	t.Run("default cooldown is one second", func(t *testing.T) {
		t.Parallel()
		if cfg.Cooldown != time.Second {
			t.Errorf("expected Cooldown 1s, got %v", cfg.Cooldown)
		}
	})

	t.Run("default recursion depth is three", func(t *testing.T) {
		t.Parallel()
		if cfg.RecursionDepth != 3 {
			t.Errorf("expected RecursionDepth 3, got %d", cfg.RecursionDepth)
		}
	})

	t.Run("default match codes filter is 200", func(t *testing.T) {
		t.Parallel()
		if cfg.MatchCodes != "200" {
			t.Errorf("expected MatchCodes '200', got %q", cfg.MatchCodes)
		}
	})

	t.Run("history is saved by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveHistory {
			t.Error("expected SaveHistory true")
		}
	})
}

// TestConfigValidate tests each validation rule in isolation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.TargetListPath = "targets.txt"
		cfg.WordlistPath = "words.txt"
		return cfg
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("missing target list returns ErrNoTargetList", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.TargetListPath = ""
		if err := cfg.Validate(); !errors.Is(err, ErrNoTargetList) {
			t.Errorf("expected ErrNoTargetList, got %v", err)
		}
	})

	t.Run("missing wordlist returns ErrNoWordlist", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.WordlistPath = ""
		if err := cfg.Validate(); !errors.Is(err, ErrNoWordlist) {
			t.Errorf("expected ErrNoWordlist, got %v", err)
		}
	})

	t.Run("empty fuzzer binary returns ErrNoFuzzerBin", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.FuzzerBin = ""
		if err := cfg.Validate(); !errors.Is(err, ErrNoFuzzerBin) {
			t.Errorf("expected ErrNoFuzzerBin, got %v", err)
		}
	})

	t.Run("zero poll interval returns ErrInvalidPollInterval", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.PollInterval = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidPollInterval) {
			t.Errorf("expected ErrInvalidPollInterval, got %v", err)
		}
	})

	t.Run("negative cooldown returns ErrInvalidCooldown", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Cooldown = -1 * time.Second
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidCooldown) {
			t.Errorf("expected ErrInvalidCooldown, got %v", err)
		}
	})

	t.Run("zero cooldown is allowed", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Cooldown = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error for zero cooldown, got %v", err)
		}
	})

	t.Run("negative recursion depth returns ErrInvalidRecursionDepth", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.RecursionDepth = -1
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidRecursionDepth) {
			t.Errorf("expected ErrInvalidRecursionDepth, got %v", err)
		}
	})
}
