package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/subfuzz/subfuzz/internal/capability"
	"github.com/subfuzz/subfuzz/internal/config"
	"github.com/subfuzz/subfuzz/internal/database"
	"github.com/subfuzz/subfuzz/internal/layout"
	intlog "github.com/subfuzz/subfuzz/internal/log"
	"github.com/subfuzz/subfuzz/internal/model"
	"github.com/subfuzz/subfuzz/internal/report"
	"github.com/subfuzz/subfuzz/internal/runner"
	"github.com/subfuzz/subfuzz/internal/target"
)

// summaryFileName is the markdown summary dropped into each run directory.
const summaryFileName = "summary.md"

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run --list <file> --wordlist <file> [flags] [-- fuzzer-args...]",
		Short: "Fuzz every target in a list, one at a time",
		Long: `Run fuzzes each target from the list sequentially with one shared wordlist.

Each target gets its own directory and log file under a timestamped run
root. Progress is exact when pv is installed (the wordlist is streamed
through it into the fuzzer) and estimated from the fuzzer's partial
results file otherwise. A fixed cool-down separates consecutive targets.

Arguments after "--" are passed to the fuzzer verbatim, last, so they
override the built-in defaults.

Examples:
  # Fuzz all subdomains from a file
  subfuzz run --list subdomains.txt --wordlist common.txt

  # Widen the status match and raise the rate via passthrough arguments
  subfuzz run -l subs.txt -w words.txt -- -mc 200,204,301 -rate 100

  # Use a custom configuration file with per-target overrides
  subfuzz run -l subs.txt -w words.txt -c myconfig.yaml

Configuration file (.subfuzz) example:
  defaults:
    match_codes: "200,301"
  targets:
    admin.example.com:
      user_agent: "Mozilla/5.0"
      extra_args: ["-rate", "50"]`,
		Args: cobra.ArbitraryArgs,
		RunE: runRunCmd,
	}

	// Input flags
	cmd.Flags().StringP("list", "l", "", "File with one target per line (required)")
	cmd.Flags().StringP("wordlist", "w", "", "Shared wordlist passed to the fuzzer (required)")

	// Output flags
	cmd.Flags().StringP("output", "o", ".", "Directory under which the run directory is created")

	// Fuzzing behavior flags
	cmd.Flags().IntP("depth", "d", config.DefaultRecursionDepth, "Fuzzer recursion depth")
	cmd.Flags().String("match-codes", config.DefaultMatchCodes, "HTTP status codes treated as hits")
	cmd.Flags().String("user-agent", config.DefaultUserAgent, "User-Agent header for fuzzer requests")
	cmd.Flags().Duration("cooldown", config.DefaultCooldown, "Pause between consecutive targets")
	cmd.Flags().Duration("poll-interval", config.DefaultPollInterval, "Results polling interval in heuristic mode")

	// External binaries
	cmd.Flags().String("fuzzer-bin", config.DefaultFuzzerBin, "Fuzzer binary name or path")
	cmd.Flags().String("pv-bin", config.DefaultPVBin, "pv binary name or path")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .subfuzz in current or home directory)")

	// History
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runFuzzing(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.TargetListPath, err = cmd.Flags().GetString("list")
	if err != nil {
		return nil, err
	}

	cfg.WordlistPath, err = cmd.Flags().GetString("wordlist")
	if err != nil {
		return nil, err
	}

	cfg.OutputRoot, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.RecursionDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.MatchCodes, err = cmd.Flags().GetString("match-codes")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.Cooldown, err = cmd.Flags().GetDuration("cooldown")
	if err != nil {
		return nil, err
	}

	cfg.PollInterval, err = cmd.Flags().GetDuration("poll-interval")
	if err != nil {
		return nil, err
	}

	cfg.FuzzerBin, err = cmd.Flags().GetString("fuzzer-bin")
	if err != nil {
		return nil, err
	}

	cfg.PVBin, err = cmd.Flags().GetString("pv-bin")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	cfg.Verbose = getVerboseFlag(cmd)

	// Arguments after "--" are forwarded to the fuzzer verbatim.
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		cfg.Passthrough = args[dash:]
	}

	// Load per-target overrides from the config file.
	// If the user explicitly specified a path, error if it is not found.
	// If no path was specified, silently use an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Overrides, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	} else {
		cfg.Overrides = &config.File{
			Targets: make(map[string]config.TargetOverride),
		}
	}

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// All output passes through the masking handler so credentials embedded in
// URLs or passthrough arguments never reach the terminal.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := intlog.NewMaskHandler(slog.NewTextHandler(os.Stderr, opts))
	return slog.New(handler)
}

// preflight verifies the external inputs exist before any directory is
// created. Each failure maps to a distinct exit code.
func preflight(cfg *config.Config) error {
	if err := checkReadable(cfg.TargetListPath); err != nil {
		return &exitError{
			code: exitCodeTargetList,
			err:  fmt.Errorf("target list %s: %w", cfg.TargetListPath, err),
		}
	}

	if err := checkReadable(cfg.WordlistPath); err != nil {
		return &exitError{
			code: exitCodeWordlist,
			err:  fmt.Errorf("wordlist %s: %w", cfg.WordlistPath, err),
		}
	}

	if err := checkBinary(cfg.FuzzerBin); err != nil {
		return &exitError{
			code: exitCodeFuzzer,
			err:  fmt.Errorf("fuzzer binary %s: %w", cfg.FuzzerBin, err),
		}
	}

	return nil
}

// checkReadable opens and closes the file to confirm read access.
func checkReadable(path string) error {
	f, err := os.Open(path) //nolint:gosec // Path comes from the user's own flags
	if err != nil {
		return err
	}
	return f.Close()
}

// checkBinary resolves a binary name on PATH, or stats it when the user
// gave an explicit path.
func checkBinary(bin string) error {
	if strings.ContainsRune(bin, os.PathSeparator) {
		_, err := os.Stat(bin)
		return err
	}
	_, err := exec.LookPath(bin)
	return err
}

// runFuzzing executes the whole run: preflight, enumeration, job loop,
// summary output, and history recording.
func runFuzzing(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	if err := preflight(cfg); err != nil {
		return err
	}

	targets, err := target.Load(cfg.TargetListPath)
	if err != nil {
		if errors.Is(err, target.ErrNotReadable) {
			return &exitError{code: exitCodeTargetList, err: err}
		}
		return err
	}

	logger.Info("starting run",
		"targets", len(targets),
		"wordlist", cfg.WordlistPath,
		"fuzzer", cfg.FuzzerBin,
	)

	startedAt := time.Now()
	lay, err := layout.NewLayout(cfg.OutputRoot, startedAt)
	if err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	caps := capability.NewDetector(cfg.FuzzerBin, cfg.PVBin).Detect(ctx)
	logger.Debug("capabilities detected", "streaming", caps.StreamingAvailable)

	r := runner.New(cfg, lay, caps,
		runner.WithLogger(logger),
		runner.WithReporter(runner.NewReporter(cmd.OutOrStdout())),
	)
	summary := r.Run(ctx, targets)

	if err := writeSummaries(cmd, lay, summary, cfg.Verbose); err != nil {
		return err
	}

	// History is best-effort: a broken database must not fail the run.
	if cfg.SaveHistory {
		if err := saveHistory(ctx, cfg, summary); err != nil {
			logger.Warn("failed to record run history", "error", err)
		}
	}

	return nil
}

// writeSummaries prints the text summary to the terminal and drops a
// markdown summary into the run directory.
func writeSummaries(cmd *cobra.Command, lay *layout.Layout, summary *model.RunSummary, verbose bool) error {
	simple := report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(verbose))
	if _, err := simple.Write(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	mdPath := filepath.Join(lay.Root(), summaryFileName)
	f, err := os.OpenFile(mdPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // Inside the run directory we created
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", mdPath, err)
	}
	defer f.Close()

	if _, err := report.NewMarkdownWriter(f).Write(summary); err != nil {
		return fmt.Errorf("failed to write %s: %w", mdPath, err)
	}
	return nil
}

// saveHistory records the finished run in the SQLite history database.
func saveHistory(ctx context.Context, cfg *config.Config, summary *model.RunSummary) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.SaveRun(ctx, summary)
	return err
}
