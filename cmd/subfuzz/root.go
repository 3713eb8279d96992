package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exitError carries a process exit code alongside the underlying error.
// Preflight failures use distinct codes so scripts can tell an unreadable
// target list from a missing fuzzer binary.
type exitError struct {
	code int
	err  error
}

// Error returns the underlying error message.
func (e *exitError) Error() string { return e.err.Error() }

// Unwrap exposes the wrapped error for errors.Is checks.
func (e *exitError) Unwrap() error { return e.err }

// Exit codes for preflight failures.
const (
	exitCodeTargetList = 2
	exitCodeWordlist   = 3
	exitCodeFuzzer     = 4
)

// NewRootCmd creates the root command for subfuzz.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subfuzz",
		Short: "Sequential web fuzzing across a list of subdomains",
		Long: `Subfuzz orchestrates an external web fuzzer across many subdomains.

It reads a target list, fuzzes each target one at a time with a shared
wordlist, writes one log file per target into a timestamped run directory,
and reports progress while each job runs. When the pv utility is
available, the wordlist is streamed through it for an exact progress bar;
otherwise progress is estimated from the fuzzer's partial results file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and maps errors to exit codes.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var coded *exitError
		if errors.As(err, &coded) {
			os.Exit(coded.code)
		}
		os.Exit(1)
	}
}
