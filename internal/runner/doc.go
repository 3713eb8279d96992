// Package runner drives the sequential job loop: one supervised fuzzer
// process per target, never two at once.
//
// Each job walks the states Pending -> Launching -> Running -> Completed.
// The terminal state is always reached; the runner blocks on the current
// process before picking up the next target, and a fixed cool-down
// separates consecutive jobs so hosts are not hit back-to-back.
//
// Two supervision strategies exist, chosen once per run:
//   - exact streaming: pv pipes the counted wordlist into the fuzzer's
//     stdin and renders a byte-accurate progress bar itself
//   - heuristic: the fuzzer writes JSON results to a side file which is
//     polled at a fixed interval to estimate completion
//
// A job's failure (non-zero exit) is recorded and isolated; one bad target
// can never abort the batch.
package runner
