// Package log provides a slog handler that masks credentials before they
// reach the log output.
//
// Fuzzing runs routinely carry authentication material: Authorization or
// Cookie headers passed through to the fuzzer, and target URLs with
// embedded userinfo. The MaskHandler wraps any slog.Handler and redacts
// such attribute values so per-run logs can be shared safely.
package log
