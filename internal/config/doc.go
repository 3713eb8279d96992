// Package config holds the run configuration for subfuzz.
//
// The Config struct is built once at startup from CLI flags, validated, and
// then passed through the application by dependency injection. Nothing
// mutates it after construction.
//
// An optional YAML file (.subfuzz) provides fuzzer-option defaults and
// per-target overrides, merged the same way at job-construction time.
package config
