// Package config defines the format-agnostic declaration model for command
// shapes and invocations, along with the Loader interface for reading them
// from various sources.
//
// The `config.Model` is the single source of truth for the `plan` resolver.
// Concrete loader implementations, such as for HCL, are provided in separate
// packages.
package config
