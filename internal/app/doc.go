// Package app assembles the power-up runtime: it builds the logger, loads
// the HCL configuration, populates and validates the capability registry,
// and runs the asset server and host bridge. Entry points (the CLI, tests)
// stay thin wrappers around it.
package app
