// Package registry provides the central glue between the host's
// extension points and the Go handlers that answer them.
//
// The Registry stores mappings between the handler names used in
// capability manifests (e.g. "OnCardBadges") and the compiled Go
// functions that implement them, alongside the parsed manifest
// definitions themselves. During startup the registry is populated from
// the fixed module list, then validated so that manifests and Go code are
// perfectly in sync, and never mutated afterwards.
//
// Dispatch is the host-facing entry point: one call per extension-point
// invocation, carrying a host context and the raw options payload, and
// returning either an answered descriptor, a declined result, or an
// invocation error.
package registry
