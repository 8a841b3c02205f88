// Package host defines the contract between capability handlers and the
// host runtime. The Context interface is the capability object handed to
// every handler invocation: it exposes read-only accessors for the host's
// entities (board, list, card, member), the scoped key/value store, and
// the UI actions a handler may request (popups, overlays, bars, URL
// signing, attaching a URL to the current card).
//
// Implementations live elsewhere: hostmem provides an in-memory host for
// tests and local development, and bridge provides one backed by a live
// host connection.
package host
