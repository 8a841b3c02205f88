// Package hostmem provides a thread-safe, in-memory implementation of the
// host.Context interface. It is suitable for tests and local development,
// where no live host runtime is attached: entities are fixtures, scoped
// storage lives in process memory with the same byte budget a real host
// enforces, and every requested UI action is recorded for inspection.
package hostmem
