// Package bridge maintains the socket.io session with the host runtime.
// The host pushes `powerup:invoke` events carrying an extension point
// name, handler options, and a snapshot of the entities and scoped
// storage in context; the bridge dispatches each one through the
// registry in its own goroutine and answers with a `powerup:result`
// event. UI requests and storage writes made by handlers flow back as
// `powerup:action` events, and descriptor callbacks are exported as
// opaque ids the host redeems through `powerup:callback`.
package bridge
