// Package descriptor defines the response shapes a capability handler can
// return to the host: badges, buttons, attachment sections, thumbnails,
// card stubs and URL format pairs.
//
// Every descriptor is constructed fresh for a single invocation and handed
// straight back to the host; nothing in this package is retained between
// invocations. The Result type distinguishes a real answer from the
// "not handled" outcome, which is a normal response variant and not an
// error.
package descriptor
