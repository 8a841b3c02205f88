// Package static serves the extension's browser assets: the connector
// page, popup views, and icons the host iframes load. Responses are
// compressed when the client negotiates for it and cross-origin access
// is limited to the single configured host origin.
package static
