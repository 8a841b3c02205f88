package host

import "context"

// PopupArgs parameterizes a popup request. Exactly one style applies: an
// iframe popup sets URL (and usually Height), a menu popup sets Items and
// may enable search.
type PopupArgs struct {
	Title  string
	URL    string
	Height int
	Items  []PopupItem
	Search *PopupSearch
}

// PopupItem is a single entry in a menu popup. Selecting it either
// navigates to URL or runs Callback against a fresh host context.
type PopupItem struct {
	Text     string
	URL      string
	Callback func(ctx context.Context, h Context) error
}

// PopupSearch enables the host's search box on a menu popup.
type PopupSearch struct {
	Count       int
	Placeholder string
	Empty       string
	Searching   string
}

// OverlayArgs parameterizes a full-screen overlay request.
type OverlayArgs struct {
	URL  string
	Args map[string]string
}

// BoardBarArgs parameterizes a board-bar request.
type BoardBarArgs struct {
	URL    string
	Height int
}
