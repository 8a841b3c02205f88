package host

import "context"

// Board is the host's board entity as visible to this extension.
type Board struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
}

// List is the host's list entity.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Card is the host's card entity, including its current attachments.
type Card struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Member is the active user on whose behalf the extension runs.
type Member struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	FullName      string   `json:"fullName,omitempty"`
	Organizations []string `json:"organizations,omitempty"`
}

// Attachment is a URL attached to a card.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Context is the capability object passed into every handler invocation.
// It is scoped to that single invocation: entity accessors reflect the
// host state at invocation time, and UI actions are dispatched back to the
// surface the invocation originated from.
//
// All blocking operations take a context.Context so the host can cancel
// an invocation that outlives its welcome.
type Context interface {
	// Board returns the board the invocation runs on.
	Board(ctx context.Context) (*Board, error)

	// List returns the list in context, when one exists.
	List(ctx context.Context) (*List, error)

	// Card returns the card in context. It returns ErrNoCard when the
	// invocation has no card (for example a board-level extension point).
	Card(ctx context.Context) (*Card, error)

	// Member returns the active user.
	Member(ctx context.Context) (*Member, error)

	// Get reads a single value from scoped storage. A missing key yields
	// an empty string and no error.
	Get(ctx context.Context, scope Scope, vis Visibility, key string) (string, error)

	// Set writes a single value into scoped storage. The aggregate
	// serialized size of all pairs at one (scope, visibility) pair is
	// capped at MaxScopedChars; a write that would exceed the budget
	// fails with ErrQuotaExceeded and leaves the store untouched.
	Set(ctx context.Context, scope Scope, vis Visibility, key, value string) error

	// GetAll reads every pair stored at one (scope, visibility) pair.
	GetAll(ctx context.Context, scope Scope, vis Visibility) (map[string]string, error)

	// Popup asks the host to open a popup, either an iframe popup (URL
	// plus height) or a menu popup (items, optionally searchable).
	Popup(ctx context.Context, args PopupArgs) error

	// Overlay asks the host to open a full-screen overlay.
	Overlay(ctx context.Context, args OverlayArgs) error

	// BoardBar asks the host to open the bar docked under the board.
	BoardBar(ctx context.Context, args BoardBarArgs) error

	// ClosePopup closes the popup the invocation originated from.
	ClosePopup(ctx context.Context) error

	// SignURL returns a signed variant of rawURL suitable for loading in
	// a sandboxed host surface.
	SignURL(rawURL string) (string, error)

	// Attach attaches a URL to the card in context.
	Attach(ctx context.Context, att Attachment) error
}
