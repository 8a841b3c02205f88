package hostmem

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"slices"
	"sync"

	"github.com/vk/powerupgo/internal/host"
)

// ActionKind names a recorded UI action.
type ActionKind string

const (
	ActionPopup      ActionKind = "popup"
	ActionOverlay    ActionKind = "overlay"
	ActionBoardBar   ActionKind = "board-bar"
	ActionClosePopup ActionKind = "close-popup"
	ActionAttach     ActionKind = "attach"
)

// Action is one UI action a handler requested through the host context.
// Only the field matching Kind is populated.
type Action struct {
	Kind       ActionKind
	Popup      *host.PopupArgs
	Overlay    *host.OverlayArgs
	BoardBar   *host.BoardBarArgs
	Attachment *host.Attachment
}

// Host is an in-memory host.Context. The zero value is not usable; call
// New and attach entities with the Set* methods.
type Host struct {
	mu      sync.RWMutex
	board   *host.Board
	list    *host.List
	card    *host.Card
	member  *host.Member
	store   map[string]map[string]string
	actions []Action
	signKey []byte
}

// New creates an empty in-memory host.
func New() *Host {
	return &Host{
		store:   make(map[string]map[string]string),
		signKey: []byte("hostmem-signing-key"),
	}
}

// SetBoard attaches the board entity.
func (h *Host) SetBoard(b *host.Board) { h.mu.Lock(); h.board = b; h.mu.Unlock() }

// SetList attaches the list entity.
func (h *Host) SetList(l *host.List) { h.mu.Lock(); h.list = l; h.mu.Unlock() }

// SetCard attaches the card entity, putting a card in context.
func (h *Host) SetCard(c *host.Card) { h.mu.Lock(); h.card = c; h.mu.Unlock() }

// SetMember attaches the active member.
func (h *Host) SetMember(m *host.Member) { h.mu.Lock(); h.member = m; h.mu.Unlock() }

// Actions returns a copy of every UI action recorded so far, in order.
func (h *Host) Actions() []Action {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.actions)
}

// Board implements host.Context.
func (h *Host) Board(ctx context.Context) (*host.Board, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.board == nil {
		return nil, fmt.Errorf("no board attached to in-memory host")
	}
	return h.board, nil
}

// List implements host.Context.
func (h *Host) List(ctx context.Context) (*host.List, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.list == nil {
		return nil, fmt.Errorf("no list attached to in-memory host")
	}
	return h.list, nil
}

// Card implements host.Context.
func (h *Host) Card(ctx context.Context) (*host.Card, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.card == nil {
		return nil, host.ErrNoCard
	}
	return h.card, nil
}

// Member implements host.Context.
func (h *Host) Member(ctx context.Context) (*host.Member, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.member == nil {
		return nil, fmt.Errorf("no member attached to in-memory host")
	}
	return h.member, nil
}

// Popup implements host.Context by recording the request.
func (h *Host) Popup(ctx context.Context, args host.PopupArgs) error {
	h.record(Action{Kind: ActionPopup, Popup: &args})
	return nil
}

// Overlay implements host.Context by recording the request.
func (h *Host) Overlay(ctx context.Context, args host.OverlayArgs) error {
	h.record(Action{Kind: ActionOverlay, Overlay: &args})
	return nil
}

// BoardBar implements host.Context by recording the request.
func (h *Host) BoardBar(ctx context.Context, args host.BoardBarArgs) error {
	h.record(Action{Kind: ActionBoardBar, BoardBar: &args})
	return nil
}

// ClosePopup implements host.Context by recording the request.
func (h *Host) ClosePopup(ctx context.Context) error {
	h.record(Action{Kind: ActionClosePopup})
	return nil
}

// Attach implements host.Context. The attachment is recorded and also
// appended to the card in context, mirroring what a live host would do.
func (h *Host) Attach(ctx context.Context, att host.Attachment) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.card == nil {
		return host.ErrNoCard
	}
	h.card.Attachments = append(h.card.Attachments, att)
	h.actions = append(h.actions, Action{Kind: ActionAttach, Attachment: &att})
	return nil
}

// SignURL implements host.Context with an HMAC over the raw URL.
func (h *Host) SignURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("cannot sign malformed URL: %w", err)
	}
	mac := hmac.New(sha256.New, h.signKey)
	mac.Write([]byte(rawURL))
	q := u.Query()
	q.Set("signature", hex.EncodeToString(mac.Sum(nil)))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (h *Host) record(a Action) {
	h.mu.Lock()
	h.actions = append(h.actions, a)
	h.mu.Unlock()
}
