package bridge

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/vk/powerupgo/internal/host"
)

// invocationContext is the host.Context handed to handlers dispatched
// over the bridge. Reads are served from the snapshot the host sent
// with the event; writes and UI requests update the snapshot and are
// forwarded to the host as `powerup:action` events.
type invocationContext struct {
	b *Bridge

	mu   sync.Mutex
	snap snapshot
}

func newInvocationContext(b *Bridge, snap snapshot) *invocationContext {
	if snap.Storage == nil {
		snap.Storage = make(map[string]map[string]string)
	}
	return &invocationContext{b: b, snap: snap}
}

func (c *invocationContext) action(kind string, fields map[string]any) {
	payload := map[string]any{"type": kind}
	for k, v := range fields {
		payload[k] = v
	}
	c.b.emit("powerup:action", payload)
}

// Board implements host.Context.
func (c *invocationContext) Board(ctx context.Context) (*host.Board, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap.Board == nil {
		return nil, fmt.Errorf("no board in invocation context")
	}
	return c.snap.Board, nil
}

// List implements host.Context.
func (c *invocationContext) List(ctx context.Context) (*host.List, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap.List == nil {
		return nil, fmt.Errorf("no list in invocation context")
	}
	return c.snap.List, nil
}

// Card implements host.Context.
func (c *invocationContext) Card(ctx context.Context) (*host.Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap.Card == nil {
		return nil, host.ErrNoCard
	}
	return c.snap.Card, nil
}

// Member implements host.Context.
func (c *invocationContext) Member(ctx context.Context) (*host.Member, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap.Member == nil {
		return nil, fmt.Errorf("no member in invocation context")
	}
	return c.snap.Member, nil
}

// Get implements host.Context against the invocation snapshot.
func (c *invocationContext) Get(ctx context.Context, scope host.Scope, vis host.Visibility, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkScopeLocked(scope, vis); err != nil {
		return "", err
	}
	return c.snap.Storage[bucketKey(scope, vis)][key], nil
}

// GetAll implements host.Context against the invocation snapshot.
func (c *invocationContext) GetAll(ctx context.Context, scope host.Scope, vis host.Visibility) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkScopeLocked(scope, vis); err != nil {
		return nil, err
	}
	bucket := c.snap.Storage[bucketKey(scope, vis)]
	out := make(map[string]string, len(bucket))
	for k, v := range bucket {
		out[k] = v
	}
	return out, nil
}

// Set implements host.Context. The quota is enforced locally against the
// snapshot before the write is forwarded, so an over-budget write fails
// fast and never reaches the host.
func (c *invocationContext) Set(ctx context.Context, scope host.Scope, vis host.Visibility, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkScopeLocked(scope, vis); err != nil {
		return err
	}

	bucket := c.snap.Storage[bucketKey(scope, vis)]
	next := make(map[string]string, len(bucket)+1)
	for k, v := range bucket {
		next[k] = v
	}
	next[key] = value

	size, err := host.EncodedSize(next)
	if err != nil {
		return err
	}
	if size > host.MaxScopedChars {
		return fmt.Errorf("cannot store %q at %s/%s (%d > %d chars): %w",
			key, scope, vis, size, host.MaxScopedChars, host.ErrQuotaExceeded)
	}

	c.snap.Storage[bucketKey(scope, vis)] = next
	c.action("set", map[string]any{
		"scope":      string(scope),
		"visibility": string(vis),
		"key":        key,
		"value":      value,
	})
	return nil
}

func (c *invocationContext) checkScopeLocked(scope host.Scope, vis host.Visibility) error {
	return host.CheckScope(scope, vis, c.snap.Board, c.snap.Card, c.snap.Member)
}

// Popup implements host.Context.
func (c *invocationContext) Popup(ctx context.Context, args host.PopupArgs) error {
	c.action("popup", c.b.encodePopup(args))
	return nil
}

// Overlay implements host.Context.
func (c *invocationContext) Overlay(ctx context.Context, args host.OverlayArgs) error {
	fields := map[string]any{"url": args.URL}
	if len(args.Args) > 0 {
		fields["args"] = args.Args
	}
	c.action("overlay", fields)
	return nil
}

// BoardBar implements host.Context.
func (c *invocationContext) BoardBar(ctx context.Context, args host.BoardBarArgs) error {
	fields := map[string]any{"url": args.URL}
	if args.Height > 0 {
		fields["height"] = args.Height
	}
	c.action("board-bar", fields)
	return nil
}

// ClosePopup implements host.Context.
func (c *invocationContext) ClosePopup(ctx context.Context) error {
	c.action("close-popup", nil)
	return nil
}

// SignURL implements host.Context using the secret the host attached to
// the invocation snapshot.
func (c *invocationContext) SignURL(rawURL string) (string, error) {
	c.mu.Lock()
	secret := c.snap.SignSecret
	c.mu.Unlock()
	if secret == "" {
		return "", fmt.Errorf("invocation carries no signing secret")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("cannot sign malformed URL: %w", err)
	}
	q := u.Query()
	q.Set("token", secret)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Attach implements host.Context. The attachment lands on the snapshot
// card immediately so later reads within the invocation see it.
func (c *invocationContext) Attach(ctx context.Context, att host.Attachment) error {
	c.mu.Lock()
	if c.snap.Card == nil {
		c.mu.Unlock()
		return host.ErrNoCard
	}
	c.snap.Card.Attachments = append(c.snap.Card.Attachments, att)
	c.mu.Unlock()

	c.action("attach", map[string]any{
		"name": att.Name,
		"url":  att.URL,
	})
	return nil
}

func bucketKey(scope host.Scope, vis host.Visibility) string {
	return string(scope) + "/" + string(vis)
}
