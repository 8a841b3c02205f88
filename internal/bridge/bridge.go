package bridge

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vk/powerupgo/internal/ctxlog"
	"github.com/vk/powerupgo/internal/host"
	"github.com/vk/powerupgo/internal/registry"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Config parameterizes the host session.
type Config struct {
	// Name identifies this extension to the host on registration.
	Name string

	// URL is the host runtime endpoint, e.g. "wss://host.example/powerup".
	URL string

	// Namespace is the socket.io namespace, "/" when empty.
	Namespace string

	// Timeout bounds a single invocation, 10s when zero.
	Timeout time.Duration

	InsecureSkipVerify bool
}

// Bridge is a connected extension session. Create one with New and run
// it with Run; it serves invocations until the context is cancelled or
// the connection fails.
type Bridge struct {
	reg *registry.Registry
	cfg Config

	io   *socket.Socket
	emit func(event string, data any)

	callbacks    sync.Map
	nextCallback atomic.Int64
}

// snapshot is the host-side state accompanying an invocation. Storage is
// keyed "scope/visibility"; SignSecret, when present, signs URLs for
// sandboxed surfaces.
type snapshot struct {
	Board      *host.Board                  `json:"board,omitempty"`
	List       *host.List                   `json:"list,omitempty"`
	Card       *host.Card                   `json:"card,omitempty"`
	Member     *host.Member                 `json:"member,omitempty"`
	Storage    map[string]map[string]string `json:"storage,omitempty"`
	SignSecret string                       `json:"signSecret,omitempty"`
}

type invokeEvent struct {
	ID      string          `json:"id"`
	Hook    string          `json:"hook"`
	Options json.RawMessage `json:"options,omitempty"`
	Context snapshot        `json:"context"`
}

type callbackEvent struct {
	ID       string   `json:"id"`
	Callback string   `json:"callback"`
	Context  snapshot `json:"context"`
}

type resultEvent struct {
	ID       string `json:"id"`
	Value    any    `json:"value,omitempty"`
	Declined bool   `json:"declined,omitempty"`
	Error    string `json:"error,omitempty"`
}

// New creates a bridge over the given registry. It does not connect.
func New(reg *registry.Registry, cfg Config) *Bridge {
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	b := &Bridge{reg: reg, cfg: cfg}
	b.emit = func(event string, data any) {
		if b.io != nil {
			b.io.Emit(event, data)
		}
	}
	return b
}

// Run connects to the host runtime and serves invocations until ctx is
// cancelled or the connection fails.
func (b *Bridge) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("component", "bridge", "url", b.cfg.URL)
	logger.Debug("Bridge starting")
	defer logger.Debug("Bridge stopped")

	parsedURL, err := url.Parse(b.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse host URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if b.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(b.cfg.Namespace, opts)
	b.io = io
	defer func() {
		logger.Debug("Disconnecting from host")
		io.Disconnect()
	}()

	errCh := make(chan error, 1)

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Connected to host", "namespace", b.cfg.Namespace, "sid", io.Id())
		b.emit("powerup:register", map[string]any{
			"name":  b.cfg.Name,
			"hooks": registry.ExtensionPoints,
		})
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				select {
				case errCh <- err:
				default:
				}
				return
			}
		}
		select {
		case errCh <- fmt.Errorf("connection to host failed"):
		default:
		}
	})

	io.On(types.EventName("powerup:invoke"), func(data ...any) {
		go b.handleInvoke(ctx, data)
	})

	io.On(types.EventName("powerup:callback"), func(data ...any) {
		go b.handleCallback(ctx, data)
	})

	io.Connect()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("host session failed: %w", err)
	}
}

func (b *Bridge) handleInvoke(ctx context.Context, data []any) {
	logger := ctxlog.FromContext(ctx).With("component", "bridge")

	var ev invokeEvent
	if err := decodeEvent(data, &ev); err != nil {
		logger.Warn("Dropping malformed invoke event", "error", err)
		return
	}
	logger = logger.With("id", ev.ID, "hook", ev.Hook)
	logger.Debug("Invocation received")

	opCtx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	hc := newInvocationContext(b, ev.Context)
	result, err := b.reg.Dispatch(opCtx, hc, ev.Hook, ev.Options)

	reply := resultEvent{ID: ev.ID}
	switch {
	case err != nil:
		logger.Warn("Invocation failed", "error", err)
		reply.Error = err.Error()
	case result.Declined():
		reply.Declined = true
	default:
		value, encErr := b.encodeValue(result.Value())
		if encErr != nil {
			logger.Warn("Invocation produced an unencodable descriptor", "error", encErr)
			reply.Error = encErr.Error()
		} else {
			reply.Value = value
		}
	}
	b.emit("powerup:result", reply)
}

func (b *Bridge) handleCallback(ctx context.Context, data []any) {
	logger := ctxlog.FromContext(ctx).With("component", "bridge")

	var ev callbackEvent
	if err := decodeEvent(data, &ev); err != nil {
		logger.Warn("Dropping malformed callback event", "error", err)
		return
	}
	logger = logger.With("id", ev.ID, "callback", ev.Callback)

	reply := resultEvent{ID: ev.ID}
	fn, ok := b.callbacks.Load(ev.Callback)
	if !ok {
		logger.Warn("Host redeemed an unknown callback id")
		reply.Error = fmt.Sprintf("unknown callback '%s'", ev.Callback)
		b.emit("powerup:result", reply)
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	hc := newInvocationContext(b, ev.Context)
	value, err := fn.(callbackFunc)(opCtx, hc)
	if err != nil {
		logger.Warn("Callback failed", "error", err)
		reply.Error = err.Error()
	} else {
		reply.Value = value
	}
	b.emit("powerup:result", reply)
}

// callbackFunc is a host-redeemable callback. The returned value, when
// not nil, is already wire-encoded.
type callbackFunc func(ctx context.Context, h host.Context) (any, error)

func (b *Bridge) registerCallback(fn callbackFunc) string {
	id := fmt.Sprintf("cb-%d", b.nextCallback.Add(1))
	b.callbacks.Store(id, fn)
	return id
}

// decodeEvent round-trips the first socket.io payload argument through
// JSON into target. The client library delivers payloads as generic
// maps, so this is the cheapest path to typed events.
func decodeEvent(data []any, target any) error {
	if len(data) == 0 {
		return fmt.Errorf("event carried no payload")
	}
	raw, err := json.Marshal(data[0])
	if err != nil {
		return fmt.Errorf("failed to re-encode event payload: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode event payload: %w", err)
	}
	return nil
}
