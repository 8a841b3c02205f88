package bridge

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/powerupgo/internal/config"
	"github.com/vk/powerupgo/internal/descriptor"
	"github.com/vk/powerupgo/internal/host"
	"github.com/vk/powerupgo/internal/registry"
)

type formatOptions struct {
	URL string `json:"url"`
}

// newInvokeBridge wires a bridge over a registry with one live
// capability on the format-url hook.
func newInvokeBridge(t *testing.T) (*Bridge, *eventRecorder) {
	t.Helper()

	r := registry.New()
	r.RegisterCapability("OnFormat", &registry.RegisteredCapability{
		NewOptions:  func() any { return new(formatOptions) },
		OptionsType: reflect.TypeOf(formatOptions{}),
		Fn: func(ctx context.Context, h host.Context, settings *struct{}, opts *formatOptions) (descriptor.Result, error) {
			if opts.URL == "" {
				return descriptor.Decline(), nil
			}
			return descriptor.Answer(descriptor.FormatPair{Text: "👉 " + opts.URL + " 👈"}), nil
		},
	})
	r.PopulateDefinitionsFromModel(&config.Model{
		Capabilities: map[string]*config.CapabilityDefinition{
			"format-url": {
				Hook:      "format-url",
				Lifecycle: &config.Lifecycle{OnInvoke: "OnFormat"},
			},
		},
	})
	r.SettingsRegistry["format-url"] = &struct{}{}

	b := New(r, Config{Name: "test", URL: "ws://localhost/powerup"})
	rec := &eventRecorder{}
	b.emit = rec.record
	return b, rec
}

func lastResult(t *testing.T, rec *eventRecorder) resultEvent {
	t.Helper()
	events := rec.all()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	require.Equal(t, "powerup:result", last.Event)
	return last.Data.(resultEvent)
}

func TestHandleInvoke_AnsweredResult(t *testing.T) {
	t.Parallel()
	b, rec := newInvokeBridge(t)

	b.handleInvoke(context.Background(), []any{map[string]any{
		"id":      "inv-1",
		"hook":    "format-url",
		"options": map[string]any{"url": "https://www.nps.gov"},
	}})

	result := lastResult(t, rec)
	assert.Equal(t, "inv-1", result.ID)
	assert.False(t, result.Declined)
	assert.Empty(t, result.Error)
	pair := result.Value.(descriptor.FormatPair)
	assert.Equal(t, "👉 https://www.nps.gov 👈", pair.Text)
}

func TestHandleInvoke_DeclinedResult(t *testing.T) {
	t.Parallel()
	b, rec := newInvokeBridge(t)

	b.handleInvoke(context.Background(), []any{map[string]any{
		"id":   "inv-2",
		"hook": "format-url",
	}})

	result := lastResult(t, rec)
	assert.Equal(t, "inv-2", result.ID)
	assert.True(t, result.Declined)
	assert.Nil(t, result.Value)
}

func TestHandleInvoke_UnknownHookReportsError(t *testing.T) {
	t.Parallel()
	b, rec := newInvokeBridge(t)

	b.handleInvoke(context.Background(), []any{map[string]any{
		"id":   "inv-3",
		"hook": "card-sparkles",
	}})

	result := lastResult(t, rec)
	assert.Contains(t, result.Error, "unknown extension point")
}

func TestHandleInvoke_MalformedEventIsDropped(t *testing.T) {
	t.Parallel()
	b, rec := newInvokeBridge(t)

	b.handleInvoke(context.Background(), nil)
	assert.Empty(t, rec.all(), "an event with no payload must not produce a result")
}

func TestHandleCallback_UnknownIDReportsError(t *testing.T) {
	t.Parallel()
	b, rec := newInvokeBridge(t)

	b.handleCallback(context.Background(), []any{map[string]any{
		"id":       "inv-4",
		"callback": "cb-999",
	}})

	result := lastResult(t, rec)
	assert.Contains(t, result.Error, "unknown callback 'cb-999'")
}

func TestHandleCallback_RunsRegisteredCallback(t *testing.T) {
	t.Parallel()
	b, rec := newInvokeBridge(t)

	ran := false
	id := b.registerCallback(func(ctx context.Context, h host.Context) (any, error) {
		ran = true
		return map[string]any{"text": "tick"}, nil
	})

	b.handleCallback(context.Background(), []any{map[string]any{
		"id":       "inv-5",
		"callback": id,
	}})

	assert.True(t, ran)
	result := lastResult(t, rec)
	assert.Empty(t, result.Error)
	assert.Equal(t, map[string]any{"text": "tick"}, result.Value)
}
