package bridge

import (
	"context"
	"fmt"

	"github.com/vk/powerupgo/internal/descriptor"
	"github.com/vk/powerupgo/internal/host"
)

// encodeValue converts a handler's descriptor value into its wire form.
// Descriptors without function fields pass through on their JSON tags;
// badges, buttons, and popup items carry callbacks, which are swapped
// for ids the host redeems through `powerup:callback`.
func (b *Bridge) encodeValue(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []descriptor.Badge:
		out := make([]map[string]any, 0, len(val))
		for i, badge := range val {
			m, err := b.encodeBadge(badge)
			if err != nil {
				return nil, fmt.Errorf("badge %d: %w", i, err)
			}
			out = append(out, m)
		}
		return out, nil
	case []descriptor.Button:
		out := make([]map[string]any, 0, len(val))
		for i, button := range val {
			m, err := b.encodeButton(button)
			if err != nil {
				return nil, fmt.Errorf("button %d: %w", i, err)
			}
			out = append(out, m)
		}
		return out, nil
	case []descriptor.Section:
		// Guarantees [] rather than null for the claimed-nothing answer.
		if val == nil {
			return []descriptor.Section{}, nil
		}
		return val, nil
	default:
		return val, nil
	}
}

func (b *Bridge) encodeBadge(badge descriptor.Badge) (map[string]any, error) {
	if err := badge.Validate(); err != nil {
		return nil, err
	}

	m := map[string]any{}
	if badge.Text != "" {
		m["text"] = badge.Text
	}
	if badge.Icon != "" {
		m["icon"] = badge.Icon
	}
	if badge.Color != "" {
		m["color"] = string(badge.Color)
	}

	switch {
	case badge.Dynamic != nil:
		dynamic := badge.Dynamic
		m["refresh"] = int(badge.Refresh.Seconds())
		m["callback"] = b.registerCallback(func(ctx context.Context, h host.Context) (any, error) {
			next, err := dynamic(ctx, h)
			if err != nil {
				return nil, err
			}
			return b.encodeBadge(next)
		})
	case badge.Callback != nil:
		callback := badge.Callback
		m["callback"] = b.registerCallback(func(ctx context.Context, h host.Context) (any, error) {
			return nil, callback(ctx, h)
		})
	case badge.URL != "":
		m["url"] = badge.URL
		if badge.Target != "" {
			m["target"] = badge.Target
		}
	}
	return m, nil
}

func (b *Bridge) encodeButton(button descriptor.Button) (map[string]any, error) {
	if err := button.Validate(); err != nil {
		return nil, err
	}

	m := map[string]any{"text": button.Text}
	if button.Icon != "" {
		m["icon"] = button.Icon
	}
	if button.Callback != nil {
		callback := button.Callback
		m["callback"] = b.registerCallback(func(ctx context.Context, h host.Context) (any, error) {
			return nil, callback(ctx, h)
		})
	} else {
		m["url"] = button.URL
		if button.Target != "" {
			m["target"] = button.Target
		}
	}
	return m, nil
}

func (b *Bridge) encodePopup(args host.PopupArgs) map[string]any {
	m := map[string]any{"title": args.Title}
	if args.URL != "" {
		m["url"] = args.URL
		if args.Height > 0 {
			m["height"] = args.Height
		}
		return m
	}

	items := make([]map[string]any, 0, len(args.Items))
	for _, item := range args.Items {
		entry := map[string]any{"text": item.Text}
		if item.Callback != nil {
			callback := item.Callback
			entry["callback"] = b.registerCallback(func(ctx context.Context, h host.Context) (any, error) {
				return nil, callback(ctx, h)
			})
		} else if item.URL != "" {
			entry["url"] = item.URL
		}
		items = append(items, entry)
	}
	m["items"] = items

	if args.Search != nil {
		m["search"] = map[string]any{
			"count":       args.Search.Count,
			"placeholder": args.Search.Placeholder,
			"empty":       args.Search.Empty,
			"searching":   args.Search.Searching,
		}
	}
	return m
}
