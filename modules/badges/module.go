// Package badges implements the card-badges and card-detail-badges
// extension points with one badge per variant the host supports.
package badges

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/vk/powerupgo/internal/ctxlog"
	"github.com/vk/powerupgo/internal/descriptor"
	"github.com/vk/powerupgo/internal/host"
	"github.com/vk/powerupgo/internal/random"
	"github.com/vk/powerupgo/internal/registry"
)

// Module implements the registry.Module interface for this package. Rand
// may be set before registration to make badge content deterministic;
// when nil, a time-seeded source is used.
type Module struct {
	Rand random.Source
}

// Options is empty because badge extension points carry no payload
// beyond the card in context.
type Options struct{}

// Settings are the manifest-tunable knobs for the badge generator.
type Settings struct {
	RefreshSeconds int    `pup:"refresh_seconds"`
	DetailsURL     string `pup:"details_url"`
	ParksURL       string `pup:"parks_url"`
	Icon           string `pup:"icon"`
}

// OnCardBadges is the handler for the 'card-badges' extension point.
func (m *Module) OnCardBadges(ctx context.Context, h host.Context, settings *Settings, _ *Options) (descriptor.Result, error) {
	badges, err := m.generate(ctx, h, settings)
	if err != nil {
		return descriptor.Result{}, err
	}
	return descriptor.Answer(badges), nil
}

// OnCardDetailBadges is the handler for the 'card-detail-badges'
// extension point. It shares the generator with the card front.
func (m *Module) OnCardDetailBadges(ctx context.Context, h host.Context, settings *Settings, _ *Options) (descriptor.Result, error) {
	badges, err := m.generate(ctx, h, settings)
	if err != nil {
		return descriptor.Result{}, err
	}
	return descriptor.Answer(badges), nil
}

// generate builds the fixed four-badge sequence: one dynamic badge with
// pseudo-random text and color, one static badge, one callback badge
// opening a popup, and one link badge.
func (m *Module) generate(ctx context.Context, h host.Context, settings *Settings) ([]descriptor.Badge, error) {
	logger := ctxlog.FromContext(ctx)

	// The card name is fetched read-only; badge content does not use it.
	card, err := h.Card(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read card for badges: %w", err)
	}
	logger.Debug("Generating badges.", "card", card.Name)

	refresh := time.Duration(settings.RefreshSeconds) * time.Second
	if refresh < descriptor.MinRefresh {
		refresh = descriptor.MinRefresh
	}

	src := m.Rand
	detailsURL := settings.DetailsURL
	badges := []descriptor.Badge{
		{
			Refresh: refresh,
			Dynamic: func(ctx context.Context, _ host.Context) (descriptor.Badge, error) {
				return descriptor.Badge{
					Text:  fmt.Sprintf("Detail %d", src.Intn(100)),
					Color: descriptor.Colors[src.Intn(len(descriptor.Colors))],
				}, nil
			},
		},
		{
			Text:  "Static badge",
			Icon:  settings.Icon,
			Color: descriptor.ColorGreen,
		},
		{
			Text: "Popup badge",
			Icon: settings.Icon,
			Callback: func(ctx context.Context, hc host.Context) error {
				return hc.Popup(ctx, host.PopupArgs{
					Title:  "Badge details",
					URL:    detailsURL,
					Height: 300,
				})
			},
		},
		{
			Text:   "Park Service",
			Icon:   settings.Icon,
			URL:    settings.ParksURL,
			Target: "National Park Service",
		},
	}
	return badges, nil
}

// Register registers both badge handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	if m.Rand == nil {
		m.Rand = random.New()
	}
	for name, fn := range map[string]any{
		"OnCardBadges":       m.OnCardBadges,
		"OnCardDetailBadges": m.OnCardDetailBadges,
	} {
		r.RegisterCapability(name, &registry.RegisteredCapability{
			NewOptions:   func() any { return new(Options) },
			OptionsType:  reflect.TypeOf(Options{}),
			NewSettings:  func() any { return new(Settings) },
			SettingsType: reflect.TypeOf(Settings{}),
			Fn:           fn,
		})
	}
}
