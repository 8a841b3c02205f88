// Package enrich implements the card-from-url and format-url extension
// points: prefilling card creation for recognized URLs and replacing raw
// URLs in rendered text with a friendlier pair.
package enrich

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/vk/powerupgo/internal/descriptor"
	"github.com/vk/powerupgo/internal/host"
	"github.com/vk/powerupgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Options is the shared host payload for both URL extension points.
type Options struct {
	URL string `json:"url"`
}

// CardSettings tunes card-from-url.
type CardSettings struct {
	MatchHost string `pup:"match_host"`
	CardName  string `pup:"card_name"`
}

// FormatSettings tunes format-url.
type FormatSettings struct {
	Icon string `pup:"icon"`
}

// OnCardFromURL returns a card stub for URLs on the recognized host and
// declines for everything else.
func (m *Module) OnCardFromURL(ctx context.Context, h host.Context, settings *CardSettings, opts *Options) (descriptor.Result, error) {
	u, err := url.Parse(opts.URL)
	if err != nil || !strings.Contains(u.Host, settings.MatchHost) {
		return descriptor.Decline(), nil
	}
	return descriptor.Answer(descriptor.CardStub{
		Name:        settings.CardName,
		Description: fmt.Sprintf("Added from %s", opts.URL),
	}), nil
}

// OnFormatURL wraps any http(s) URL in a pointing-hands pair and declines
// for other schemes.
func (m *Module) OnFormatURL(ctx context.Context, h host.Context, settings *FormatSettings, opts *Options) (descriptor.Result, error) {
	if !strings.HasPrefix(opts.URL, "http://") && !strings.HasPrefix(opts.URL, "https://") {
		return descriptor.Decline(), nil
	}
	return descriptor.Answer(descriptor.FormatPair{
		Icon: settings.Icon,
		Text: fmt.Sprintf("👉 %s 👈", opts.URL),
	}), nil
}

// Register registers both URL handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCapability("OnCardFromURL", &registry.RegisteredCapability{
		NewOptions:   func() any { return new(Options) },
		OptionsType:  reflect.TypeOf(Options{}),
		NewSettings:  func() any { return new(CardSettings) },
		SettingsType: reflect.TypeOf(CardSettings{}),
		Fn:           m.OnCardFromURL,
	})
	r.RegisterCapability("OnFormatURL", &registry.RegisteredCapability{
		NewOptions:   func() any { return new(Options) },
		OptionsType:  reflect.TypeOf(Options{}),
		NewSettings:  func() any { return new(FormatSettings) },
		SettingsType: reflect.TypeOf(FormatSettings{}),
		Fn:           m.OnFormatURL,
	})
}
