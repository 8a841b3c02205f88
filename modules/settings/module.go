// Package settings implements the show-settings extension point.
package settings

import (
	"context"
	"reflect"

	"github.com/vk/powerupgo/internal/descriptor"
	"github.com/vk/powerupgo/internal/host"
	"github.com/vk/powerupgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Options is empty; show-settings carries no payload.
type Options struct{}

// Settings tunes the settings popup.
type Settings struct {
	SettingsURL string `pup:"settings_url"`
	Height      int    `pup:"height"`
}

// OnShowSettings asks the host to open the settings popup.
func (m *Module) OnShowSettings(ctx context.Context, h host.Context, settings *Settings, _ *Options) (descriptor.Result, error) {
	if err := h.Popup(ctx, host.PopupArgs{
		Title:  "Power-Up settings",
		URL:    settings.SettingsURL,
		Height: settings.Height,
	}); err != nil {
		return descriptor.Result{}, err
	}
	return descriptor.Answer(nil), nil
}

// Register registers the settings handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCapability("OnShowSettings", &registry.RegisteredCapability{
		NewOptions:   func() any { return new(Options) },
		OptionsType:  reflect.TypeOf(Options{}),
		NewSettings:  func() any { return new(Settings) },
		SettingsType: reflect.TypeOf(Settings{}),
		Fn:           m.OnShowSettings,
	})
}
