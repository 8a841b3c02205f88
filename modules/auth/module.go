// Package auth implements the authorization-status and
// show-authorization extension points.
package auth

import (
	"context"
	"reflect"

	"github.com/vk/powerupgo/internal/descriptor"
	"github.com/vk/powerupgo/internal/host"
	"github.com/vk/powerupgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Options is empty; both authorization hooks carry no payload.
type Options struct{}

// StatusSettings tunes authorization-status.
type StatusSettings struct {
	AssumeAuthorized bool   `pup:"assume_authorized"`
	TokenKey         string `pup:"token_key"`
}

// ShowSettings tunes the authorize popup.
type ShowSettings struct {
	AuthURL string `pup:"auth_url"`
	Height  int    `pup:"height"`
}

// OnAuthorizationStatus resolves exactly once with the authorized flag.
// With assume_authorized unset, authorization is derived from the
// presence of a token in the member's private storage.
func (m *Module) OnAuthorizationStatus(ctx context.Context, h host.Context, settings *StatusSettings, _ *Options) (descriptor.Result, error) {
	if settings.AssumeAuthorized {
		return descriptor.Answer(descriptor.AuthStatus{Authorized: true}), nil
	}
	token, err := h.Get(ctx, host.ScopeMember, host.VisibilityPrivate, settings.TokenKey)
	if err != nil {
		return descriptor.Result{}, err
	}
	return descriptor.Answer(descriptor.AuthStatus{Authorized: token != ""}), nil
}

// OnShowAuthorization asks the host to open the authorize popup.
func (m *Module) OnShowAuthorization(ctx context.Context, h host.Context, settings *ShowSettings, _ *Options) (descriptor.Result, error) {
	if err := h.Popup(ctx, host.PopupArgs{
		Title:  "Authorize",
		URL:    settings.AuthURL,
		Height: settings.Height,
	}); err != nil {
		return descriptor.Result{}, err
	}
	return descriptor.Answer(nil), nil
}

// Register registers both authorization handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCapability("OnAuthorizationStatus", &registry.RegisteredCapability{
		NewOptions:   func() any { return new(Options) },
		OptionsType:  reflect.TypeOf(Options{}),
		NewSettings:  func() any { return new(StatusSettings) },
		SettingsType: reflect.TypeOf(StatusSettings{}),
		Fn:           m.OnAuthorizationStatus,
	})
	r.RegisterCapability("OnShowAuthorization", &registry.RegisteredCapability{
		NewOptions:   func() any { return new(Options) },
		OptionsType:  reflect.TypeOf(Options{}),
		NewSettings:  func() any { return new(ShowSettings) },
		SettingsType: reflect.TypeOf(ShowSettings{}),
		Fn:           m.OnShowAuthorization,
	})
}
