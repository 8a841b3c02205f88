package default_modules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/powerupgo/internal/app"
	"github.com/vk/powerupgo/internal/descriptor"
	"github.com/vk/powerupgo/internal/host"
	"github.com/vk/powerupgo/internal/hostmem"
	"github.com/vk/powerupgo/internal/registry"
)

// setupDefaultApp boots the application over the repository's real
// manifests and instance file, with the compiled-in module set.
func setupDefaultApp(t *testing.T) *app.App {
	t.Helper()
	defaultApp, _ := app.SetupAppTest(t, &app.AppConfig{
		PowerUpPath: "../../../powerup.hcl",
		ModulesPath: "../../../modules",
		LogFormat:   "text",
	})
	return defaultApp
}

func defaultHost() *hostmem.Host {
	h := hostmem.New()
	h.SetBoard(&host.Board{ID: "b1", Name: "Parks", Organization: "org1"})
	h.SetCard(&host.Card{ID: "c1", Name: "Trip ideas"})
	h.SetMember(&host.Member{ID: "m1", Username: "ranger", Organizations: []string{"org1"}})
	return h
}

func TestDefaultModules_EveryExtensionPointIsBound(t *testing.T) {
	t.Parallel()

	defaultApp := setupDefaultApp(t)
	reg := defaultApp.Registry()

	for _, hook := range registry.ExtensionPoints {
		assert.Contains(t, reg.DefinitionRegistry, hook, "hook %q should have a manifest", hook)
		assert.Contains(t, reg.SettingsRegistry, hook, "hook %q should have decoded settings", hook)
	}
}

func TestDefaultModules_FormatURLDispatch(t *testing.T) {
	t.Parallel()

	defaultApp := setupDefaultApp(t)

	result, err := defaultApp.Registry().Dispatch(context.Background(), defaultHost(), "format-url", []byte(`{"url":"https://www.nps.gov/yell"}`))
	require.NoError(t, err)
	require.True(t, result.Answered())
	assert.Equal(t, "👉 https://www.nps.gov/yell 👈", result.Value().(descriptor.FormatPair).Text)
}

func TestDefaultModules_AuthorizationStatusDispatch(t *testing.T) {
	t.Parallel()

	defaultApp := setupDefaultApp(t)

	result, err := defaultApp.Registry().Dispatch(context.Background(), defaultHost(), "authorization-status", nil)
	require.NoError(t, err)
	require.True(t, result.Answered())
	assert.True(t, result.Value().(descriptor.AuthStatus).Authorized)
}

func TestDefaultModules_CardBadgesDispatch(t *testing.T) {
	t.Parallel()

	defaultApp := setupDefaultApp(t)

	result, err := defaultApp.Registry().Dispatch(context.Background(), defaultHost(), "card-badges", nil)
	require.NoError(t, err)
	require.True(t, result.Answered())
	assert.Len(t, result.Value().([]descriptor.Badge), 4)
}

func TestDefaultModules_AttachmentSectionsDispatch(t *testing.T) {
	t.Parallel()

	defaultApp := setupDefaultApp(t)

	options := []byte(`{"entries":[{"name":"Geysers","url":"http://www.nps.gov/yell/geysers"},{"name":"Acadia","url":"http://www.nps.gov/acad"}]}`)
	result, err := defaultApp.Registry().Dispatch(context.Background(), defaultHost(), "attachment-sections", options)
	require.NoError(t, err)
	require.True(t, result.Answered())

	sections := result.Value().([]descriptor.Section)
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Claimed, 1)
	assert.Equal(t, "Geysers", sections[0].Claimed[0].Name)
}

func TestDefaultModules_InstanceConfigureApplies(t *testing.T) {
	t.Parallel()

	defaultApp := setupDefaultApp(t)
	h := defaultHost()

	result, err := defaultApp.Registry().Dispatch(context.Background(), h, "card-buttons", nil)
	require.NoError(t, err)
	buttons := result.Value().([]descriptor.Button)
	require.Len(t, buttons, 2)

	// Open the catalog popup and count its entries against the
	// instance-configured park list.
	require.NoError(t, buttons[0].Callback(context.Background(), h))
	actions := h.Actions()
	require.Len(t, actions, 1)
	assert.Len(t, actions[0].Popup.Items, 7)
}
