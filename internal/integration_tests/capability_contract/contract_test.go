package capability_contract_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/powerupgo/internal/descriptor"
	"github.com/vk/powerupgo/internal/host"
	"github.com/vk/powerupgo/internal/hostmem"
	"github.com/vk/powerupgo/internal/registry"
	"github.com/vk/powerupgo/internal/testutil"
)

type shoutOptions struct {
	URL string `json:"url"`
}

type shoutSettings struct {
	Suffix string `pup:"suffix"`
}

type shoutModule struct{}

func (m *shoutModule) Register(r *registry.Registry) {
	r.RegisterCapability("OnShoutURL", &registry.RegisteredCapability{
		NewOptions:   func() any { return new(shoutOptions) },
		OptionsType:  reflect.TypeOf(shoutOptions{}),
		NewSettings:  func() any { return new(shoutSettings) },
		SettingsType: reflect.TypeOf(shoutSettings{}),
		Fn: func(ctx context.Context, h host.Context, settings *shoutSettings, opts *shoutOptions) (descriptor.Result, error) {
			if opts.URL == "" {
				return descriptor.Decline(), nil
			}
			return descriptor.Answer(descriptor.FormatPair{Text: opts.URL + settings.Suffix}), nil
		},
	})
}

const shoutManifest = `
	capability "format-url" {
		lifecycle {
			on_invoke = "OnShoutURL"
		}

		option "url" {
			type = string
		}

		setting "suffix" {
			type    = string
			default = "!"
		}
	}
`

func TestCapabilityContract_EndToEnd(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"modules/shout/manifest.hcl": shoutManifest,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, &shoutModule{})

	// --- Assert ---
	require.NoError(t, result.Err, "startup should succeed for a matching manifest")

	dispatched, err := result.App.Registry().Dispatch(context.Background(), hostmem.New(), "format-url", []byte(`{"url":"https://www.nps.gov"}`))
	require.NoError(t, err)
	require.True(t, dispatched.Answered())
	assert.Equal(t, "https://www.nps.gov!", dispatched.Value().(descriptor.FormatPair).Text)
}

func TestCapabilityContract_ConfigureOverridesDefaults(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"modules/shout/manifest.hcl": shoutManifest,
		"powerup.hcl": `
			powerup "shouty" {
				configure "format-url" {
					settings {
						suffix = "!!!"
					}
				}
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, &shoutModule{})

	// --- Assert ---
	require.NoError(t, result.Err)

	dispatched, err := result.App.Registry().Dispatch(context.Background(), hostmem.New(), "format-url", []byte(`{"url":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "x!!!", dispatched.Value().(descriptor.FormatPair).Text)
}

func TestCapabilityContract_TypeMismatchFailsStartup(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"modules/shout/manifest.hcl": `
			capability "format-url" {
				lifecycle {
					on_invoke = "OnShoutURL"
				}

				option "url" {
					type = number
				}

				setting "suffix" {
					type    = string
					default = "!"
				}
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, &shoutModule{})

	// --- Assert ---
	require.Error(t, result.Err, "a manifest/Go type mismatch must fail startup")
	assert.Contains(t, result.Err.Error(), "type mismatch")
}

func TestCapabilityContract_UnknownHookFailsStartup(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"modules/shout/manifest.hcl": `
			capability "card-sparkles" {
				lifecycle {
					on_invoke = "OnShoutURL"
				}

				option "url" {
					type = string
				}

				setting "suffix" {
					type    = string
					default = "!"
				}
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, &shoutModule{})

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "not a known extension point")
}
