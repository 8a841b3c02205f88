package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// writeFiles lays out the given HCL files under a fresh temp dir and
// returns its path.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestLoader_LoadManifestAndInstance(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"modules/enrich/manifest.hcl": `
			capability "format-url" {
				description = "Reformat recognized URLs."

				lifecycle {
					on_invoke = "OnFormatURL"
				}

				option "url" {
					type = string
				}

				setting "icon" {
					type    = string
					default = "./images/logo.svg"
				}
			}
		`,
		"powerup.hcl": `
			powerup "national-parks" {
				host_origin = "https://boards.example.com"
				assets_dir  = "public"

				configure "format-url" {
					settings {
						icon = "./images/alt.svg"
					}
				}
			}
		`,
	})

	loader := NewLoader()
	model, converter, err := loader.Load(context.Background(), dir)
	require.NoError(t, err)
	require.NotNil(t, converter)

	require.Contains(t, model.Capabilities, "format-url")
	def := model.Capabilities["format-url"]
	assert.Equal(t, "OnFormatURL", def.Lifecycle.OnInvoke)

	require.Contains(t, def.Options, "url")
	assert.True(t, def.Options["url"].Type.Equals(cty.String))

	require.Contains(t, def.Settings, "icon")
	icon := def.Settings["icon"]
	assert.True(t, icon.Optional)
	require.NotNil(t, icon.Default)
	assert.Equal(t, "./images/logo.svg", icon.Default.AsString())

	require.NotNil(t, model.PowerUp)
	assert.Equal(t, "national-parks", model.PowerUp.Name)
	assert.Equal(t, "https://boards.example.com", model.PowerUp.HostOrigin)
	require.Len(t, model.PowerUp.Configure, 1)
	assert.Equal(t, "format-url", model.PowerUp.Configure[0].Hook)
	assert.Contains(t, model.PowerUp.Configure[0].Settings, "icon")
}

func TestLoader_SingleFilePath(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"powerup.hcl": `
			powerup "solo" {}
		`,
	})

	loader := NewLoader()
	model, _, err := loader.Load(context.Background(), filepath.Join(dir, "powerup.hcl"))
	require.NoError(t, err)
	require.NotNil(t, model.PowerUp)
	assert.Equal(t, "solo", model.PowerUp.Name)
}

func TestLoader_DuplicateHookFails(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.hcl": `
			capability "show-settings" {
				lifecycle {
					on_invoke = "OnShowSettings"
				}
			}
		`,
		"b.hcl": `
			capability "show-settings" {
				lifecycle {
					on_invoke = "OnShowSettingsAgain"
				}
			}
		`,
	})

	loader := NewLoader()
	_, _, err := loader.Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `capability "show-settings" declared more than once`)
}

func TestLoader_MultiplePowerUpBlocksFail(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.hcl": `
			powerup "one" {}
		`,
		"b.hcl": `
			powerup "two" {}
		`,
	})

	loader := NewLoader()
	_, _, err := loader.Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than one powerup block")
}

func TestLoader_ParseErrorSurfacesFile(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"broken.hcl": `capability "format-url" {`,
	})

	loader := NewLoader()
	_, _, err := loader.Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
	assert.Contains(t, err.Error(), "broken.hcl")
}

func TestLoader_MissingPathFails(t *testing.T) {
	t.Parallel()

	loader := NewLoader()
	_, _, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read configuration path")
}
