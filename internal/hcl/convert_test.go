package hcl

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/powerupgo/internal/config"
	"github.com/zclconf/go-cty/cty"
)

type convertSettings struct {
	Icon   string   `pup:"icon"`
	Height int      `pup:"height"`
	Parks  []string `pup:"parks"`
}

func settingDefs() map[string]*config.SettingDefinition {
	iconDefault := cty.StringVal("./images/logo.svg")
	heightDefault := cty.NumberIntVal(184)
	return map[string]*config.SettingDefinition{
		"icon":   {Name: "icon", Type: cty.String, Default: &iconDefault, Optional: true},
		"height": {Name: "height", Type: cty.Number, Default: &heightDefault, Optional: true},
		"parks":  {Name: "parks", Type: cty.List(cty.String), Default: parksDefault(), Optional: true},
	}
}

func parksDefault() *cty.Value {
	v := cty.ListVal([]cty.Value{cty.StringVal("yell"), cty.StringVal("yose")})
	return &v
}

func expr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	e, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return e
}

func TestConverter_DecodeSettings_Defaults(t *testing.T) {
	t.Parallel()

	var settings convertSettings
	err := NewConverter().DecodeSettings(context.Background(), &settings, nil, settingDefs(), nil)
	require.NoError(t, err)

	assert.Equal(t, "./images/logo.svg", settings.Icon)
	assert.Equal(t, 184, settings.Height)
	assert.Equal(t, []string{"yell", "yose"}, settings.Parks)
}

func TestConverter_DecodeSettings_OverridesWin(t *testing.T) {
	t.Parallel()

	args := map[string]hcl.Expression{
		"icon":  expr(t, `"./images/alt.svg"`),
		"parks": expr(t, `["acad", "grca", "crla"]`),
	}

	var settings convertSettings
	err := NewConverter().DecodeSettings(context.Background(), &settings, args, settingDefs(), nil)
	require.NoError(t, err)

	assert.Equal(t, "./images/alt.svg", settings.Icon)
	assert.Equal(t, 184, settings.Height, "unset settings still fall back to defaults")
	assert.Equal(t, []string{"acad", "grca", "crla"}, settings.Parks)
}

func TestConverter_DecodeSettings_MissingRequired(t *testing.T) {
	t.Parallel()

	defs := map[string]*config.SettingDefinition{
		"icon": {Name: "icon", Type: cty.String},
	}

	var settings convertSettings
	err := NewConverter().DecodeSettings(context.Background(), &settings, nil, defs, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required setting "icon"`)
}

func TestConverter_DecodeSettings_TypeMismatch(t *testing.T) {
	t.Parallel()

	args := map[string]hcl.Expression{
		"height": expr(t, `"tall"`),
	}

	var settings convertSettings
	err := NewConverter().DecodeSettings(context.Background(), &settings, args, settingDefs(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to decode setting "height"`)
}

func TestConverter_DecodeSettings_RequiresPointer(t *testing.T) {
	t.Parallel()

	err := NewConverter().DecodeSettings(context.Background(), convertSettings{}, nil, settingDefs(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-nil pointer")
}
