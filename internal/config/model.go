package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of the entire
// Power-Up configuration: every capability manifest plus the optional
// instance block.
type Model struct {
	Capabilities map[string]*CapabilityDefinition
	PowerUp      *PowerUp
}

// CapabilityDefinition is the manifest for one extension point: which Go
// handler answers it, which options the host supplies, and which settings
// a deployment may tune.
type CapabilityDefinition struct {
	Hook        string
	Description string
	Lifecycle   *Lifecycle
	Options     map[string]*OptionDefinition
	Settings    map[string]*SettingDefinition
}

// Lifecycle maps an extension point to its registered Go handler name.
type Lifecycle struct {
	OnInvoke string
}

// OptionDefinition declares one field of the host-supplied options
// payload for an extension point.
type OptionDefinition struct {
	Name        string
	Type        cty.Type
	Description string
}

// SettingDefinition declares one tunable setting of a capability, with an
// optional default.
type SettingDefinition struct {
	Name        string
	Type        cty.Type
	Description string
	Default     *cty.Value
	Optional    bool
}

// PowerUp is the deployment instance block from the user's powerup file.
type PowerUp struct {
	Name       string
	HostOrigin string
	AssetsDir  string
	Configure  []*Configure
}

// Configure overrides the settings of one declared capability for this
// deployment. Values stay as unevaluated expressions until they are
// decoded against the capability's setting definitions.
type Configure struct {
	Hook     string
	Settings map[string]hcl.Expression
}
