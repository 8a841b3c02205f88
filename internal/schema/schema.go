// Package schema holds the HCL-specific struct definitions the hcl loader
// decodes manifest and powerup files into, before translation into the
// format-agnostic config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Capability Manifest Schemas ---

// Lifecycle maps an extension point to a registered Go handler function.
type Lifecycle struct {
	OnInvoke string `hcl:"on_invoke"`
}

// OptionDefinition declares a single field of the host-supplied options
// payload.
type OptionDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
}

// SettingDefinition declares a single tunable setting for a capability.
type SettingDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
}

// CapabilityDefinition represents a `capability` block from a module
// manifest file.
type CapabilityDefinition struct {
	Hook        string               `hcl:"hook,label"`
	Description string               `hcl:"description,optional"`
	Lifecycle   *Lifecycle           `hcl:"lifecycle,block"`
	Options     []*OptionDefinition  `hcl:"option,block"`
	Settings    []*SettingDefinition `hcl:"setting,block"`
}

// --- Instance Schemas ---

// SettingsBlock carries the raw attribute body of a `settings` block so
// values stay unevaluated until decoded against their definitions.
type SettingsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Configure represents a `configure` block inside a powerup block,
// overriding one capability's settings for this deployment.
type Configure struct {
	Hook     string         `hcl:"hook,label"`
	Settings *SettingsBlock `hcl:"settings,block"`
}

// PowerUp represents a `powerup` block from the user's instance file.
type PowerUp struct {
	Name       string       `hcl:"name,label"`
	HostOrigin string       `hcl:"host_origin,optional"`
	AssetsDir  string       `hcl:"assets_dir,optional"`
	Configure  []*Configure `hcl:"configure,block"`
}

// FileConfig represents the top-level structure of any configuration
// file: module manifests contribute capability blocks, instance files
// contribute a powerup block, and a single file may carry both.
type FileConfig struct {
	Capabilities []*CapabilityDefinition `hcl:"capability,block"`
	PowerUps     []*PowerUp              `hcl:"powerup,block"`
	Body         hcl.Body                `hcl:",remain"`
}
