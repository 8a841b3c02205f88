package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths, translates it into
	// the format-agnostic model, and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter is the interface for format-specific data binding. It bridges
// raw configuration values and the Go settings structs capability modules
// declare.
type Converter interface {
	// DecodeSettings populates settingsStruct from the capability's
	// setting definitions, applying manifest defaults first and then any
	// instance overrides from args.
	DecodeSettings(
		ctx context.Context,
		settingsStruct any,
		args map[string]hcl.Expression,
		defs map[string]*SettingDefinition,
		evalCtx *hcl.EvalContext,
	) error
}
