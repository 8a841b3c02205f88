// This file translates the HCL schema structs into the format-agnostic
// configuration model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/powerupgo/internal/config"
	"github.com/vk/powerupgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// translateCapability converts a capability manifest block into the
// agnostic model, parsing option and setting type expressions and
// evaluating setting defaults.
func (l *Loader) translateCapability(ctx context.Context, s *schema.CapabilityDefinition) (*config.CapabilityDefinition, error) {
	def := &config.CapabilityDefinition{
		Hook:        s.Hook,
		Description: s.Description,
		Options:     make(map[string]*config.OptionDefinition),
		Settings:    make(map[string]*config.SettingDefinition),
	}
	if s.Lifecycle != nil {
		def.Lifecycle = &config.Lifecycle{OnInvoke: s.Lifecycle.OnInvoke}
	}

	for _, opt := range s.Options {
		parsedType, err := typeExprToCtyType(ctx, opt.Type)
		if err != nil {
			return nil, fmt.Errorf("capability %q, option %q: %w", s.Hook, opt.Name, err)
		}
		def.Options[opt.Name] = &config.OptionDefinition{
			Name:        opt.Name,
			Type:        parsedType,
			Description: opt.Description,
		}
	}

	for _, set := range s.Settings {
		translated, err := l.translateSetting(ctx, s.Hook, set)
		if err != nil {
			return nil, err
		}
		def.Settings[set.Name] = translated
	}

	return def, nil
}

// translateSetting handles one setting block, evaluating its default
// value and parsing its type expression.
func (l *Loader) translateSetting(ctx context.Context, hook string, s *schema.SettingDefinition) (*config.SettingDefinition, error) {
	var defaultVal *cty.Value
	var isOptional bool

	if s.Default != nil {
		val, diags := s.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("capability %q, setting %q: invalid default: %w", hook, s.Name, diags)
		}
		if !val.IsNull() {
			defaultVal = &val
			isOptional = true
		}
	}

	parsedType, err := typeExprToCtyType(ctx, s.Type)
	if err != nil {
		return nil, fmt.Errorf("capability %q, setting %q: %w", hook, s.Name, err)
	}

	return &config.SettingDefinition{
		Name:        s.Name,
		Type:        parsedType,
		Description: s.Description,
		Default:     defaultVal,
		Optional:    isOptional,
	}, nil
}

// translatePowerUp converts the instance block into the agnostic model,
// keeping configure-block settings as unevaluated expressions.
func (l *Loader) translatePowerUp(s *schema.PowerUp) *config.PowerUp {
	pu := &config.PowerUp{
		Name:       s.Name,
		HostOrigin: s.HostOrigin,
		AssetsDir:  s.AssetsDir,
	}
	for _, c := range s.Configure {
		pu.Configure = append(pu.Configure, &config.Configure{
			Hook:     c.Hook,
			Settings: l.extractBodyAttributes(c.Settings),
		})
	}
	return pu
}

// extractBodyAttributes pulls the raw attribute expressions out of a
// settings block body.
func (l *Loader) extractBodyAttributes(block *schema.SettingsBlock) map[string]hcl.Expression {
	out := make(map[string]hcl.Expression)
	if block == nil || block.Body == nil {
		return out
	}
	attrs, _ := block.Body.JustAttributes()
	for name, attr := range attrs {
		out[name] = attr.Expr
	}
	return out
}
