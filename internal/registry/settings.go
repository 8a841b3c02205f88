package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/powerupgo/internal/config"
	"github.com/vk/powerupgo/internal/ctxlog"
)

// BuildSettings decodes every capability's settings struct once at
// startup: manifest defaults first, then any configure-block overrides
// from the instance file. The decoded structs are frozen in the
// SettingsRegistry and shared read-only by all subsequent dispatches.
func (r *Registry) BuildSettings(ctx context.Context, converter config.Converter) error {
	logger := ctxlog.FromContext(ctx)

	overrides := make(map[string]map[string]hcl.Expression)
	if r.PowerUp != nil {
		for _, c := range r.PowerUp.Configure {
			overrides[c.Hook] = c.Settings
		}
	}

	for hook, def := range r.DefinitionRegistry {
		handler, ok := r.HandlerRegistry[def.Lifecycle.OnInvoke]
		if !ok {
			// ValidateRegistry reports this; skip here.
			continue
		}
		if handler.NewSettings == nil {
			continue
		}

		settings := handler.NewSettings()
		if err := converter.DecodeSettings(ctx, settings, overrides[hook], def.Settings, nil); err != nil {
			return fmt.Errorf("failed to decode settings for capability '%s': %w", hook, err)
		}
		r.SettingsRegistry[hook] = settings
		logger.Debug("Capability settings decoded.", "capability", hook)
	}

	return nil
}
