package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/powerupgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidateRegistry performs a strict parity check between capability
// manifests and the registered Go code. Every declared capability must
// name a known extension point and a registered handler, and the
// manifest's option and setting declarations must match the handler's Go
// structs in both presence and (where statically known) type.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string

	for hook, def := range r.DefinitionRegistry {
		if !KnownExtensionPoint(hook) {
			errs = append(errs, fmt.Sprintf("capability '%s': not a known extension point", hook))
			continue
		}
		if def.Lifecycle == nil || def.Lifecycle.OnInvoke == "" {
			errs = append(errs, fmt.Sprintf("capability '%s': manifest declares no lifecycle handler", hook))
			continue
		}
		handler, ok := r.HandlerRegistry[def.Lifecycle.OnInvoke]
		if !ok {
			errs = append(errs, fmt.Sprintf("capability '%s': handler '%s' is not registered", hook, def.Lifecycle.OnInvoke))
			continue
		}

		optionDefs := make(map[string]cty.Type, len(def.Options))
		for name, opt := range def.Options {
			optionDefs[name] = opt.Type
		}
		settingDefs := make(map[string]cty.Type, len(def.Settings))
		for name, set := range def.Settings {
			settingDefs[name] = set.Type
		}

		errs = append(errs, checkParity(ctx, hook, "option", "json", handler.OptionsType, optionDefs)...)
		errs = append(errs, checkParity(ctx, hook, "setting", "pup", handler.SettingsType, settingDefs)...)
	}

	if err := r.checkConfigure(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

// checkParity compares one manifest declaration set (options or settings)
// against the tagged fields of the matching Go struct.
func checkParity(ctx context.Context, hook, kind, tagKey string, structType reflect.Type, defs map[string]cty.Type) []string {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	if structType == nil {
		if len(defs) > 0 {
			errs = append(errs, fmt.Sprintf("capability '%s': manifest declares %ss, but Go handler has no %ss struct", hook, kind, kind))
		}
		return errs
	}

	goFields := make(map[string]reflect.StructField)
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get(tagKey)
		tagName := strings.Split(tag, ",")[0]
		if tagName != "" && tagName != "-" {
			goFields[tagName] = field
		}
	}

	for name := range goFields {
		if _, ok := defs[name]; !ok {
			errs = append(errs, fmt.Sprintf("capability '%s': Go struct has field for %s '%s' which is not declared in manifest", hook, kind, name))
		}
	}
	for name := range defs {
		if _, ok := goFields[name]; !ok {
			errs = append(errs, fmt.Sprintf("capability '%s': manifest declares %s '%s' which is not found in Go struct", hook, kind, name))
		}
	}

	for name, manifestType := range defs {
		goField, ok := goFields[name]
		if !ok {
			continue // already reported above
		}

		if manifestType.Equals(cty.DynamicPseudoType) {
			logger.Warn("Manifest declares 'type = any', which disables static type checking. Consider a specific type like 'string', 'number', or 'bool'.", "capability", hook, kind, name)
			continue
		}

		goFieldType, err := gocty.ImpliedType(reflect.Zero(goField.Type).Interface())
		if err != nil {
			errs = append(errs, fmt.Sprintf("capability '%s', %s '%s': could not imply cty type from Go field type %s: %v", hook, kind, name, goField.Type, err))
			continue
		}

		if !manifestType.Equals(goFieldType) {
			errs = append(errs, fmt.Sprintf("capability '%s', %s '%s': type mismatch. Manifest requires '%s' but Go struct field '%s' provides '%s'",
				hook, kind, name, manifestType.FriendlyName(), goField.Name, goFieldType.FriendlyName()))
		}
	}

	return errs
}

// checkConfigure rejects instance configure blocks that reference
// capabilities or settings no manifest declares.
func (r *Registry) checkConfigure() error {
	if r.PowerUp == nil {
		return nil
	}
	var errs []string
	for _, c := range r.PowerUp.Configure {
		def, ok := r.DefinitionRegistry[c.Hook]
		if !ok {
			errs = append(errs, fmt.Sprintf("configure block references undeclared capability '%s'", c.Hook))
			continue
		}
		for name := range c.Settings {
			if _, ok := def.Settings[name]; !ok {
				errs = append(errs, fmt.Sprintf("configure block for '%s' sets unknown setting '%s'", c.Hook, name))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "\n- "))
	}
	return nil
}
