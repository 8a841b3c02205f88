package hcl

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/powerupgo/internal/config"
	"github.com/vk/powerupgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter is the HCL-specific implementation of config.Converter.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeSettings evaluates any override expressions, applies manifest
// defaults, and populates the provided settings struct using reflection.
// Struct fields are matched to setting names through their `pup` tag.
func (c *Converter) DecodeSettings(
	ctx context.Context,
	settingsStruct any,
	args map[string]hcl.Expression,
	defs map[string]*config.SettingDefinition,
	evalCtx *hcl.EvalContext,
) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting settings decoding.")

	structVal := reflect.ValueOf(settingsStruct)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("settingsStruct must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		lookupName := field.Name
		if tag := field.Tag.Get("pup"); tag != "" {
			lookupName = strings.Split(tag, ",")[0]
		}

		settingDef, defExists := defs[lookupName]
		if !defExists {
			continue
		}

		targetPtr := fieldVal.Addr().Interface()
		argExpr, argProvided := args[lookupName]

		if argProvided {
			val, diags := argExpr.Value(evalCtx)
			if diags.HasErrors() {
				return diags
			}
			if err := c.decode(ctx, val, targetPtr); err != nil {
				return fmt.Errorf("failed to decode setting %q: %w", lookupName, err)
			}
		} else {
			if settingDef.Default == nil && !settingDef.Optional {
				return fmt.Errorf("missing required setting %q", lookupName)
			}
			if settingDef.Default != nil {
				if err := c.decode(ctx, *settingDef.Default, targetPtr); err != nil {
					return fmt.Errorf("failed to apply default for %q: %w", lookupName, err)
				}
			}
		}
	}
	logger.Debug("Finished settings decoding successfully.")
	return nil
}

// decode converts a cty.Value into the Go value behind goVal.
func (c *Converter) decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)
	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("target for decoding must be a pointer, got %T", goVal)
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", valPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}
