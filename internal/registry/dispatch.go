package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/vk/powerupgo/internal/ctxlog"
	"github.com/vk/powerupgo/internal/descriptor"
	"github.com/vk/powerupgo/internal/host"
)

// Dispatch answers one extension-point invocation from the host. The raw
// options payload (JSON, possibly empty) is decoded into the handler's
// options struct, and the handler runs against the given host context.
//
// A declined result is a normal outcome. Errors are genuine invocation
// failures (unknown hook, malformed options, handler failure) and
// propagate to the caller untouched; no retries happen at this layer.
func (r *Registry) Dispatch(ctx context.Context, h host.Context, hook string, rawOptions []byte) (descriptor.Result, error) {
	logger := ctxlog.FromContext(ctx).With("hook", hook)

	def, ok := r.DefinitionRegistry[hook]
	if !ok {
		return descriptor.Result{}, fmt.Errorf("unknown extension point '%s'", hook)
	}
	handlerName := def.Lifecycle.OnInvoke
	handler, ok := r.HandlerRegistry[handlerName]
	if !ok {
		return descriptor.Result{}, fmt.Errorf("handler '%s' not registered", handlerName)
	}

	var optsStruct any
	if handler.NewOptions != nil {
		optsStruct = handler.NewOptions()
	}
	if optsStruct != nil && len(rawOptions) > 0 {
		if err := json.Unmarshal(rawOptions, optsStruct); err != nil {
			return descriptor.Result{}, fmt.Errorf("malformed options for '%s': %w", hook, err)
		}
	}

	logger.Debug("Calling capability handler.", "handler", handlerName)
	handlerFunc := reflect.ValueOf(handler.Fn)
	callArgs := []reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(h)}

	if settings, ok := r.SettingsRegistry[hook]; ok {
		callArgs = append(callArgs, reflect.ValueOf(settings))
	} else {
		callArgs = append(callArgs, reflect.Zero(handlerFunc.Type().In(2)))
	}

	if optsStruct != nil {
		callArgs = append(callArgs, reflect.ValueOf(optsStruct))
	} else {
		callArgs = append(callArgs, reflect.Zero(handlerFunc.Type().In(3)))
	}

	results := handlerFunc.Call(callArgs)
	result := results[0].Interface().(descriptor.Result)
	if errResult := results[1].Interface(); errResult != nil {
		return descriptor.Result{}, errResult.(error)
	}

	if result.Declined() {
		logger.Debug("Handler declined the invocation.")
	}
	return result, nil
}
