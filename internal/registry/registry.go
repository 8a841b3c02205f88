package registry

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/vk/powerupgo/internal/config"
)

// Module is the interface every capability module must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// RegisteredCapability holds the compiled Go parts of one capability
// handler. NewOptions constructs the struct the host's options payload is
// decoded into; NewSettings constructs the struct the capability's
// manifest settings are decoded into. Fn is the handler function with
// signature
//
//	func(ctx context.Context, h host.Context, settings *S, opts *O) (descriptor.Result, error)
type RegisteredCapability struct {
	NewOptions   func() any
	OptionsType  reflect.Type
	NewSettings  func() any
	SettingsType reflect.Type
	Fn           any
}

// Registry holds all registered handlers and manifest definitions for a
// single application instance.
type Registry struct {
	HandlerRegistry    map[string]*RegisteredCapability
	DefinitionRegistry map[string]*config.CapabilityDefinition
	SettingsRegistry   map[string]any
	PowerUp            *config.PowerUp
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		HandlerRegistry:    make(map[string]*RegisteredCapability),
		DefinitionRegistry: make(map[string]*config.CapabilityDefinition),
		SettingsRegistry:   make(map[string]any),
	}
}

// RegisterCapability registers a Go handler under the name capability
// manifests refer to it by.
func (r *Registry) RegisterCapability(name string, cap *RegisteredCapability) {
	if _, exists := r.HandlerRegistry[name]; exists {
		panic(fmt.Sprintf("capability handler with name '%s' already registered", name))
	}
	slog.Debug("Registering capability handler.", "name", name)
	r.HandlerRegistry[name] = cap
}

// PopulateDefinitionsFromModel copies the loaded manifest definitions and
// the instance block from the config model into the registry.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for key, val := range model.Capabilities {
		r.DefinitionRegistry[key] = val
	}
	r.PowerUp = model.PowerUp
}
