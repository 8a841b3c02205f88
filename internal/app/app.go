package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/powerupgo/internal/config"
	"github.com/vk/powerupgo/internal/ctxlog"
	"github.com/vk/powerupgo/internal/hcl"
	"github.com/vk/powerupgo/internal/registry"
)

// AppConfig holds all the necessary configuration for an App instance to run.
type AppConfig struct {
	PowerUpPath string
	ModulesPath string
	ListenAddr  string
	HostURL     string
	LogFormat   string
	LogLevel    string
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	registry  *registry.Registry
	config    *config.Model
	converter config.Converter
}

// NewApp wires up a complete application instance: logger, configuration
// model, and a validated capability registry. Any mismatch between the
// manifests and the registered Go handlers is a programmer error and
// panics; callers recover it at the entrypoint.
func NewApp(outW io.Writer, appConfig *AppConfig, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	// Module manifests and the power-up instance file load through the
	// same walk, in that order.
	var configPaths []string
	if appConfig.ModulesPath != "" {
		configPaths = append(configPaths, appConfig.ModulesPath)
	}
	if appConfig.PowerUpPath != "" {
		configPaths = append(configPaths, appConfig.PowerUpPath)
	}

	loader := hcl.NewLoader()
	cfgModel, converter, err := loader.Load(ctx, configPaths...)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded into unified model.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Capability modules registered.", "count", len(modules))

	reg.PopulateDefinitionsFromModel(cfgModel)

	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Manifest parity validation passed.")

	// Decode every capability's settings once, up front, so a bad
	// configure block fails at startup rather than mid-invocation.
	if err := reg.BuildSettings(ctx, converter); err != nil {
		panic(err)
	}
	logger.Debug("Capability settings decoded.")

	return &App{
		outW:      outW,
		logger:    logger,
		registry:  reg,
		config:    cfgModel,
		converter: converter,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Config returns the loaded configuration model. This is primarily for testing.
func (a *App) Config() *config.Model {
	return a.config
}
