package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/powerupgo/internal/config"
	"github.com/vk/powerupgo/internal/ctxlog"
	"github.com/vk/powerupgo/internal/fsutil"
	"github.com/vk/powerupgo/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load finds every .hcl file under the given paths (a path may be a file
// or a directory), decodes them, and merges the result into a single
// model. Duplicate capability hooks and multiple powerup blocks are
// configuration errors.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)

	model := &config.Model{
		Capabilities: make(map[string]*config.CapabilityDefinition),
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot read configuration path %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, nil, fmt.Errorf("failed to walk configuration path %s: %w", path, err)
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}
	logger.Debug("Found HCL files to load.", "files", files)

	parser := hclparse.NewParser()
	for _, filePath := range files {
		file, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %s", filePath, diags.Error())
		}

		var fileCfg schema.FileConfig
		diags = gohcl.DecodeBody(file.Body, nil, &fileCfg)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %s", filePath, diags.Error())
		}

		for _, capDef := range fileCfg.Capabilities {
			translated, err := l.translateCapability(ctx, capDef)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid capability manifest in %s: %w", filePath, err)
			}
			if _, exists := model.Capabilities[translated.Hook]; exists {
				return nil, nil, fmt.Errorf("capability %q declared more than once (second declaration in %s)", translated.Hook, filePath)
			}
			model.Capabilities[translated.Hook] = translated
		}

		for _, pu := range fileCfg.PowerUps {
			if model.PowerUp != nil {
				return nil, nil, fmt.Errorf("more than one powerup block found (second in %s)", filePath)
			}
			model.PowerUp = l.translatePowerUp(pu)
		}
	}

	logger.Info("Configuration loaded.", "capabilities", len(model.Capabilities), "has_instance", model.PowerUp != nil)
	return model, NewConverter(), nil
}
