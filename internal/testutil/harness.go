// Package testutil provides the shared harness for integration tests:
// it lays configuration files out on disk, boots a full App around them,
// and captures startup panics and log output for assertions.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/powerupgo/internal/app"
	"github.com/vk/powerupgo/internal/registry"
)

// HarnessResult holds the outcomes of an integration test boot.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest writes the given files (keyed by path relative to a
// fresh temp root, e.g. "modules/badges/manifest.hcl" or "powerup.hcl")
// and boots an App over them with the provided modules. Startup panics
// are recovered into Err so tests can assert on configuration failures.
func RunIntegrationTest(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	modulesDir := filepath.Join(tmpDir, "modules")
	require.NoError(t, os.MkdirAll(modulesDir, 0755))

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig := &app.AppConfig{
		ModulesPath: modulesDir,
		LogFormat:   "text",
		LogLevel:    "debug",
	}
	if instance := filepath.Join(tmpDir, "powerup.hcl"); fileExists(instance) {
		appConfig.PowerUpPath = instance
	}

	result := &HarnessResult{}
	logBuffer := &app.SafeBuffer{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("startup failed: %v", r)
			}
		}()
		result.App = app.NewApp(logBuffer, appConfig, modules...)
	}()

	result.LogOutput = logBuffer.String()
	return result
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
