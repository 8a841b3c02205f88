package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/vk/powerupgo/internal/registry"
)

// SafeBuffer captures log output from concurrently running invocations
// without racing the test's own reads.
type SafeBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest boots a fully wired App for a test, forcing debug logging
// into a SafeBuffer so assertions can inspect it. Set PUPGO_TEST_LOGS=true
// to dump the captured log on cleanup.
func SetupAppTest(t *testing.T, appConfig *AppConfig, modules ...registry.Module) (*App, *SafeBuffer) {
	t.Helper()

	logs := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	a := NewApp(logs, appConfig, modules...)

	t.Cleanup(func() {
		if os.Getenv("PUPGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return a, logs
}
