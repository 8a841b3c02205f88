package hostmem

import (
	"context"
	"fmt"
	"maps"

	"github.com/vk/powerupgo/internal/host"
)

// Get implements host.Context. A missing key yields "" and no error.
func (h *Host) Get(ctx context.Context, scope host.Scope, vis host.Visibility, key string) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if err := h.checkScopeLocked(scope, vis); err != nil {
		return "", err
	}
	return h.store[bucketKey(scope, vis)][key], nil
}

// GetAll implements host.Context.
func (h *Host) GetAll(ctx context.Context, scope host.Scope, vis host.Visibility) (map[string]string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if err := h.checkScopeLocked(scope, vis); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(h.store[bucketKey(scope, vis)]))
	maps.Copy(out, h.store[bucketKey(scope, vis)])
	return out, nil
}

// Set implements host.Context. Writes are individually atomic and
// last-write-wins; a write that would push the bucket past
// host.MaxScopedChars fails with host.ErrQuotaExceeded and changes
// nothing.
func (h *Host) Set(ctx context.Context, scope host.Scope, vis host.Visibility, key, value string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.checkScopeLocked(scope, vis); err != nil {
		return err
	}

	bucket := h.store[bucketKey(scope, vis)]
	next := make(map[string]string, len(bucket)+1)
	maps.Copy(next, bucket)
	next[key] = value

	size, err := host.EncodedSize(next)
	if err != nil {
		return err
	}
	if size > host.MaxScopedChars {
		return fmt.Errorf("cannot store %q at %s/%s (%d > %d chars): %w",
			key, scope, vis, size, host.MaxScopedChars, host.ErrQuotaExceeded)
	}

	h.store[bucketKey(scope, vis)] = next
	return nil
}

func (h *Host) checkScopeLocked(scope host.Scope, vis host.Visibility) error {
	return host.CheckScope(scope, vis, h.board, h.card, h.member)
}

func bucketKey(scope host.Scope, vis host.Visibility) string {
	return string(scope) + "/" + string(vis)
}
