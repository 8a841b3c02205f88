package descriptor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vk/powerupgo/internal/host"
)

func TestBadge_Validate(t *testing.T) {
	t.Parallel()

	dynamic := func(ctx context.Context, h host.Context) (Badge, error) {
		return Badge{Text: "tick"}, nil
	}
	callback := func(ctx context.Context, h host.Context) error { return nil }

	testCases := []struct {
		name    string
		badge   Badge
		wantErr string
	}{
		{
			name:  "static badge is valid",
			badge: Badge{Text: "static", Color: ColorGreen},
		},
		{
			name:  "empty color is valid",
			badge: Badge{Text: "static"},
		},
		{
			name:    "unknown color is rejected",
			badge:   Badge{Text: "static", Color: "purple"},
			wantErr: "not in the host palette",
		},
		{
			name:  "dynamic badge at minimum refresh is valid",
			badge: Badge{Dynamic: dynamic, Refresh: MinRefresh},
		},
		{
			name:    "dynamic badge under minimum refresh is rejected",
			badge:   Badge{Dynamic: dynamic, Refresh: MinRefresh - time.Second},
			wantErr: "under the",
		},
		{
			name:    "dynamic badge cannot carry a callback",
			badge:   Badge{Dynamic: dynamic, Refresh: MinRefresh, Callback: callback},
			wantErr: "cannot also be actionable",
		},
		{
			name:    "dynamic badge cannot carry a URL",
			badge:   Badge{Dynamic: dynamic, Refresh: MinRefresh, URL: "https://example.com"},
			wantErr: "cannot also be actionable",
		},
		{
			name:    "refresh without dynamic is rejected",
			badge:   Badge{Text: "static", Refresh: MinRefresh},
			wantErr: "only valid on a dynamic badge",
		},
		{
			name:  "callback badge is valid",
			badge: Badge{Text: "click", Callback: callback},
		},
		{
			name:  "link badge is valid",
			badge: Badge{Text: "open", URL: "https://example.com", Target: "Example"},
		},
		{
			name:    "callback and URL together are rejected",
			badge:   Badge{Text: "both", Callback: callback, URL: "https://example.com"},
			wantErr: "not both",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.badge.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestColor_Valid(t *testing.T) {
	t.Parallel()

	for _, c := range Colors {
		assert.True(t, c.Valid(), "palette color %q should be valid", c)
	}
	assert.True(t, Color("").Valid())
	assert.False(t, Color("magenta").Valid())
}
