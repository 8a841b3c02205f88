package descriptor

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/powerupgo/internal/host"
)

// Color is a badge color drawn from the host's fixed palette.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorNone   Color = "none"
)

// Colors lists every valid badge color, in a stable order.
var Colors = []Color{ColorGreen, ColorYellow, ColorRed, ColorNone}

// Valid reports whether c belongs to the palette. The empty string is
// accepted and rendered as ColorNone.
func (c Color) Valid() bool {
	switch c {
	case ColorGreen, ColorYellow, ColorRed, ColorNone, "":
		return true
	}
	return false
}

// MinRefresh is the shortest refresh period the host accepts for a
// dynamic badge.
const MinRefresh = 10 * time.Second

// Badge is a single badge on a card face or detail view. It comes in
// three variants:
//
//   - static: Text/Icon/Color only.
//   - dynamic: Dynamic is set and the host re-invokes it every Refresh
//     period to pick up new Text/Color. Refresh must be >= MinRefresh.
//   - actionable: Callback or URL is set; clicking either runs the
//     callback against a fresh host context or navigates to the URL.
type Badge struct {
	Text  string `json:"text,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Color Color  `json:"color,omitempty"`

	// Dynamic, when set, makes this a dynamic badge. The host calls it
	// on every refresh tick; the returned badge replaces Text and Color.
	Dynamic func(ctx context.Context, h host.Context) (Badge, error) `json:"-"`
	Refresh time.Duration                                            `json:"-"`

	// Callback and URL make this an actionable badge. At most one may
	// be set, and neither combines with Dynamic.
	Callback func(ctx context.Context, h host.Context) error `json:"-"`
	URL      string                                          `json:"url,omitempty"`
	Target   string                                          `json:"target,omitempty"`
}

// Validate checks the variant rules above.
func (b Badge) Validate() error {
	if !b.Color.Valid() {
		return fmt.Errorf("badge color %q is not in the host palette", b.Color)
	}
	if b.Dynamic != nil {
		if b.Callback != nil || b.URL != "" {
			return fmt.Errorf("dynamic badge cannot also be actionable")
		}
		if b.Refresh < MinRefresh {
			return fmt.Errorf("dynamic badge refresh %s is under the %s minimum", b.Refresh, MinRefresh)
		}
		return nil
	}
	if b.Refresh != 0 {
		return fmt.Errorf("refresh is only valid on a dynamic badge")
	}
	if b.Callback != nil && b.URL != "" {
		return fmt.Errorf("actionable badge must use a callback or a URL, not both")
	}
	return nil
}
