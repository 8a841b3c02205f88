package descriptor

import (
	"context"
	"fmt"

	"github.com/vk/powerupgo/internal/host"
)

// Button is a board-level or card-level button. It has exactly two
// variants: a callback button (Callback runs on click and typically opens
// a follow-up UI surface) and a link button (URL opens on click, Target
// optionally names the destination).
type Button struct {
	Icon string `json:"icon,omitempty"`
	Text string `json:"text"`

	Callback func(ctx context.Context, h host.Context) error `json:"-"`
	URL      string                                          `json:"url,omitempty"`
	Target   string                                          `json:"target,omitempty"`
}

// Validate enforces that exactly one variant is in play.
func (b Button) Validate() error {
	if b.Text == "" {
		return fmt.Errorf("button requires a label")
	}
	if (b.Callback == nil) == (b.URL == "") {
		return fmt.Errorf("button %q must set exactly one of callback or URL", b.Text)
	}
	return nil
}
