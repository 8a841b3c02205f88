// Package buttons implements the board-buttons and card-buttons
// extension points. Each returns exactly two buttons: one callback button
// opening a follow-up popup and one plain link button.
package buttons

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/powerupgo/internal/descriptor"
	"github.com/vk/powerupgo/internal/host"
	"github.com/vk/powerupgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Options is empty because button extension points carry no payload.
type Options struct{}

// BoardSettings tunes the board-level buttons.
type BoardSettings struct {
	Icon       string `pup:"icon"`
	OverlayURL string `pup:"overlay_url"`
	BarURL     string `pup:"bar_url"`
	BarHeight  int    `pup:"bar_height"`
	InfoURL    string `pup:"info_url"`
}

// CardSettings tunes the card-level buttons, including the searchable
// park catalog.
type CardSettings struct {
	Icon    string   `pup:"icon"`
	Parks   []string `pup:"parks"`
	BaseURL string   `pup:"base_url"`
	FindURL string   `pup:"find_url"`
}

// parkNames maps the demo catalog codes to display labels. Codes outside
// the map fall back to their uppercased form.
var parkNames = map[string]string{
	"acad": "Acadia",
	"arch": "Arches",
	"badl": "Badlands",
	"crla": "Crater Lake",
	"grca": "Grand Canyon",
	"yell": "Yellowstone",
	"yose": "Yosemite",
}

func parkName(code string) string {
	if name, ok := parkNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}

// OnBoardButtons returns the two board buttons: a callback button whose
// popup opens the overlay or the board bar, and a link button.
func (m *Module) OnBoardButtons(ctx context.Context, h host.Context, settings *BoardSettings, _ *Options) (descriptor.Result, error) {
	s := *settings
	buttons := []descriptor.Button{
		{
			Icon: s.Icon,
			Text: "Open views",
			Callback: func(ctx context.Context, hc host.Context) error {
				return hc.Popup(ctx, host.PopupArgs{
					Title: "Power-Up views",
					Items: []host.PopupItem{
						{
							Text: "Open overlay",
							Callback: func(ctx context.Context, hc host.Context) error {
								if err := hc.Overlay(ctx, host.OverlayArgs{URL: s.OverlayURL}); err != nil {
									return err
								}
								return hc.ClosePopup(ctx)
							},
						},
						{
							Text: "Open board bar",
							Callback: func(ctx context.Context, hc host.Context) error {
								if err := hc.BoardBar(ctx, host.BoardBarArgs{URL: s.BarURL, Height: s.BarHeight}); err != nil {
									return err
								}
								return hc.ClosePopup(ctx)
							},
						},
					},
				})
			},
		},
		{
			Icon:   s.Icon,
			Text:   "Park Service",
			URL:    s.InfoURL,
			Target: "National Park Service",
		},
	}
	return descriptor.Answer(buttons), nil
}

// OnCardButtons returns the two card buttons: a callback button opening
// the searchable park catalog, and a link button.
func (m *Module) OnCardButtons(ctx context.Context, h host.Context, settings *CardSettings, _ *Options) (descriptor.Result, error) {
	s := *settings
	buttons := []descriptor.Button{
		{
			Icon: s.Icon,
			Text: "Attach a park",
			Callback: func(ctx context.Context, hc host.Context) error {
				return hc.Popup(ctx, host.PopupArgs{
					Title: "Attach a park",
					Items: catalogItems(s),
					Search: &host.PopupSearch{
						Count:       5,
						Placeholder: "Search national parks",
						Empty:       "No parks found",
						Searching:   "Searching parks...",
					},
				})
			},
		},
		{
			Icon:   s.Icon,
			Text:   "Find a park",
			URL:    s.FindURL,
			Target: "Find a park",
		},
	}
	return descriptor.Answer(buttons), nil
}

// catalogItems builds one searchable popup item per configured park
// code. Selecting an item attaches the park URL to the current card and
// closes the popup.
func catalogItems(s CardSettings) []host.PopupItem {
	items := make([]host.PopupItem, 0, len(s.Parks))
	for _, code := range s.Parks {
		label := parkName(code)
		parkURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(s.BaseURL, "/"), code)
		items = append(items, host.PopupItem{
			Text: label,
			Callback: func(ctx context.Context, hc host.Context) error {
				if err := hc.Attach(ctx, host.Attachment{Name: label, URL: parkURL}); err != nil {
					return err
				}
				return hc.ClosePopup(ctx)
			},
		})
	}
	return items
}

// Register registers both button handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCapability("OnBoardButtons", &registry.RegisteredCapability{
		NewOptions:   func() any { return new(Options) },
		OptionsType:  reflect.TypeOf(Options{}),
		NewSettings:  func() any { return new(BoardSettings) },
		SettingsType: reflect.TypeOf(BoardSettings{}),
		Fn:           m.OnBoardButtons,
	})
	r.RegisterCapability("OnCardButtons", &registry.RegisteredCapability{
		NewOptions:   func() any { return new(Options) },
		OptionsType:  reflect.TypeOf(Options{}),
		NewSettings:  func() any { return new(CardSettings) },
		SettingsType: reflect.TypeOf(CardSettings{}),
		Fn:           m.OnCardButtons,
	})
}
