// Package attachments implements the attachment-sections and
// attachment-thumbnail extension points. A single claim predicate, a URL
// prefix from the manifest, decides which attachments this Power-Up owns;
// everything else is left to the host's default rendering.
package attachments

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"reflect"
	"strings"

	"github.com/vk/powerupgo/internal/descriptor"
	"github.com/vk/powerupgo/internal/host"
	"github.com/vk/powerupgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// SectionsOptions is the host payload for attachment-sections.
type SectionsOptions struct {
	Entries []host.Attachment `json:"entries"`
}

// ThumbnailOptions is the host payload for attachment-thumbnail.
type ThumbnailOptions struct {
	URL string `json:"url"`
}

// Settings are the manifest-tunable knobs shared by both handlers.
type Settings struct {
	ClaimPrefix    string `pup:"claim_prefix"`
	SectionTitle   string `pup:"section_title"`
	SectionURL     string `pup:"section_url"`
	SectionHeight  int    `pup:"section_height"`
	Icon           string `pup:"icon"`
	ThumbnailImage string `pup:"thumbnail_image"`
}

// claims reports whether this Power-Up owns the attachment URL.
func (s *Settings) claims(rawURL string) bool {
	return strings.HasPrefix(rawURL, s.ClaimPrefix)
}

// OnAttachmentSections groups claimed attachments under one section. An
// entry list with no claimed attachment yields an empty sequence, never
// an error, and unclaimed attachments never appear in any section.
func (m *Module) OnAttachmentSections(ctx context.Context, h host.Context, settings *Settings, opts *SectionsOptions) (descriptor.Result, error) {
	var claimed []host.Attachment
	for _, att := range opts.Entries {
		if settings.claims(att.URL) {
			claimed = append(claimed, att)
		}
	}
	if len(claimed) == 0 {
		return descriptor.Answer([]descriptor.Section{}), nil
	}

	signed, err := h.SignURL(settings.SectionURL)
	if err != nil {
		return descriptor.Result{}, fmt.Errorf("failed to sign section view URL: %w", err)
	}

	return descriptor.Answer([]descriptor.Section{{
		Title: settings.SectionTitle,
		Icon:  settings.Icon,
		Content: descriptor.SectionContent{
			Type:   "iframe",
			URL:    signed,
			Height: settings.SectionHeight,
		},
		Claimed: claimed,
	}}), nil
}

// OnAttachmentThumbnail enriches a claimed attachment URL and declines
// for everything else, deferring to the host's default rendering.
func (m *Module) OnAttachmentThumbnail(ctx context.Context, h host.Context, settings *Settings, opts *ThumbnailOptions) (descriptor.Result, error) {
	if !settings.claims(opts.URL) {
		return descriptor.Decline(), nil
	}

	title := settings.SectionTitle
	if u, err := url.Parse(opts.URL); err == nil && path.Base(u.Path) != "/" && path.Base(u.Path) != "." {
		title = fmt.Sprintf("%s — %s", settings.SectionTitle, path.Base(u.Path))
	}

	thumb := descriptor.Thumbnail{
		URL:      opts.URL,
		Title:    title,
		Image:    settings.ThumbnailImage,
		OpenText: "Open in National Park Service",
	}
	if member, err := h.Member(ctx); err == nil {
		thumb.MemberID = member.ID
	}
	return descriptor.Answer(thumb), nil
}

// Register registers both attachment handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCapability("OnAttachmentSections", &registry.RegisteredCapability{
		NewOptions:   func() any { return new(SectionsOptions) },
		OptionsType:  reflect.TypeOf(SectionsOptions{}),
		NewSettings:  func() any { return new(Settings) },
		SettingsType: reflect.TypeOf(Settings{}),
		Fn:           m.OnAttachmentSections,
	})
	r.RegisterCapability("OnAttachmentThumbnail", &registry.RegisteredCapability{
		NewOptions:   func() any { return new(ThumbnailOptions) },
		OptionsType:  reflect.TypeOf(ThumbnailOptions{}),
		NewSettings:  func() any { return new(Settings) },
		SettingsType: reflect.TypeOf(Settings{}),
		Fn:           m.OnAttachmentThumbnail,
	})
}
