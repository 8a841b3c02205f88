package descriptor

import (
	"time"

	"github.com/vk/powerupgo/internal/host"
)

// Section groups the attachments a capability claims under one title in
// the card's attachment area. Unclaimed attachments must never appear in
// a section.
type Section struct {
	Title   string            `json:"title"`
	Icon    string            `json:"icon,omitempty"`
	Content SectionContent    `json:"content"`
	Claimed []host.Attachment `json:"claimed"`
}

// SectionContent references the sandboxed embedded view rendered inside
// the section.
type SectionContent struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Height int    `json:"height,omitempty"`
}

// Thumbnail enriches the rendering of a single attachment URL.
type Thumbnail struct {
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Image    string    `json:"image,omitempty"`
	OpenText string    `json:"openText,omitempty"`
	Created  time.Time `json:"created,omitzero"`
	Modified time.Time `json:"modified,omitzero"`
	MemberID string    `json:"memberId,omitempty"`
}

// CardStub prefills the host's card-creation form for a recognized URL.
type CardStub struct {
	Name        string `json:"name"`
	Description string `json:"desc,omitempty"`
}

// FormatPair replaces a raw URL in rendered text with an icon and a
// display string.
type FormatPair struct {
	Icon string `json:"icon,omitempty"`
	Text string `json:"text"`
}

// AuthStatus answers the authorization-status extension point.
type AuthStatus struct {
	Authorized bool `json:"authorized"`
}
