package host

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Scope identifies which host entity owns a stored value.
type Scope string

const (
	ScopeBoard        Scope = "board"
	ScopeCard         Scope = "card"
	ScopeMember       Scope = "member"
	ScopeOrganization Scope = "organization"
)

// Visibility partitions storage at a scope into a tier readable by every
// member and a tier private to the writing user.
type Visibility string

const (
	VisibilityShared  Visibility = "shared"
	VisibilityPrivate Visibility = "private"
)

// MaxScopedChars is the aggregate serialized-size budget for all pairs
// stored at one (scope, visibility) pair. Writes that would exceed it
// must fail, never truncate.
const MaxScopedChars = 4096

var (
	// ErrQuotaExceeded reports a storage write over the MaxScopedChars budget.
	ErrQuotaExceeded = errors.New("scoped storage quota exceeded")

	// ErrNoCard reports card-scoped access without a card in context.
	ErrNoCard = errors.New("no card in context")

	// ErrNotMember reports organization-scoped access by a user who does
	// not belong to the board's organization.
	ErrNotMember = errors.New("active member does not belong to the organization")
)

// ValidScope reports whether s is one of the defined storage scopes.
func ValidScope(s Scope) bool {
	switch s {
	case ScopeBoard, ScopeCard, ScopeMember, ScopeOrganization:
		return true
	}
	return false
}

// ValidVisibility reports whether v is one of the defined visibility tiers.
func ValidVisibility(v Visibility) bool {
	return v == VisibilityShared || v == VisibilityPrivate
}

// CheckScope validates storage addressing against the entities in
// context. Card scope requires a card; organization scope requires the
// active member to belong to the board's organization. Both Context
// implementations enforce the same rules through this helper.
func CheckScope(scope Scope, vis Visibility, board *Board, card *Card, member *Member) error {
	if !ValidScope(scope) {
		return fmt.Errorf("unknown storage scope %q", scope)
	}
	if !ValidVisibility(vis) {
		return fmt.Errorf("unknown storage visibility %q", vis)
	}
	switch scope {
	case ScopeCard:
		if card == nil {
			return ErrNoCard
		}
	case ScopeOrganization:
		if board == nil || board.Organization == "" || member == nil {
			return ErrNotMember
		}
		for _, org := range member.Organizations {
			if org == board.Organization {
				return nil
			}
		}
		return ErrNotMember
	}
	return nil
}

// EncodedSize returns the serialized size, in characters, of a full
// (scope, visibility) bucket. It is the measure the MaxScopedChars budget
// is enforced against, shared by every Context implementation.
func EncodedSize(pairs map[string]string) (int, error) {
	if len(pairs) == 0 {
		return 0, nil
	}
	raw, err := json.Marshal(pairs)
	if err != nil {
		return 0, fmt.Errorf("failed to measure scoped storage bucket: %w", err)
	}
	return len(raw), nil
}
