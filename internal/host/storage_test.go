package host

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckScope(t *testing.T) {
	t.Parallel()

	board := &Board{ID: "b1", Name: "Parks", Organization: "org1"}
	card := &Card{ID: "c1", Name: "Yellowstone"}
	insider := &Member{ID: "m1", Username: "ranger", Organizations: []string{"org1"}}
	outsider := &Member{ID: "m2", Username: "visitor"}

	testCases := []struct {
		name    string
		scope   Scope
		vis     Visibility
		board   *Board
		card    *Card
		member  *Member
		wantErr error
	}{
		{
			name:  "board scope always addressable",
			scope: ScopeBoard, vis: VisibilityShared,
			board: board, member: insider,
		},
		{
			name:  "member scope always addressable",
			scope: ScopeMember, vis: VisibilityPrivate,
			member: outsider,
		},
		{
			name:  "card scope with card",
			scope: ScopeCard, vis: VisibilityShared,
			board: board, card: card, member: insider,
		},
		{
			name:  "card scope without card",
			scope: ScopeCard, vis: VisibilityShared,
			board: board, member: insider,
			wantErr: ErrNoCard,
		},
		{
			name:  "organization scope for an organization member",
			scope: ScopeOrganization, vis: VisibilityShared,
			board: board, member: insider,
		},
		{
			name:  "organization scope for a non-member",
			scope: ScopeOrganization, vis: VisibilityShared,
			board: board, member: outsider,
			wantErr: ErrNotMember,
		},
		{
			name:  "organization scope on a board with no organization",
			scope: ScopeOrganization, vis: VisibilityShared,
			board: &Board{ID: "b2", Name: "Personal"}, member: insider,
			wantErr: ErrNotMember,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := CheckScope(tc.scope, tc.vis, tc.board, tc.card, tc.member)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCheckScope_RejectsUnknownNames(t *testing.T) {
	t.Parallel()

	err := CheckScope(Scope("galaxy"), VisibilityShared, nil, nil, nil)
	assert.ErrorContains(t, err, "unknown storage scope")

	err = CheckScope(ScopeBoard, Visibility("invisible"), nil, nil, nil)
	assert.ErrorContains(t, err, "unknown storage visibility")
}

func TestEncodedSize(t *testing.T) {
	t.Parallel()

	size, err := EncodedSize(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, 2, size, `an empty bucket serializes to "{}"`)

	big := map[string]string{"k": strings.Repeat("v", MaxScopedChars)}
	size, err = EncodedSize(big)
	require.NoError(t, err)
	assert.Greater(t, size, MaxScopedChars)
}
