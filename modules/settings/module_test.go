package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/powerupgo/internal/hostmem"
)

func TestOnShowSettings_OpensPopup(t *testing.T) {
	t.Parallel()

	m := &Module{}
	h := hostmem.New()
	result, err := m.OnShowSettings(context.Background(), h, &Settings{SettingsURL: "./views/settings.html", Height: 184}, nil)
	require.NoError(t, err)
	assert.True(t, result.Answered())
	assert.Nil(t, result.Value())

	actions := h.Actions()
	require.Len(t, actions, 1)
	require.Equal(t, hostmem.ActionPopup, actions[0].Kind)
	assert.Equal(t, "Power-Up settings", actions[0].Popup.Title)
	assert.Equal(t, "./views/settings.html", actions[0].Popup.URL)
	assert.Equal(t, 184, actions[0].Popup.Height)
}
