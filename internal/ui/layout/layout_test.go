package layout

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestRenderHeader(t *testing.T) {
	header := RenderHeader("Activities", "kid@example.com", 80)
	assert.Contains(t, header, "Be+")
	assert.Contains(t, header, "Activities")
	assert.Contains(t, header, "kid@example.com")
	assert.Equal(t, HeaderHeight, lipgloss.Height(header))

	assert.Contains(t, RenderHeader("Home", "", 80), "signed out")
}

func TestRenderFooter(t *testing.T) {
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	assert.Contains(t, footer, "Esc")
	assert.Contains(t, footer, "Back")
	assert.Equal(t, FooterHeight, lipgloss.Height(footer))
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}
