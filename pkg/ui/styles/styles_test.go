package styles_test

import (
	"testing"

	"github.com/arthur-debert/relink/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStyles(t *testing.T) {
	for _, name := range []string{"Banner", "Linking", "Unlinking", "Kind", "Name", "Detail", "Warning", "Error", "Success", "FilePath"} {
		t.Run(name, func(t *testing.T) {
			_, ok := styles.Registry[name]
			assert.True(t, ok, "style %s should be defined", name)
		})
	}
}

func TestEmbeddedStyles_OnlyUsedNames(t *testing.T) {
	for _, name := range []string{"Subtitle", "Rule", "Indent"} {
		_, ok := styles.Registry[name]
		assert.False(t, ok, "style %s is not used by the printer", name)
	}
}

func TestGetUnknownStyle(t *testing.T) {
	assert.Equal(t, "plain", styles.Get("NoSuchStyle").Render("plain"))
}

func TestLoadFromData(t *testing.T) {
	t.Cleanup(styles.Reset)

	err := styles.LoadFromData([]byte(`
colors:
  blue:
    light: "#0000AA"
    dark: "#5555FF"
styles:
  Custom:
    italic: true
    foreground: blue
`))
	require.NoError(t, err)
	_, ok := styles.Registry["Custom"]
	assert.True(t, ok)
	_, ok = styles.Registry["Banner"]
	assert.False(t, ok)

	assert.Error(t, styles.LoadFromData([]byte("styles: [")))
}
