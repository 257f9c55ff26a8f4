package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newLocaleDir(t *testing.T, locales ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, l := range locales {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, l, "LC_MESSAGES"), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("not a locale"), 0644))
	return dir
}

func TestTranslatorLocales(t *testing.T) {
	tr := NewTranslator()
	tr.RegisterDomain("monitoring", newLocaleDir(t, "de_DE", "fr", "tmp.bak"))

	tags, err := tr.Locales("monitoring")
	require.NoError(t, err)
	assert.ElementsMatch(t, []language.Tag{language.MustParse("de-DE"), language.MustParse("fr")}, tags)

	_, err = tr.Locales("missing")
	assert.Error(t, err)

	assert.Equal(t, []string{"monitoring"}, tr.Domains())
}

func TestTranslatorMatch(t *testing.T) {
	tr := NewTranslator()
	tr.RegisterDomain("monitoring", newLocaleDir(t, "de_DE", "fr_FR"))
	tr.RegisterDomain("empty", newLocaleDir(t))

	tag, ok := tr.Match("monitoring", "fr-CH, fr;q=0.9, en;q=0.8")
	require.True(t, ok)
	assert.Equal(t, language.MustParse("fr-FR"), tag)

	_, ok = tr.Match("monitoring", "ja")
	assert.False(t, ok)

	_, ok = tr.Match("empty", "de")
	assert.False(t, ok)
}
