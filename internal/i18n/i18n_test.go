package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestI18n_LoadAndTranslate(t *testing.T) {
	tr := New("en")
	require.NoError(t, tr.LoadTranslations("locales"))

	assert.Equal(t, "Application not found", tr.T("en", KeyApplicationNotFound))
	assert.Equal(t, "Demande introuvable", tr.T("fr-CA,fr;q=0.9", KeyApplicationNotFound))
	assert.Equal(t, "Application not found", tr.T("de", KeyApplicationNotFound))
	assert.Equal(t, "Invalid request", tr.T("en", KeyValidationInvalid, "request"))
	assert.Equal(t, "missing.key", tr.T("en", "missing.key"))
}

func TestI18n_LocaleFilesShareKeys(t *testing.T) {
	tr := New("en")
	require.NoError(t, tr.LoadTranslations("locales"))

	for key := range tr.translations["en"] {
		_, ok := tr.translations["fr"][key]
		assert.True(t, ok, "fr is missing %s", key)
	}
}

func TestI18n_MissingDirectory(t *testing.T) {
	assert.Error(t, New("en").LoadTranslations("does-not-exist"))
}
