package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	require.NoError(t, Initialize("en", ""))

	assert.Equal(t, "Your session has expired. Please log in again.", T("en", KeyAuthSessionExpired))
	assert.Equal(t, "iPhone 13 is already listed on Vivo Y20 (Phone Case)",
		T("en", KeyDeviceConflict, "iPhone 13", "Vivo Y20", "Phone Case"))
	assert.Equal(t, "產品已刪除", T("zh_TW", KeyProductDeleted))

	// unknown language falls back to the default
	assert.Equal(t, "Delete failed", T("fr", KeyProductDeleteFail))
	// unknown key comes back verbatim
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))

	assert.ElementsMatch(t, []string{"en", "zh_TW"}, GetSupportedLanguages())
}
