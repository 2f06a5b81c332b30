package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lichvannien/internal/config"
)

var localeFiles = []string{"active.vi.json", "active.en.json"}

func loadLocale(t *testing.T, name string) map[string]any {
	t.Helper()

	// Adjust path if running test from internal/ui or root
	path := filepath.Join("locales", name)
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		path = filepath.Join("..", "..", "internal", "ui", "locales", name)
		content, err = os.ReadFile(path)
	}
	require.NoErrorf(t, err, "Must load %s", name)

	var m map[string]any
	require.NoErrorf(t, json.Unmarshal(content, &m), "%s must be valid JSON", name)
	return m
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// actually exists in every locale file.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyWinMain,
		config.TKeyWinSettings,
		config.TKeyWinOverview,
		config.TKeyMenuShow,
		config.TKeyMenuOverview,
		config.TKeyMenuSettings,
		config.TKeyTrayToday,
		config.TKeyTrayUnknown,
		config.TKeyMonthTitle,
		config.TKeyBtnToday,
		config.TKeyLegendHoliday,
		config.TKeyLegendGoodDay,
		config.TKeyFeedSummary,
		config.TKeyDetailHeader,
		config.TKeyDetailLoading,
		config.TKeyDetailError,
		config.TKeyDetailEmpty,
		config.TKeyBtnRetry,
		config.TKeySecCanChi,
		config.TKeySecSolarDate,
		config.TKeySecLunarDate,
		config.TKeyLeapSuffix,
		config.TKeySecSolarTerm,
		config.TKeySecDayOfficer,
		config.TKeySecAuspicious,
		config.TKeySecInauspicious,
		config.TKeySecGoodStars,
		config.TKeySecBadStars,
		config.TKeySecShouldDo,
		config.TKeySecShouldNotDo,
		config.TKeyNone,
		config.TKeyConvTitle,
		config.TKeyConvSolarToLunar,
		config.TKeyConvLunarToSolar,
		config.TKeyBtnSwap,
		config.TKeyLblDay,
		config.TKeyLblMonth,
		config.TKeyLblYear,
		config.TKeyBtnConvert,
		config.TKeyBtnConverting,
		config.TKeyConvResultLunar,
		config.TKeyConvResultSolar,
		config.TKeyErrIncomplete,
		config.TKeyErrInvalidNumber,
		config.TKeyErrConversion,
		config.TKeyColSolar,
		config.TKeyColLunar,
		config.TKeyColMarkers,
		config.TKeyLblGeneral,
		config.TKeyLblLanguage,
		config.TKeyHelpLanguage,
		config.TKeyLblGemini,
		config.TKeyLblModel,
		config.TKeyHelpModel,
		config.TKeyLblAPIKey,
		config.TKeyHelpAPIKey,
		config.TKeyLblFeed,
		config.TKeyLblPort,
		config.TKeyHelpPort,
		config.TKeyBtnCopyURL,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyLblFooter,
		config.TKeyNotifRestart,
		config.TKeyNotifKeyError,
		config.TKeyErrPortReq,
		config.TKeyErrPortNum,
		config.TKeyErrPortRange,
	}
	keysToCheck = append(keysToCheck, config.TKeyWeekdays[:]...)
	keysToCheck = append(keysToCheck, config.TKeyWeekdaysLong[:]...)

	definedKeys := make(map[string]bool, len(keysToCheck))
	for _, k := range keysToCheck {
		definedKeys[k] = true
	}

	for _, file := range localeFiles {
		t.Run(file, func(t *testing.T) {
			jsonMap := loadLocale(t, file)

			for key := range definedKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in %s", key, file)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				assert.Truef(t, definedKeys[jsonKey], "Key '%s' in %s is not defined in config.go", jsonKey, file)
			}
		})
	}
}

// TestI18nPrintfKeys guards the keys that are formatted with fmt rather than templates.
func TestI18nPrintfKeys(t *testing.T) {
	for _, file := range localeFiles {
		jsonMap := loadLocale(t, file)
		for _, key := range []string{config.TKeyFeedSummary, config.TKeyLblFooter} {
			v, _ := jsonMap[key].(string)
			assert.Equalf(t, 1, strings.Count(v, "%s"), "%s in %s needs exactly one %%s", key, file)
		}
	}
}
