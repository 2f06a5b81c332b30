package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lichvannien/internal/config"
	"github.com/tartampluch/go-lichvannien/internal/server"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	modelEntry *widget.Entry
	keyEntry   *widget.Entry
	portEntry  *NumericalEntry

	storedKey string
}

// SecretStore is the subset of the keyring used by the settings window.
type SecretStore interface {
	Get(service, user string) (string, error)
	Set(service, user, secret string) error
}

type systemKeyring struct{}

func (systemKeyring) Get(service, user string) (string, error) { return keyring.Get(service, user) }
func (systemKeyring) Set(service, user, secret string) error    { return keyring.Set(service, user, secret) }

// Secrets is where the API key is read and written. Tests replace it.
var Secrets SecretStore = systemKeyring{}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *LichApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgFocusSettings, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenSettings, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := &settingsWidgets{}

	// --- 1. General ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang))

	// --- 2. Gemini ---
	sw.modelEntry = widget.NewEntry()
	sw.modelEntry.SetText(app.Preferences.StringWithFallback(config.PrefModel, config.DefaultModel))
	sw.modelEntry.PlaceHolder = config.DefaultModel

	sw.keyEntry = widget.NewPasswordEntry()
	if key, err := Secrets.Get(config.KeyringService, config.KeyringUser); err == nil {
		sw.storedKey = key
		sw.keyEntry.SetText(key)
	}

	itemModel := widget.NewFormItem(app.GetMsg(config.TKeyLblModel), sw.modelEntry)
	itemModel.HintText = app.GetMsg(config.TKeyHelpModel)
	itemKey := widget.NewFormItem(app.GetMsg(config.TKeyLblAPIKey), sw.keyEntry)
	itemKey.HintText = app.GetMsg(config.TKeyHelpAPIKey)
	geminiCard := widget.NewCard(app.GetMsg(config.TKeyLblGemini), "", widget.NewForm(itemModel, itemKey))

	// --- 3. Feed ---
	sw.portEntry = NewNumericalEntry(config.MaxDigitsPort)
	sw.portEntry.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.portEntry.Validator = func(s string) error { return validatePort(s, app.GetMsg) }

	urlLabel := widget.NewLabel(server.FeedURL(sw.portEntry.Text))
	urlLabel.TextStyle = fyne.TextStyle{Monospace: true}
	sw.portEntry.OnChanged = func(s string) { urlLabel.SetText(server.FeedURL(s)) }

	copyBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCopyURL), theme.ContentCopyIcon(), func() {
		app.App.Clipboard().SetContent(urlLabel.Text)
	})

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.portEntry)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)
	feedCard := widget.NewCard(app.GetMsg(config.TKeyLblFeed), "", container.NewVBox(
		widget.NewForm(itemPort),
		container.NewBorder(nil, nil, nil, copyBtn, urlLabel),
	))

	// --- Actions ---
	saveAction := func() {
		if err := sw.portEntry.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		generalCard,
		geminiCard,
		feedCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// saveSettings persists the form. The language applies immediately; the
// model, key and port are read at startup, so changing them asks for a restart.
func (app *LichApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSave, config.LogKeyComponent, config.CompUISet)

	restart := false

	model := strings.TrimSpace(sw.modelEntry.Text)
	if model == "" {
		model = config.DefaultModel
	}
	if model != app.Preferences.StringWithFallback(config.PrefModel, config.DefaultModel) {
		restart = true
	}
	app.Preferences.SetString(config.PrefModel, model)

	if port := sw.portEntry.Text; port != "" {
		if port != app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort) {
			restart = true
		}
		app.Preferences.SetString(config.PrefServerPort, port)
	}

	if key := strings.TrimSpace(sw.keyEntry.Text); key != "" && key != sw.storedKey {
		if err := Secrets.Set(config.KeyringService, config.KeyringUser, key); err != nil {
			slog.Error(config.ErrKeyringWrite,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUISet)
			app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifKeyError)))
		} else {
			restart = true
		}
	}

	if lang := sw.langSelect.Selected; lang != "" {
		app.Preferences.SetString(config.PrefLanguage, lang)
	}
	app.relocalize()

	if restart {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifRestart)))
	}
}

// validatePort accepts a decimal port in MinPort..MaxPort. Messages are translated through msg.
func validatePort(s string, msg func(string) string) error {
	if s == "" {
		return errors.New(msg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(msg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(msg(config.TKeyErrPortRange))
	}
	return nil
}
