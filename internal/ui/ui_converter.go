package ui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lichvannien/internal/calendar"
	"github.com/tartampluch/go-lichvannien/internal/config"
)

type converterView struct {
	card      *widget.Card
	direction *widget.Label
	day       *NumericalEntry
	month     *NumericalEntry
	year      *NumericalEntry
	convert   *widget.Button
	result    *widget.Label
}

func (app *LichApp) newConverterView() *converterView {
	state := app.Converter.State()

	v := &converterView{
		direction: widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		day:       NewNumericalEntry(config.MaxDigitsDay),
		month:     NewNumericalEntry(config.MaxDigitsMonth),
		year:      NewNumericalEntry(config.MaxDigitsYear),
		result:    widget.NewLabel(""),
	}
	v.result.Wrapping = fyne.TextWrapWord

	v.day.SetPlaceHolder(app.GetMsg(config.TKeyLblDay))
	v.month.SetPlaceHolder(app.GetMsg(config.TKeyLblMonth))
	v.year.SetPlaceHolder(app.GetMsg(config.TKeyLblYear))

	// Rebuilt views keep what was typed before.
	v.day.SetText(state.Day)
	v.month.SetText(state.Month)
	v.year.SetText(state.Year)

	push := func(string) { app.Converter.SetInput(v.day.Text, v.month.Text, v.year.Text) }
	v.day.OnChanged = push
	v.month.OnChanged = push
	v.year.OnChanged = push

	submit := func(string) { _ = app.Converter.Convert() }
	v.year.OnSubmitted = submit

	swap := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSwap), theme.ViewRefreshIcon(), app.Converter.ToggleDirection)
	v.convert = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnConvert), theme.ConfirmIcon(), func() { submit("") })
	v.convert.Importance = widget.HighImportance

	fields := container.NewGridWithColumns(3, v.day, v.month, v.year)
	header := container.NewBorder(nil, nil, nil, swap, v.direction)

	v.card = widget.NewCard(app.GetMsg(config.TKeyConvTitle), "",
		container.NewVBox(header, fields, v.convert, v.result))
	return v
}

// refreshConverter mirrors the converter state. The entries are the source
// of the typed text and are left alone.
func (app *LichApp) refreshConverter() {
	v := app.converterView
	if v == nil {
		return
	}
	state := app.Converter.State()

	if state.Direction == calendar.LunarToSolar {
		v.direction.SetText(app.GetMsg(config.TKeyConvLunarToSolar))
	} else {
		v.direction.SetText(app.GetMsg(config.TKeyConvSolarToLunar))
	}

	if state.Loading {
		v.convert.SetText(app.GetMsg(config.TKeyBtnConverting))
		v.convert.Disable()
	} else {
		v.convert.SetText(app.GetMsg(config.TKeyBtnConvert))
		v.convert.Enable()
	}

	text, importance := converterMessage(state, app.GetMsg, app.GetMsgData)
	v.result.Importance = importance
	v.result.SetText(text)
}

// converterMessage renders the result line of the converter: the converted
// date, a translated validation or request error, or nothing.
func converterMessage(state calendar.ConverterState, msg func(string) string, msgData func(string, map[string]any) string) (string, widget.Importance) {
	switch {
	case state.Loading:
		return "", widget.MediumImportance
	case state.Err != nil:
		return msg(converterErrorKey(state.Err)), widget.DangerImportance
	case state.Result != nil:
		key := config.TKeyConvResultLunar
		if state.Direction == calendar.LunarToSolar {
			key = config.TKeyConvResultSolar
		}
		return msgData(key, map[string]any{"Date": formatConverted(*state.Result)}), widget.SuccessImportance
	default:
		return "", widget.MediumImportance
	}
}

func converterErrorKey(err error) string {
	switch {
	case errors.Is(err, calendar.ErrIncompleteInput):
		return config.TKeyErrIncomplete
	case errors.Is(err, calendar.ErrInvalidNumber):
		return config.TKeyErrInvalidNumber
	default:
		return config.TKeyErrConversion
	}
}

func formatConverted(d calendar.ConvertedDate) string {
	s := fmt.Sprintf("%d/%d/%d", d.Day, d.Month, d.Year)
	if d.CanChi != "" {
		s += " (" + d.CanChi + ")"
	}
	return s
}
