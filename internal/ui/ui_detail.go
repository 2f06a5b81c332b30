package ui

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lichvannien/internal/calendar"
	"github.com/tartampluch/go-lichvannien/internal/config"
)

// detailSection is one titled block of the detail panel.
type detailSection struct {
	Title string
	Body  string
}

type detailView struct {
	content fyne.CanvasObject
	header  *widget.Label
	body    *fyne.Container
}

func (app *LichApp) newDetailView() *detailView {
	v := &detailView{
		header: widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		body:   container.NewVBox(),
	}
	v.content = container.NewBorder(v.header, nil, nil, nil, container.NewVScroll(v.body))
	return v
}

// refreshDetails renders the coordinator state: loading, error with retry,
// empty, or the sections of the fetched day.
func (app *LichApp) refreshDetails() {
	v := app.detailView
	if v == nil {
		return
	}
	state := app.Coordinator.State()

	v.header.SetText(app.detailHeader(state.Selected))
	v.body.RemoveAll()

	switch {
	case state.Loading:
		v.body.Add(widget.NewLabel(app.GetMsg(config.TKeyDetailLoading)))
		v.body.Add(widget.NewProgressBarInfinite())
	case state.Err != nil:
		msg := widget.NewLabel(app.GetMsg(config.TKeyDetailError))
		msg.Wrapping = fyne.TextWrapWord
		msg.Importance = widget.DangerImportance
		retry := widget.NewButton(app.GetMsg(config.TKeyBtnRetry), func() {
			app.Coordinator.Select(state.Selected)
		})
		v.body.Add(msg)
		v.body.Add(retry)
	case state.Details == nil:
		v.body.Add(widget.NewLabel(app.GetMsg(config.TKeyDetailEmpty)))
	default:
		for _, s := range detailSections(*state.Details, app.GetMsg) {
			body := widget.NewLabel(s.Body)
			body.Wrapping = fyne.TextWrapWord
			v.body.Add(widget.NewCard("", s.Title, body))
		}
	}
	v.body.Refresh()
}

func (app *LichApp) detailHeader(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return app.GetMsgData(config.TKeyDetailHeader, map[string]any{
		"Weekday": app.GetMsg(config.TKeyWeekdaysLong[date.Weekday()]),
		"Date":    date.Format(config.DateFormatUI),
	})
}

// detailSections lays out the fields of d in display order. Empty lists
// render as the translated "none".
func detailSections(d calendar.DailyDetails, msg func(string) string) []detailSection {
	orNone := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return msg(config.TKeyNone)
		}
		return s
	}
	joined := func(items []string, sep string) string {
		return orNone(strings.Join(items, sep))
	}
	bullets := func(items []string) string {
		if len(items) == 0 {
			return msg(config.TKeyNone)
		}
		lines := make([]string, len(items))
		for i, it := range items {
			lines[i] = config.ListBullet + it
		}
		return strings.Join(lines, "\n")
	}

	return []detailSection{
		{Title: msg(config.TKeySecCanChi), Body: strings.Join([]string{d.DayCanChi, d.MonthCanChi, d.YearCanChi}, "\n")},
		{Title: msg(config.TKeySecSolarDate), Body: formatSolarDate(d.SolarDate)},
		{Title: msg(config.TKeySecLunarDate), Body: formatLunarDate(d.LunarDate, msg(config.TKeyLeapSuffix))},
		{Title: msg(config.TKeySecSolarTerm), Body: orNone(d.SolarTerm)},
		{Title: msg(config.TKeySecDayOfficer), Body: orNone(d.DayOfficer)},
		{Title: msg(config.TKeySecAuspicious), Body: joined(d.AuspiciousHours, config.JoinHours)},
		{Title: msg(config.TKeySecInauspicious), Body: joined(d.InauspiciousHours, config.JoinHours)},
		{Title: msg(config.TKeySecGoodStars), Body: joined(d.GoodStars, config.JoinStars)},
		{Title: msg(config.TKeySecBadStars), Body: joined(d.BadStars, config.JoinStars)},
		{Title: msg(config.TKeySecShouldDo), Body: bullets(d.ShouldDo)},
		{Title: msg(config.TKeySecShouldNotDo), Body: bullets(d.ShouldNotDo)},
	}
}

// formatSolarDate shows an ISO date as dd/mm/yyyy, or as received if it does not parse.
func formatSolarDate(iso string) string {
	t, err := time.Parse(config.DateFormatISO, iso)
	if err != nil {
		return iso
	}
	return t.Format(config.DateFormatUI)
}

func formatLunarDate(d calendar.LunarDate, leapSuffix string) string {
	s := fmt.Sprintf("%d/%d/%d", d.Day, d.Month, d.Year)
	if d.IsLeapMonth {
		s += " " + leapSuffix
	}
	return s
}
