package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lichvannien/internal/calendar"
	"github.com/tartampluch/go-lichvannien/internal/config"
)

var (
	colorHoliday = color.NRGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}
	colorGoodDay = color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
)

// dayCell is one slot of the month grid: a flat button carrying the tap,
// with the solar day, the lunar label and the markers drawn over it.
type dayCell struct {
	root    *fyne.Container
	button  *widget.Button
	solar   *canvas.Text
	lunar   *canvas.Text
	holiday *canvas.Circle
	goodDay *canvas.Circle
	day     int
}

// calendarView is the month panel: navigation header, weekday row and grid.
type calendarView struct {
	content  fyne.CanvasObject
	title    *widget.Label
	loading  *widget.ProgressBarInfinite
	weekdays []*widget.Label
	cells    []*dayCell
}

func (app *LichApp) newCalendarView() *calendarView {
	v := &calendarView{
		title:   widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		loading: widget.NewProgressBarInfinite(),
	}

	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { app.Calendar.NavigateMonth(-1) })
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { app.Calendar.NavigateMonth(1) })
	today := widget.NewButton(app.GetMsg(config.TKeyBtnToday), func() {
		now := app.Clock.Now()
		app.Calendar.ShowMonth(calendar.MonthOf(now))
		app.Coordinator.Select(now)
	})
	header := container.NewBorder(nil, nil, prev, container.NewHBox(today, next), v.title)

	grid := container.NewGridWithColumns(config.DaysPerWeek)
	for wd := 0; wd < config.DaysPerWeek; wd++ {
		lbl := widget.NewLabelWithStyle(app.GetMsg(config.TKeyWeekdays[wd]), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
		if isWeekend(wd) {
			lbl.Importance = widget.DangerImportance
		}
		v.weekdays = append(v.weekdays, lbl)
		grid.Add(lbl)
	}
	for i := 0; i < config.GridSlots; i++ {
		cell := app.newDayCell()
		v.cells = append(v.cells, cell)
		grid.Add(cell.root)
	}

	legend := container.NewHBox(
		layout.NewSpacer(),
		marker(colorHoliday), widget.NewLabel(app.GetMsg(config.TKeyLegendHoliday)),
		marker(colorGoodDay), widget.NewLabel(app.GetMsg(config.TKeyLegendGoodDay)),
	)

	v.content = container.NewBorder(container.NewVBox(header, v.loading), legend, nil, nil, grid)
	return v
}

func (app *LichApp) newDayCell() *dayCell {
	c := &dayCell{
		solar:   canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		lunar:   canvas.NewText("", theme.Color(theme.ColorNamePlaceHolder)),
		holiday: marker(colorHoliday),
		goodDay: marker(colorGoodDay),
	}
	c.solar.TextSize = config.DayTextSize
	c.solar.TextStyle = fyne.TextStyle{Bold: true}
	c.solar.Alignment = fyne.TextAlignCenter
	c.lunar.TextSize = config.LunarTextSize
	c.lunar.Alignment = fyne.TextAlignTrailing

	c.button = widget.NewButton("", func() {
		if c.day > 0 {
			app.Calendar.SelectDay(c.day)
		}
	})

	markers := container.NewHBox(c.holiday, c.goodDay)
	overlay := container.NewBorder(nil, container.NewBorder(nil, nil, markers, c.lunar), nil, nil, c.solar)
	c.root = container.NewStack(c.button, container.NewPadded(overlay))
	return c
}

func marker(fill color.Color) *canvas.Circle {
	dot := canvas.NewCircle(fill)
	dot.Resize(fyne.NewSize(config.MarkerSize, config.MarkerSize))
	return dot
}

// refreshCalendar redraws the panel from the month view snapshot.
func (app *LichApp) refreshCalendar() {
	v := app.calendarView
	if v == nil {
		return
	}
	snap := app.Calendar.Snapshot()

	v.title.SetText(app.GetMsgData(config.TKeyMonthTitle, map[string]any{
		"Month": snap.Month.Month,
		"Year":  snap.Month.Year,
	}))
	if snap.Loading {
		v.loading.Show()
		v.loading.Start()
	} else {
		v.loading.Stop()
		v.loading.Hide()
	}

	for i, cell := range v.cells {
		day := i - snap.FirstWeekday + 1
		if day < 1 || day > snap.DaysInMonth {
			cell.clear()
			continue
		}
		cell.show(snap.Cells[day-1])
	}
}

func (c *dayCell) clear() {
	c.day = 0
	c.button.Hide()
	c.solar.Text = ""
	c.lunar.Text = ""
	c.holiday.Hide()
	c.goodDay.Hide()
	c.solar.Refresh()
	c.lunar.Refresh()
}

func (c *dayCell) show(cell calendar.Cell) {
	c.day = cell.Day
	c.button.Importance = cellImportance(cell)
	c.button.Show()
	c.button.Refresh()

	c.solar.Text = strconv.Itoa(cell.Day)
	c.solar.Color = theme.Color(dayColorName(cell))
	c.lunar.Text = cell.LunarLabel

	if cell.Holiday {
		c.holiday.Show()
	} else {
		c.holiday.Hide()
	}
	if cell.GoodDay {
		c.goodDay.Show()
	} else {
		c.goodDay.Hide()
	}
	c.solar.Refresh()
	c.lunar.Refresh()
}

// cellImportance highlights the selected day first, then today.
func cellImportance(cell calendar.Cell) widget.Importance {
	switch {
	case cell.Selected:
		return widget.HighImportance
	case cell.Today:
		return widget.WarningImportance
	default:
		return widget.LowImportance
	}
}

// dayColorName colors weekends unless the cell background is already emphasized.
func dayColorName(cell calendar.Cell) fyne.ThemeColorName {
	switch {
	case cell.Selected || cell.Today:
		return theme.ColorNameForegroundOnPrimary
	case cell.Weekend:
		return theme.ColorNameError
	default:
		return theme.ColorNameForeground
	}
}

func isWeekend(weekday int) bool {
	return weekday == 0 || weekday == config.DaysPerWeek-1
}
