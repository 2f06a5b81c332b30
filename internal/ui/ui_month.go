package ui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lichvannien/internal/calendar"
	"github.com/tartampluch/go-lichvannien/internal/config"
)

// overviewRow is one day of the month overview table.
type overviewRow struct {
	Cell    calendar.Cell
	Solar   string
	Lunar   string
	Markers string
}

type overviewWindow struct {
	window fyne.Window
	reload func()
}

// ShowMonthOverview displays the displayed month as a sortable table.
// It implements a singleton pattern: if the window is already open, it requests focus.
func (app *LichApp) ShowMonthOverview() {
	if app.overview != nil {
		app.overview.window.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinOverview))
	w.Resize(fyne.NewSize(config.OverviewWinWidth, config.OverviewWinHeight))

	slog.Info(config.MsgOpenOverview,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyMonth, app.Calendar.Month().String())

	sortCol := config.ColIDSolar
	sortAsc := true
	var rows []overviewRow

	table := widget.NewTable(
		func() (int, int) {
			return len(rows), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(rows) {
				return
			}
			r := rows[id.Row]
			switch id.Col {
			case config.ColIDSolar:
				label.SetText(r.Solar)
			case config.ColIDLunar:
				label.SetText(r.Lunar)
			case config.ColIDMarkers:
				label.SetText(r.Markers)
			}
		},
	)

	ov := &overviewWindow{window: w}
	ov.reload = func() {
		rows = app.overviewRows()
		sortOverview(rows, sortCol, sortAsc)
		table.Refresh()
	}

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.TablePlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDSolar:
			titleKey = config.TKeyColSolar
		case config.ColIDLunar:
			titleKey = config.TKeyColLunar
		case config.ColIDMarkers:
			titleKey = config.TKeyColMarkers
		}

		text := app.GetMsg(titleKey)
		if id.Col == sortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if sortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				sortCol = id.Col
				sortAsc = true
			}
			slog.Debug(config.MsgOverviewSorted,
				config.LogKeyComponent, config.CompUI,
				config.LogKeySortCol, sortCol,
				config.LogKeySortAsc, sortAsc)
			ov.reload()
		}
	}
	table.OnSelected = func(id widget.TableCellID) {
		if id.Row >= 0 && id.Row < len(rows) {
			app.Calendar.SelectDay(rows[id.Row].Cell.Day)
		}
		table.UnselectAll()
	}

	table.SetColumnWidth(config.ColIDSolar, config.ColWidthSolar)
	table.SetColumnWidth(config.ColIDLunar, config.ColWidthLunar)
	table.SetColumnWidth(config.ColIDMarkers, config.ColWidthMarkers)

	app.overview = ov
	ov.reload()

	w.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	w.SetOnClosed(func() { app.overview = nil })
	w.Show()
}

// overviewRows builds one row per day of the displayed month.
func (app *LichApp) overviewRows() []overviewRow {
	snap := app.Calendar.Snapshot()
	rows := make([]overviewRow, 0, len(snap.Cells))
	for _, c := range snap.Cells {
		rows = append(rows, overviewRow{
			Cell:    c,
			Solar:   app.GetMsg(config.TKeyWeekdays[c.Weekday]) + " " + c.Date.Format(config.DateFormatUI),
			Lunar:   overviewLunar(c),
			Markers: app.overviewMarkers(c),
		})
	}
	return rows
}

func overviewLunar(c calendar.Cell) string {
	if c.Info == nil {
		return c.LunarLabel
	}
	return fmt.Sprintf(config.LunarLabelMonthFormat, c.Info.LunarDay, c.Info.LunarMonth)
}

func (app *LichApp) overviewMarkers(c calendar.Cell) string {
	var parts []string
	if c.Holiday {
		parts = append(parts, app.GetMsg(config.TKeyLegendHoliday))
	}
	if c.GoodDay {
		parts = append(parts, app.GetMsg(config.TKeyLegendGoodDay))
	}
	return strings.Join(parts, config.JoinMarkers)
}

// sortOverview orders rows by the given column. Days without lunar data
// sort after the others; ties fall back to the solar day.
func sortOverview(rows []overviewRow, col int, asc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool
		switch col {
		case config.ColIDLunar:
			switch {
			case a.Cell.Info == nil || b.Cell.Info == nil:
				less = a.Cell.Info != nil && b.Cell.Info == nil
			case a.Cell.Info.LunarMonth != b.Cell.Info.LunarMonth:
				less = lunarMonthOrder(a.Cell.Info.LunarMonth, rows) < lunarMonthOrder(b.Cell.Info.LunarMonth, rows)
			case a.Cell.Info.LunarDay != b.Cell.Info.LunarDay:
				less = a.Cell.Info.LunarDay < b.Cell.Info.LunarDay
			default:
				less = a.Cell.Day < b.Cell.Day
			}
		case config.ColIDMarkers:
			if a.Markers == b.Markers {
				less = a.Cell.Day < b.Cell.Day
			} else {
				less = strings.ToLower(a.Markers) < strings.ToLower(b.Markers)
			}
		default: // config.ColIDSolar
			less = a.Cell.Day < b.Cell.Day
		}

		if !asc {
			return !less
		}
		return less
	})
}

// lunarMonthOrder ranks a lunar month by its first solar day in the month so
// that a 12 to 1 rollover around Tết keeps chronological order.
func lunarMonthOrder(month int, rows []overviewRow) int {
	first := config.MaxSolarDay + 1
	for _, r := range rows {
		if r.Cell.Info != nil && r.Cell.Info.LunarMonth == month && r.Cell.Day < first {
			first = r.Cell.Day
		}
	}
	return first
}
