package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-lichvannien/internal/calendar"
	"github.com/tartampluch/go-lichvannien/internal/config"
	"github.com/tartampluch/go-lichvannien/internal/server"
)

//go:embed Icon.svg
var appIconData []byte

// LichApp encapsulates the UI state, preferences, and the calendar state owners.
type LichApp struct {
	App         fyne.App
	MainWindow  fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server *server.FeedServer
	Source calendar.DataSource
	Clock  calendar.Clock

	// State owners. Their hooks may fire on request goroutines; every
	// widget update goes through fyne.Do.
	Coordinator *calendar.Coordinator
	Calendar    *calendar.MonthView
	Converter   *calendar.Converter

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayShowItem     *fyne.MenuItem
	TrayOverviewItem *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string

	calendarView  *calendarView
	detailView    *detailView
	converterView *converterView

	settingsWindow fyne.Window
	overview       *overviewWindow

	// Lunar date of todayDate, cached from the batch of the current month.
	// Owned by the UI goroutine.
	todayDate  time.Time
	todayLabel string
}

// NewLichApp constructs the application and wires the state owners to source.
// A nil clock uses the system time.
func NewLichApp(a fyne.App, ctx context.Context, source calendar.DataSource, srv *server.FeedServer, clock calendar.Clock) *LichApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	if clock == nil {
		clock = calendar.RealClock{}
	}

	app := &LichApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Source:             source,
		Clock:              clock,
		SupportedLanguages: config.SupportedLanguages,
	}

	app.Coordinator = calendar.NewCoordinator(ctx, source, clock)
	app.Calendar = calendar.NewMonthView(ctx, source, clock, app.Coordinator)
	app.Converter = calendar.NewConverter(ctx, source)

	app.Coordinator.OnChange = func() {
		fyne.Do(func() {
			app.refreshDetails()
			app.refreshCalendar()
		})
	}
	app.Calendar.OnChange = func() { fyne.Do(app.refreshCalendar) }
	app.Calendar.OnBatch = app.onBatch
	app.Converter.OnChange = func() { fyne.Do(app.refreshConverter) }

	return app
}

// SetTimeout applies the per-request deadline to every state owner.
func (app *LichApp) SetTimeout(d time.Duration) {
	app.Coordinator.Timeout = d
	app.Calendar.Timeout = d
	app.Converter.Timeout = d
}

// Run launches the feed server, the main window and the first requests, then
// enters the UI loop.
func (app *LichApp) Run() {
	app.SetupI18n()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	app.MainWindow = app.App.NewWindow(app.GetMsg(config.TKeyWinMain))
	app.MainWindow.Resize(fyne.NewSize(config.MainWinWidth, config.MainWinHeight))
	app.MainWindow.SetContent(app.buildMainContent())

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
		// Closing the window keeps the tray alive.
		app.MainWindow.SetCloseIntercept(func() { app.MainWindow.Hide() })
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	go func() {
		ticker := time.NewTicker(config.TrayRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-app.Ctx.Done():
				slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
				fyne.Do(app.App.Quit)
				return
			case <-ticker.C:
				// Catches midnight and month rollover.
				fyne.Do(app.updateTrayStatus)
			}
		}
	}()

	app.Start()
	app.MainWindow.Show()
	app.App.Run()
}

// Start issues the initial details and month requests.
func (app *LichApp) Start() {
	app.Coordinator.Start()
	app.Calendar.Start()
}

// Wait blocks until every in-flight request has settled.
func (app *LichApp) Wait() {
	app.Coordinator.Wait()
	app.Calendar.Wait()
	app.Converter.Wait()
}

// buildMainContent lays out the calendar and converter beside the detail panel.
func (app *LichApp) buildMainContent() fyne.CanvasObject {
	app.calendarView = app.newCalendarView()
	app.detailView = app.newDetailView()
	app.converterView = app.newConverterView()

	app.refreshCalendar()
	app.refreshDetails()
	app.refreshConverter()

	left := container.NewBorder(nil, app.converterView.card, nil, nil, app.calendarView.content)
	split := container.NewHSplit(left, app.detailView.content)
	split.Offset = config.DetailPanelRatio
	return split
}

// onBatch publishes the applied month as the served feed and refreshes the
// tray. It runs on the request goroutine, so the work is handed to the UI
// goroutine where the localizer is owned.
func (app *LichApp) onBatch(month calendar.MonthKey, batch []calendar.DayLunarInfo) {
	fyne.Do(func() { app.publishBatch(month, batch) })
}

func (app *LichApp) publishBatch(month calendar.MonthKey, batch []calendar.DayLunarInfo) {
	labels := calendar.FeedLabels{
		Summary: app.GetMsg(config.TKeyFeedSummary),
		Holiday: app.GetMsg(config.TKeyLegendHoliday),
		GoodDay: app.GetMsg(config.TKeyLegendGoodDay),
	}
	if data, err := calendar.BuildMonthFeed(month, batch, app.Clock.Now(), labels); err != nil {
		slog.Error(config.ErrFeedBuild,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyMonth, month.String(),
			config.LogKeyError, err)
	} else if app.Server != nil {
		app.Server.Update(month, data)
	}

	app.updateTrayStatus()
	if app.overview != nil {
		app.overview.reload()
	}
}

// todayLunarLabel returns the lunar date of now, read from the displayed
// batch when it covers today, else from the last value seen for the same
// calendar day. A cached value from another day is dropped.
func (app *LichApp) todayLunarLabel(now time.Time) string {
	if snap := app.Calendar.Snapshot(); snap.Month == calendar.MonthOf(now) {
		for _, c := range snap.Cells {
			if c.Today && c.Info != nil {
				app.todayDate = c.Date
				app.todayLabel = fmt.Sprintf(config.LunarLabelMonthFormat, c.Info.LunarDay, c.Info.LunarMonth)
				return app.todayLabel
			}
		}
	}
	if !app.todayDate.IsZero() && calendar.IsSameCalendarDay(app.todayDate, now) {
		return app.todayLabel
	}
	app.todayDate = time.Time{}
	app.todayLabel = ""
	return ""
}

// setupTrayMenu constructs the system tray menu.
func (app *LichApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() { app.showMainWindow() })

	app.TrayShowItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuShow), func() { app.showMainWindow() })
	app.TrayOverviewItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuOverview), func() { app.ShowMonthOverview() })
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() { app.ShowSettingsWindow() })

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayShowItem,
		app.TrayOverviewItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
	app.updateTrayStatus()
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *LichApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayShowItem.Label = app.GetMsg(config.TKeyMenuShow)
	app.TrayOverviewItem.Label = app.GetMsg(config.TKeyMenuOverview)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.updateTrayStatus()
}

// updateTrayStatus shows today's lunar date once it is known.
func (app *LichApp) updateTrayStatus() {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	label := app.todayLunarLabel(app.Clock.Now())
	if label == "" {
		app.TrayStatusItem.Label = app.GetMsg(config.TKeyTrayUnknown)
	} else {
		app.TrayStatusItem.Label = app.GetMsgData(config.TKeyTrayToday, map[string]any{"Label": label})
	}
	app.Menu.Refresh()
}

func (app *LichApp) showMainWindow() {
	if app.MainWindow == nil {
		return
	}
	app.MainWindow.Show()
	app.MainWindow.RequestFocus()
}

// relocalize rebuilds every visible surface after a language change.
func (app *LichApp) relocalize() {
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	if app.MainWindow != nil {
		app.MainWindow.SetTitle(app.GetMsg(config.TKeyWinMain))
		app.MainWindow.SetContent(app.buildMainContent())
	}
	if app.overview != nil {
		app.overview.window.SetTitle(app.GetMsg(config.TKeyWinOverview))
		app.overview.reload()
	}
}
