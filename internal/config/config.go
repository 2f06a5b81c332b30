package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP clients of the application.
var UserAgent = "Go-LichVanNien/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Lịch Vạn Niên"
	AppID             = "com.github.tartampluch.go-lichvannien"
	KeyringService    = "com.github.tartampluch.go-lichvannien"
	KeyringUser       = "gemini-api-key"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	ChannelBufferSize = 1

	// TrayRefreshInterval re-evaluates the tray status line so today's lunar
	// date follows midnight.
	TrayRefreshInterval = time.Minute
)

// -----------------------------------------------------------------------------
// CLI Flags, Environment & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagStoreKey     = "store-key"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescStoreKey = "Prompt for the Gemini API key, save it in the system keyring and exit"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgKeyPrompt     = "Gemini API key: "
	MsgKeyStored     = "API key saved to the system keyring."

	// EnvGeminiKey is checked first, EnvAPIKey is the legacy name.
	EnvGeminiKey = "GEMINI_API_KEY"
	EnvAPIKey    = "API_KEY"
)

// -----------------------------------------------------------------------------
// Preferences & Defaults
// -----------------------------------------------------------------------------

const (
	PrefLanguage   = "language"
	PrefModel      = "model"
	PrefServerPort = "server_port"
	PrefLastRun    = "last_run_version"

	DefaultLanguage = "vi"
	DefaultModel    = "gemini-2.5-flash"
	DefaultPort     = "18088"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"vi", "en"}

// -----------------------------------------------------------------------------
// UI Layout
// -----------------------------------------------------------------------------

const (
	IconFile = "Icon.svg"

	MainWinWidth        = 1000
	MainWinHeight       = 660
	SettingsWindowWidth = 520
	OverviewWinWidth    = 520
	OverviewWinHeight   = 520
	LayoutColumnsDouble = 2
	DetailPanelRatio    = 0.55

	// GridSlots covers six weeks, enough for any month and offset.
	GridSlots = 42

	DayTextSize   = 16
	LunarTextSize = 10
	MarkerSize    = 6

	MaxDigitsDay   = 2
	MaxDigitsMonth = 2
	MaxDigitsYear  = 4
	MaxDigitsPort  = 5

	ListBullet   = "• "
	JoinHours    = " | "
	JoinStars    = ", "
	JoinMarkers  = " · "
	DateFormatUI = "02/01/2006"
)

// -----------------------------------------------------------------------------
// Month Overview Table
// -----------------------------------------------------------------------------

const (
	ColIDSolar   = 0
	ColIDLunar   = 1
	ColIDMarkers = 2
	ColCount     = 3

	ColWidthSolar   = 160
	ColWidthLunar   = 120
	ColWidthMarkers = 180

	SortIconAsc      = " ▲"
	SortIconDesc     = " ▼"
	TablePlaceholder = "Placeholder"
)

// -----------------------------------------------------------------------------
// Localization Keys (i18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinMain      = "win_main_title"
	TKeyWinSettings  = "win_settings_title"
	TKeyWinOverview  = "win_overview_title"
	TKeyMenuShow     = "menu_show"
	TKeyMenuOverview = "menu_overview"
	TKeyMenuSettings = "menu_settings"
	TKeyTrayToday    = "tray_today" // Requires Label
	TKeyTrayUnknown  = "tray_today_unknown"

	// Calendar panel
	TKeyMonthTitle    = "month_title" // Requires Month, Year
	TKeyBtnToday      = "btn_today"
	TKeyLegendHoliday = "legend_holiday"
	TKeyLegendGoodDay = "legend_good_day"
	TKeyFeedSummary   = "feed_summary" // Printf format, one %s for the lunar label

	// Detail panel
	TKeyDetailHeader    = "detail_header" // Requires Weekday, Date
	TKeyDetailLoading   = "detail_loading"
	TKeyDetailError     = "detail_error"
	TKeyDetailEmpty     = "detail_empty"
	TKeyBtnRetry        = "btn_retry"
	TKeySecCanChi       = "sec_can_chi"
	TKeySecSolarDate    = "sec_solar_date"
	TKeySecLunarDate    = "sec_lunar_date"
	TKeyLeapSuffix      = "leap_suffix"
	TKeySecSolarTerm    = "sec_solar_term"
	TKeySecDayOfficer   = "sec_day_officer"
	TKeySecAuspicious   = "sec_auspicious_hours"
	TKeySecInauspicious = "sec_inauspicious_hours"
	TKeySecGoodStars    = "sec_good_stars"
	TKeySecBadStars     = "sec_bad_stars"
	TKeySecShouldDo     = "sec_should_do"
	TKeySecShouldNotDo  = "sec_should_not_do"
	TKeyNone            = "none"

	// Converter
	TKeyConvTitle        = "conv_title"
	TKeyConvSolarToLunar = "conv_solar_to_lunar"
	TKeyConvLunarToSolar = "conv_lunar_to_solar"
	TKeyBtnSwap          = "btn_swap_direction"
	TKeyLblDay           = "lbl_day"
	TKeyLblMonth         = "lbl_month"
	TKeyLblYear          = "lbl_year"
	TKeyBtnConvert       = "btn_convert"
	TKeyBtnConverting    = "btn_converting"
	TKeyConvResultLunar  = "conv_result_lunar" // Requires Date
	TKeyConvResultSolar  = "conv_result_solar" // Requires Date
	TKeyErrIncomplete    = "err_incomplete_input"
	TKeyErrInvalidNumber = "err_invalid_number"
	TKeyErrConversion    = "err_conversion"

	// Month overview
	TKeyColSolar   = "col_solar_date"
	TKeyColLunar   = "col_lunar_date"
	TKeyColMarkers = "col_markers"

	// Settings
	TKeyLblGeneral    = "lbl_general"
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblGemini     = "lbl_gemini"
	TKeyLblModel      = "lbl_model"
	TKeyHelpModel     = "help_model"
	TKeyLblAPIKey     = "lbl_api_key"
	TKeyHelpAPIKey    = "help_api_key"
	TKeyLblFeed       = "lbl_feed"
	TKeyLblPort       = "lbl_server_port"
	TKeyHelpPort      = "help_port"
	TKeyBtnCopyURL    = "btn_copy_url"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblFooter     = "lbl_footer"
	TKeyNotifRestart  = "notif_restart"
	TKeyNotifKeyError = "notif_key_error"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// TKeyWeekdays are indexed by time.Weekday (Sunday first).
var TKeyWeekdays = [DaysPerWeek]string{
	"weekday_sun", "weekday_mon", "weekday_tue", "weekday_wed",
	"weekday_thu", "weekday_fri", "weekday_sat",
}

// TKeyWeekdaysLong are the full names used in the detail header.
var TKeyWeekdaysLong = [DaysPerWeek]string{
	"weekday_long_sun", "weekday_long_mon", "weekday_long_tue", "weekday_long_wed",
	"weekday_long_thu", "weekday_long_fri", "weekday_long_sat",
}

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackTrayLabel = AppName
	TitleStartupError = AppName + ": startup error"
	MsgPortBusy       = "Could not start the feed server on port %s."
)

// -----------------------------------------------------------------------------
// Calendar Rules
// -----------------------------------------------------------------------------

const (
	MonthsPerYear = 12
	DaysPerWeek   = 7

	// LunarMonthStart is the lunar day on which the month number is shown.
	LunarMonthStart = 1

	LunarLabelFormat      = "%d"
	LunarLabelMonthFormat = "%d/%d"
	LunarPlaceholder      = "..."

	DateFormatISO   = "2006-01-02"
)

// -----------------------------------------------------------------------------
// Gemini
// -----------------------------------------------------------------------------

const (
	MimeJSON = "application/json"

	// MaxResponseSize caps the HTTP body read for one completion; the
	// transport fails the read past it.
	MaxResponseSize = 1 * 1024 * 1024

	FieldSolarDate         = "solarDate"
	FieldLunarDate         = "lunarDate"
	FieldDay               = "day"
	FieldMonth             = "month"
	FieldYear              = "year"
	FieldIsLeapMonth       = "isLeapMonth"
	FieldDayCanChi         = "dayCanChi"
	FieldMonthCanChi       = "monthCanChi"
	FieldYearCanChi        = "yearCanChi"
	FieldSolarTerm         = "solarTerm"
	FieldDayOfficer        = "dayOfficer"
	FieldAuspiciousHours   = "auspiciousHours"
	FieldInauspiciousHours = "inauspiciousHours"
	FieldGoodStars         = "goodStars"
	FieldBadStars          = "badStars"
	FieldShouldDo          = "shouldDo"
	FieldShouldNotDo       = "shouldNotDo"
	FieldSolarDay          = "solarDay"
	FieldLunarDay          = "lunarDay"
	FieldLunarMonth        = "lunarMonth"
	FieldIsHoliday         = "isHoliday"
	FieldIsGoodDay         = "isGoodDay"
	FieldCanChi            = "canChi"

	// Operation names used in logs.
	OpDailyDetails = "daily_details"
	OpLunarMonth   = "lunar_month"
	OpSolarToLunar = "solar_to_lunar"
	OpLunarToSolar = "lunar_to_solar"

	// Accepted ranges of decoded values.
	MinLunarDay   = 1
	MaxLunarDay   = 30
	MaxSolarDay   = 31
	MinMonth      = 1
	MaxLunarMonth = 12
)

// -----------------------------------------------------------------------------
// iCalendar Feed
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Lich Van Nien//Lunar Feed//VI"
	ICalCalName = "Lịch Âm"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "lichvannien"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"
	PropCategories = "CATEGORIES"

	DefaultICalRefresh = 1 * time.Hour

	UIDSalt         = "go-lichvannien-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%d|%d|%s"
	FormatUID       = "%s@%s"

	FeedFileFormat = "lich-am-%s.ics"

	// StubVCalendar is the minimal valid iCalendar object served for an empty month.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	// HTTPTimeout bounds one completion round trip at the transport level.
	HTTPTimeout = 90 * time.Second

	// RequestTimeout is the per-operation deadline applied by the state owners.
	RequestTimeout = 2 * time.Minute

	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	RouteFeed          = "/lunar.ics"
	AddrSeparator      = ":"

	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
	HeaderCacheControl       = "Cache-Control"
	HeaderETag               = "ETag"
	HeaderLastModified       = "Last-Modified"
	HeaderRetryAfter         = "Retry-After"
	HeaderAllow              = "Allow"
	HeaderXContentType       = "X-Content-Type-Options"
	HeaderUserAgent          = "User-Agent"
	HeaderIfNoneMatch        = "If-None-Match"
	HeaderIfModifiedSince    = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	FormatETag               = `"%s"`
	FormatContentDisposition = `inline; filename="%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrCredentialMissing = "configuration error: Gemini API key not set (" + EnvGeminiKey + ", " + EnvAPIKey + " or keyring)"
	ErrModelEmpty        = "configuration error: model name is empty"
	ErrKeyringRead       = "failed to read API key from keyring"
	ErrKeyringWrite      = "failed to save API key to keyring"
	ErrKeyEmpty          = "API key cannot be empty"
	ErrKeyPrompt         = "failed to read API key from terminal"
	ErrClientInit        = "failed to initialize Gemini client"
	ErrGenerate          = "completion request failed"
	ErrEmptyResponse     = "completion returned no text"
	ErrResponseTooLarge  = "completion exceeds the response size limit"
	ErrDecode            = "malformed completion payload"
	ErrFieldMissing      = "required field missing"
	ErrFieldInvalid      = "field has an invalid value"
	ErrDetailsFetch      = "daily details unavailable"
	ErrMonthFetch        = "lunar month data unavailable"
	ErrConversion        = "date conversion failed"
	ErrIncompleteInput   = "day, month and year are required"
	ErrInvalidNumber     = "day, month and year must be whole numbers"
	ErrServerStartup     = "server startup failed"
	ErrServerShutdown    = "server shutdown failed"
	ErrPortRequired      = "server port is required"
	ErrICalEncode        = "failed to encode iCalendar data"
	ErrLogFile           = "failed to open log file"
	ErrCacheDir          = "could not determine user cache dir"
	ErrCreateDir         = "could not create app cache dir"
	ErrAppFailed         = "application failed unexpectedly"
	ErrWriteResp         = "failed to write response body"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
	ErrTrayNotSupported  = "system tray not supported on this platform/driver"
	ErrFeedBuild         = "failed to build month feed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Lunar feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Lunar feed cache updated"
	MsgMonthRequested = "Requesting lunar month data"
	MsgMonthApplied   = "Lunar month data applied"
	MsgMonthStale     = "Discarding stale lunar month response"
	MsgMonthFailed    = "Lunar month data unavailable, showing solar days only"
	MsgDetailsReq     = "Requesting daily details"
	MsgDetailsStale   = "Discarding stale daily details response"
	MsgDetailsFailed  = "Daily details request failed"
	MsgConvertReq     = "Requesting date conversion"
	MsgConvertFailed  = "Date conversion failed"
	MsgCompletionDone = "Completion received"
	MsgSkippedDay     = "Skipping malformed lunar day entry"
	MsgCompletionReq  = "Requesting completion"
	MsgClientReady    = "Gemini client initialized"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgKeyFromEnv     = "API key loaded from environment"
	MsgKeyFromRing    = "API key loaded from keyring"
	MsgSettingsSave   = "Saving preferences"
	MsgOpenSettings   = "Opening settings window"
	MsgFocusSettings  = "Settings window already open, requesting focus"
	MsgOpenOverview   = "Opening month overview window"
	MsgOverviewSorted = "Month overview sorted"
	MsgFeedBuilt      = "Month feed generated"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyModel     = "model"
	LogKeyMonth     = "month"
	LogKeyDate      = "date"
	LogKeyDirection = "direction"
	LogKeyGen       = "generation"
	LogKeyCount     = "count"
	LogKeyField     = "field"
	LogKeyValue     = "value"
	LogKeySource    = "source"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyDuration  = "duration_ms"
	LogKeyOperation = "operation"

	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyBuiltAt = "built_at"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompCalendar = "calendar"
	CompDetails  = "details"
	CompConvert  = "converter"
	CompGemini   = "gemini"
	CompServer   = "server"
	CompFeed     = "feed"
	CompMain     = "main"
	CompI18n     = "i18n"
)
