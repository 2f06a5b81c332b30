package calendar

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-lichvannien/internal/config"
)

// FeedLabels holds the localized texts of feed events.
type FeedLabels struct {
	Summary string // Format with the lunar label, e.g. "Âm lịch %s".
	Holiday string
	GoodDay string
}

// DefaultFeedLabels are the Vietnamese labels.
var DefaultFeedLabels = FeedLabels{
	Summary: "Âm lịch %s",
	Holiday: "Ngày lễ",
	GoodDay: "Ngày tốt",
}

// BuildMonthFeed renders the lunar annotations of month as an iCalendar feed,
// one all-day event per annotated solar day. An empty batch yields a valid
// empty calendar.
func BuildMonthFeed(month MonthKey, batch []DayLunarInfo, now time.Time, labels FeedLabels) ([]byte, error) {
	if labels.Summary == "" {
		labels = DefaultFeedLabels
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	seen := make(map[int]bool, len(batch))
	for _, info := range batch {
		if !month.Contains(info.SolarDay) || seen[info.SolarDay] {
			continue
		}
		seen[info.SolarDay] = true

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, feedUID(month, info))

		summary := fmt.Sprintf(labels.Summary, LunarLabel(info))
		var categories []string
		if info.IsHoliday {
			categories = append(categories, labels.Holiday)
		}
		if info.IsGoodDay {
			categories = append(categories, labels.GoodDay)
		}
		if len(categories) > 0 {
			summary += " · " + strings.Join(categories, " · ")
			event.Props.SetText(config.PropCategories, strings.Join(categories, ","))
		}
		event.Props.SetText(config.PropSummary, summary)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(month.Date(info.SolarDay, time.UTC))
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedBuilt,
		config.LogKeyComponent, config.CompFeed,
		config.LogKeyMonth, month.String(),
		config.LogKeyCount, len(cal.Children))
	return buf.Bytes(), nil
}

// feedUID is stable across refreshes of the same lunar annotation.
func feedUID(month MonthKey, info DayLunarInfo) string {
	input := fmt.Sprintf(config.FormatHashInput, month.String(), info.SolarDay, info.LunarDay, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}
