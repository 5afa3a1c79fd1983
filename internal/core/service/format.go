package service

import "fmt"

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// FormatDuration renders a hold time in the largest sensible unit:
// seconds under a minute, minutes under an hour, hours (one decimal) under
// a day, whole days beyond that.
func FormatDuration(ms int64) string {
	switch {
	case ms < msPerMinute:
		return fmt.Sprintf("%ds", ms/msPerSecond)
	case ms < msPerHour:
		return fmt.Sprintf("%dm", ms/msPerMinute)
	case ms < msPerDay:
		return fmt.Sprintf("%.1fh", float64(ms)/float64(msPerHour))
	default:
		return fmt.Sprintf("%dd", ms/msPerDay)
	}
}

// FormatHourWindow renders the two-hour window starting at hour (0-23) on a
// 12-hour clock, e.g. 14 -> "2 PM-4 PM". The end hour wraps past midnight.
func FormatHourWindow(hour int) string {
	return fmt.Sprintf("%s-%s", formatClockHour(hour), formatClockHour((hour+2)%24))
}

func formatClockHour(hour int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d %s", display, period)
}
