package service

import (
	"time"

	"github.com/basewrapped/audit-engine/internal/core/domain"
)

// AggregateActivity buckets transfers by UTC day-of-week and hour-of-day
// and counts distinct active calendar dates. All bucketing is UTC; local
// time never enters the histograms.
//
// The peak day is the strict maximum scanning Sunday through Saturday, so
// ties resolve to the earlier day in that canonical order. The peak hour
// window is the two-hour range starting at the busiest hour bucket.
func AggregateActivity(transfers []domain.TransferRecord) domain.ActivityStats {
	if len(transfers) == 0 {
		return domain.ActivityStats{PeakDay: sentinelNA, PeakHours: sentinelNA}
	}

	var dayOfWeek [7]int
	var hourOfDay [24]int
	activeDates := make(map[string]struct{})

	for _, tr := range transfers {
		ts := tr.Timestamp.UTC()
		dayOfWeek[int(ts.Weekday())]++
		hourOfDay[ts.Hour()]++
		activeDates[ts.Format("2006-01-02")] = struct{}{}
	}

	peakDay := 0
	for d := 1; d < 7; d++ {
		if dayOfWeek[d] > dayOfWeek[peakDay] {
			peakDay = d
		}
	}

	peakHour := 0
	for h := 1; h < 24; h++ {
		if hourOfDay[h] > hourOfDay[peakHour] {
			peakHour = h
		}
	}

	return domain.ActivityStats{
		PeakDay:    time.Weekday(peakDay).String(),
		PeakHours:  FormatHourWindow(peakHour),
		ActiveDays: len(activeDates),
	}
}

// MostTradedToken returns the token appearing most often in the transfer
// list and its count. Ties resolve to whichever token reached the top count
// first in transfer order. Empty input yields the "N/A" sentinel.
func MostTradedToken(transfers []domain.TransferRecord) domain.TokenFrequency {
	if len(transfers) == 0 {
		return domain.TokenFrequency{Token: sentinelNA}
	}

	counts := make(map[string]int)
	top := domain.TokenFrequency{Token: sentinelNA}
	for _, tr := range transfers {
		if tr.Token == "" {
			continue
		}
		counts[tr.Token]++
		if counts[tr.Token] > top.Count {
			top = domain.TokenFrequency{Token: tr.Token, Count: counts[tr.Token]}
		}
	}
	return top
}
