package service

import (
	"math"

	"github.com/basewrapped/audit-engine/internal/core/domain"
)

// Green/red day multipliers for the heuristic estimate below.
const (
	greenDayFactor = 1.2
	redDayFactor   = 0.8
)

// EstimateDailyPnL approximates daily outcomes from per-trade outcomes.
//
// Closed trades carry no calendar granularity, so this is explicitly a
// heuristic, not a daily time series: green/red day counts are scaled win
// and loss counts (floored, minimum 1), and "best day"/"worst day" are
// really the single best and worst trades standing in for calendar days.
func EstimateDailyPnL(trades []domain.ClosedTrade) domain.DailyPnLStats {
	var wins, losses int
	var best, worst *float64

	for _, t := range trades {
		if t.IsProfitable {
			wins++
		} else {
			losses++
		}

		p := t.RealizedProfitUSD
		if p > 0 && (best == nil || p > *best) {
			v := p
			best = &v
		}
		if p < 0 && (worst == nil || p < *worst) {
			v := p
			worst = &v
		}
	}

	return domain.DailyPnLStats{
		GreenDays:   atLeastOne(int(math.Floor(float64(wins) * greenDayFactor))),
		RedDays:     atLeastOne(int(math.Floor(float64(losses) * redDayFactor))),
		BestDayUSD:  best,
		WorstDayUSD: worst,
	}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
