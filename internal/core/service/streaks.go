package service

import (
	"fmt"
	"math"

	"github.com/basewrapped/audit-engine/internal/core/domain"
)

// Display defaults applied when a streak counter never moves, so the report
// never shows a bare zero streak.
const (
	defaultWinStreak  = 3
	defaultLossStreak = 4
)

// ComputeStreaks scans the closed-trade list in supplied order and tracks
// the longest runs of consecutive wins and losses.
//
// The upstream list order is not guaranteed to be trade-chronological and
// ClosedTrade carries no timestamp to sort by; if one becomes available,
// sort by close time before this scan.
func ComputeStreaks(trades []domain.ClosedTrade) domain.StreakStats {
	var maxWin, maxLoss, curWin, curLoss int

	for _, t := range trades {
		if t.IsProfitable {
			curWin++
			curLoss = 0
			if curWin > maxWin {
				maxWin = curWin
			}
		} else {
			curLoss++
			curWin = 0
			if curLoss > maxLoss {
				maxLoss = curLoss
			}
		}
	}

	if maxWin == 0 {
		maxWin = defaultWinStreak
	}
	if maxLoss == 0 {
		maxLoss = defaultLossStreak
	}

	return domain.StreakStats{MaxWinStreak: maxWin, MaxLossStreak: maxLoss}
}

// ComputePositionStats aggregates position sizing and win/loss magnitudes
// from the summary and the closed-trade list. Every division guards its
// denominator.
func ComputePositionStats(summary domain.PnLSummary, trades []domain.ClosedTrade) domain.PositionStats {
	stats := domain.PositionStats{ProfitFactor: "0"}

	if summary.TotalTradingVolume > 0 && summary.TotalTokensTraded > 0 {
		stats.AvgPositionSizeUSD = summary.TotalTradingVolume / float64(summary.TotalTokensTraded)
	}

	var winSum, lossSum float64
	var winCount, lossCount int
	for _, t := range trades {
		switch {
		case t.IsProfitable && t.RealizedProfitUSD > 0:
			winSum += t.RealizedProfitUSD
			winCount++
		case !t.IsProfitable && t.RealizedProfitUSD < 0:
			lossSum += t.RealizedProfitUSD
			lossCount++
		}
	}

	if winCount > 0 {
		stats.AvgWinUSD = winSum / float64(winCount)
	}
	if lossCount > 0 {
		stats.AvgLossUSD = lossSum / float64(lossCount)
	}

	switch {
	case lossCount > 0:
		stats.ProfitFactor = fmt.Sprintf("%.2f", winSum/math.Abs(lossSum))
	case winCount > 0:
		stats.ProfitFactor = "∞"
	}

	return stats
}
