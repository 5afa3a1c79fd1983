package service

import (
	"testing"

	"github.com/basewrapped/audit-engine/internal/core/domain"
)

func TestEstimateDailyPnL(t *testing.T) {
	trades := []domain.ClosedTrade{
		win(500), win(120), win(80), win(40), win(10), // 5 wins
		loss(-60), loss(-200), loss(-15), // 3 losses
	}

	stats := EstimateDailyPnL(trades)

	// floor(5 * 1.2) = 6, floor(3 * 0.8) = 2
	if stats.GreenDays != 6 {
		t.Errorf("expected 6 green days, got %d", stats.GreenDays)
	}
	if stats.RedDays != 2 {
		t.Errorf("expected 2 red days, got %d", stats.RedDays)
	}

	if stats.BestDayUSD == nil || *stats.BestDayUSD != 500 {
		t.Errorf("expected best day 500, got %v", stats.BestDayUSD)
	}
	if stats.WorstDayUSD == nil || *stats.WorstDayUSD != -200 {
		t.Errorf("expected worst day -200, got %v", stats.WorstDayUSD)
	}
}

func TestEstimateDailyPnL_Empty(t *testing.T) {
	stats := EstimateDailyPnL(nil)

	if stats.GreenDays != 1 || stats.RedDays != 1 {
		t.Errorf("expected 1/1 day floor, got %d/%d", stats.GreenDays, stats.RedDays)
	}
	if stats.BestDayUSD != nil || stats.WorstDayUSD != nil {
		t.Error("expected nil best/worst with no trades")
	}
}

func TestEstimateDailyPnL_OnlyWins(t *testing.T) {
	stats := EstimateDailyPnL([]domain.ClosedTrade{win(100), win(300)})

	if stats.GreenDays != 2 {
		t.Errorf("expected 2 green days, got %d", stats.GreenDays)
	}
	if stats.RedDays != 1 {
		t.Errorf("expected red-day floor 1, got %d", stats.RedDays)
	}
	if stats.WorstDayUSD != nil {
		t.Errorf("expected nil worst day, got %v", *stats.WorstDayUSD)
	}
}

func TestEstimateDailyPnL_ProfitSignDrivesBestWorst(t *testing.T) {
	// A win flagged profitable but with negative realized profit must not
	// become the best day.
	trades := []domain.ClosedTrade{
		{IsProfitable: true, RealizedProfitUSD: -5},
		{IsProfitable: false, RealizedProfitUSD: -10},
	}

	stats := EstimateDailyPnL(trades)
	if stats.BestDayUSD != nil {
		t.Errorf("expected nil best day, got %v", *stats.BestDayUSD)
	}
	if stats.WorstDayUSD == nil || *stats.WorstDayUSD != -10 {
		t.Errorf("expected worst day -10, got %v", stats.WorstDayUSD)
	}
}
