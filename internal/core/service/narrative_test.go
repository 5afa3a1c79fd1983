package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/basewrapped/audit-engine/internal/core/domain"
)

type fakeGenerator struct {
	text  string
	err   error
	delay time.Duration
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func quietMetrics() *domain.AuditMetrics {
	return &domain.AuditMetrics{
		HoldTimes:  domain.HoldTimeStats{Shortest: "N/A", Longest: "N/A", Average: "N/A"},
		Streaks:    domain.StreakStats{MaxWinStreak: 3, MaxLossStreak: 4},
		Activity:   domain.ActivityStats{PeakDay: "N/A", PeakHours: "N/A"},
		Positions:  domain.PositionStats{ProfitFactor: "0"},
		MostTraded: domain.TokenFrequency{Token: "N/A"},
	}
}

func pnlWith(summary domain.PnLSummary) *domain.PnLData {
	return &domain.PnLData{Summary: summary}
}

func TestComposeNarrative_ProviderPreferred(t *testing.T) {
	c := NewComposer(&fakeGenerator{text: "generated note"})

	got := c.ComposeNarrative(context.Background(), pnlWith(domain.PnLSummary{}), quietMetrics(), "")
	if got != "generated note" {
		t.Errorf("expected provider text, got %q", got)
	}
}

func TestComposeNarrative_ProviderFailureFallsBack(t *testing.T) {
	c := NewComposer(&fakeGenerator{err: fmt.Errorf("api down")})

	got := c.ComposeNarrative(context.Background(), pnlWith(domain.PnLSummary{}), quietMetrics(), "")
	if got == "" {
		t.Fatal("expected non-empty fallback narrative")
	}
}

func TestComposeNarrative_ProviderTimeoutFallsBack(t *testing.T) {
	c := NewComposer(&fakeGenerator{text: "late", delay: time.Second}).WithTimeout(10 * time.Millisecond)

	got := c.ComposeNarrative(context.Background(), pnlWith(domain.PnLSummary{}), quietMetrics(), "")
	if got == "late" {
		t.Error("expected timeout to discard the slow provider response")
	}
	if got == "" {
		t.Error("expected non-empty fallback narrative")
	}
}

func TestComposeNarrative_NilProviderNeverEmpty(t *testing.T) {
	c := NewComposer(nil)

	got := c.ComposeNarrative(context.Background(), nil, nil, "")
	if got == "" {
		t.Fatal("expected non-empty narrative with nil inputs")
	}
}

func TestFallbackNarrative_Deterministic(t *testing.T) {
	c := NewComposer(nil)
	pnl := pnlWith(domain.PnLSummary{TotalRealizedProfit: 12_000, WinRate: 62, TotalTrades: 40, TotalTokensTraded: 12})
	m := quietMetrics()

	first := c.ComposeNarrative(context.Background(), pnl, m, "")
	for i := 0; i < 5; i++ {
		if got := c.ComposeNarrative(context.Background(), pnl, m, ""); got != first {
			t.Fatalf("narrative not deterministic: %q vs %q", first, got)
		}
	}
}

func TestFallbackNarrative_RuleSelection(t *testing.T) {
	cases := []struct {
		name    string
		summary domain.PnLSummary
		mutate  func(*domain.AuditMetrics)
		wantSub string
	}{
		{
			name:    "consistent alpha",
			summary: domain.PnLSummary{TotalRealizedProfit: 15_000, WinRate: 60},
			wantSub: "Consistent alpha",
		},
		{
			name:    "early-exit syndrome",
			summary: domain.PnLSummary{TotalRealizedProfit: 2_000, TotalFumbled: 9_000, WinRate: 45},
			wantSub: "Early-exit",
		},
		{
			name:    "counter-indicator",
			summary: domain.PnLSummary{TotalRealizedProfit: -4_000, WinRate: 20},
			wantSub: "fading these entries",
		},
		{
			name:    "tilt risk",
			summary: domain.PnLSummary{TotalRealizedProfit: 2_000, WinRate: 45},
			mutate:  func(m *domain.AuditMetrics) { m.Streaks.MaxLossStreak = 6 },
			wantSub: "straight losses",
		},
		{
			name:    "speed trading",
			summary: domain.PnLSummary{TotalRealizedProfit: 2_000, WinRate: 45},
			mutate: func(m *domain.AuditMetrics) {
				m.HoldTimes.ShortestMs = 30_000
				m.HoldTimes.Shortest = "30s"
			},
			wantSub: "Fastest flip",
		},
		{
			name:    "asymmetric sizing",
			summary: domain.PnLSummary{TotalRealizedProfit: -800, WinRate: 60},
			wantSub: "sized bigger",
		},
		{
			name:    "marginally profitable",
			summary: domain.PnLSummary{TotalRealizedProfit: 300, WinRate: 45},
			wantSub: "green, barely",
		},
		{
			name:    "neutral default",
			summary: domain.PnLSummary{TotalRealizedProfit: 700, WinRate: 45, TotalTrades: 20, TotalTokensTraded: 8},
			wantSub: "mixed ledger",
		},
	}

	c := NewComposer(nil)
	for _, tc := range cases {
		m := quietMetrics()
		if tc.mutate != nil {
			tc.mutate(m)
		}
		got := c.ComposeNarrative(context.Background(), pnlWith(tc.summary), m, "")
		if !strings.Contains(got, tc.wantSub) {
			t.Errorf("%s: expected narrative containing %q, got %q", tc.name, tc.wantSub, got)
		}
	}
}

func TestBuildPrompt_ContainsKeyFigures(t *testing.T) {
	pnl := pnlWith(domain.PnLSummary{
		TotalRealizedProfit: 1234.5,
		WinRate:             40,
		TotalTokensTraded:   5,
		BiggestWin:          &domain.NotableTrade{Symbol: "PEPE", AmountUSD: 900},
	})
	m := quietMetrics()
	m.Streaks = domain.StreakStats{MaxWinStreak: 2, MaxLossStreak: 5}

	prompt := BuildPrompt(pnl, m, "degen.eth")

	for _, want := range []string{"degen.eth", "1234.50", "40.0%", "PEPE", "5 consecutive losses", "max 60 words"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
