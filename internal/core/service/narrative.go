package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/basewrapped/audit-engine/internal/core/domain"
)

// Tunable thresholds for the rule-based narrative cascade. Business tuning
// lives here, not in the rules themselves.
const (
	strongProfitFloorUSD    = 10_000.0
	strongWinRatePct        = 55.0
	fumbleFloorUSD          = 1_000.0
	fumbleToProfitRatio     = 2.0
	poorWinRatePct          = 35.0
	tiltLossStreak          = 5
	speedTradeMaxHoldMs     = int64(60_000)
	smallProfitCeilingUSD   = 500.0
	defaultNarrativeTimeout = 15 * time.Second
)

// narrativeInput is everything a rule may look at.
type narrativeInput struct {
	summary domain.PnLSummary
	metrics *domain.AuditMetrics
	user    string
}

// narrativeRule is one entry of the fallback cascade: rules are evaluated
// top-down and the first match renders the narrative.
type narrativeRule struct {
	name   string
	match  func(in narrativeInput) bool
	render func(in narrativeInput) string
}

// Composer builds the audit narrative, preferring the external generation
// provider and falling back to the deterministic rule cascade whenever the
// provider is absent, slow, or failing.
type Composer struct {
	provider domain.NarrativeProvider // nil means rule-based only
	timeout  time.Duration
}

// NewComposer creates a Composer. provider may be nil.
func NewComposer(provider domain.NarrativeProvider) *Composer {
	return &Composer{provider: provider, timeout: defaultNarrativeTimeout}
}

// WithTimeout overrides the external-generation timeout.
func (c *Composer) WithTimeout(d time.Duration) *Composer {
	c.timeout = d
	return c
}

// ComposeNarrative returns a short analytical note for the audit. It always
// returns non-empty text: collaborator failures degrade to the rule-based
// fallback, never to an error.
func (c *Composer) ComposeNarrative(ctx context.Context, pnl *domain.PnLData, metrics *domain.AuditMetrics, user string) string {
	in := narrativeInput{metrics: metrics, user: user}
	if pnl != nil {
		in.summary = pnl.Summary
	}

	if c.provider != nil {
		genCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		text, err := c.provider.Generate(genCtx, BuildPrompt(pnl, metrics, user))
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		log.Warn().Err(err).Msg("narrative provider unavailable, using rule-based fallback")
	}

	return fallbackNarrative(in)
}

// BuildPrompt assembles the structured summary handed to the external
// text-generation collaborator.
func BuildPrompt(pnl *domain.PnLData, metrics *domain.AuditMetrics, user string) string {
	var sb strings.Builder

	name := user
	if name == "" {
		name = "this wallet"
	}
	sb.WriteString(fmt.Sprintf("Write an analytical trading note (max 60 words) for %s.\n\n", name))

	if pnl != nil {
		s := pnl.Summary
		sb.WriteString("Core stats:\n")
		sb.WriteString(fmt.Sprintf("- Realized profit: $%.2f\n", s.TotalRealizedProfit))
		sb.WriteString(fmt.Sprintf("- Unrealized profit: $%.2f\n", s.TotalUnrealizedProfit))
		sb.WriteString(fmt.Sprintf("- Volume: $%.2f across %d tokens (%d trades)\n", s.TotalTradingVolume, s.TotalTokensTraded, s.TotalTrades))
		sb.WriteString(fmt.Sprintf("- Win rate: %.1f%%\n", s.WinRate))
		sb.WriteString(fmt.Sprintf("- Fumbled gains: $%.2f\n", s.TotalFumbled))
		if s.BiggestWin != nil {
			sb.WriteString(fmt.Sprintf("- Biggest win: %s ($%.2f)\n", s.BiggestWin.Symbol, s.BiggestWin.AmountUSD))
		}
		if s.BiggestLoss != nil {
			sb.WriteString(fmt.Sprintf("- Biggest loss: %s ($%.2f)\n", s.BiggestLoss.Symbol, s.BiggestLoss.AmountUSD))
		}
		if s.BiggestFumble != nil {
			sb.WriteString(fmt.Sprintf("- Biggest fumble: %s ($%.2f missed)\n", s.BiggestFumble.Symbol, s.BiggestFumble.AmountUSD))
		}
	}

	if metrics != nil {
		sb.WriteString("\nBehavioral metrics:\n")
		sb.WriteString(fmt.Sprintf("- Hold times: shortest %s, longest %s, average %s\n",
			metrics.HoldTimes.Shortest, metrics.HoldTimes.Longest, metrics.HoldTimes.Average))
		sb.WriteString(fmt.Sprintf("- Streaks: %d consecutive wins, %d consecutive losses\n",
			metrics.Streaks.MaxWinStreak, metrics.Streaks.MaxLossStreak))
		sb.WriteString(fmt.Sprintf("- Most active: %s around %s, %d active days\n",
			metrics.Activity.PeakDay, metrics.Activity.PeakHours, metrics.Activity.ActiveDays))
		sb.WriteString(fmt.Sprintf("- Profit factor: %s, avg win $%.2f, avg loss $%.2f\n",
			metrics.Positions.ProfitFactor, metrics.Positions.AvgWinUSD, metrics.Positions.AvgLossUSD))
		sb.WriteString(fmt.Sprintf("- Most traded token: %s (%d transfers)\n",
			metrics.MostTraded.Token, metrics.MostTraded.Count))
	}

	return sb.String()
}

// fallbackNarrative runs the deterministic cascade. The final rule always
// matches, so the result is never empty.
func fallbackNarrative(in narrativeInput) string {
	for _, rule := range narrativeRules {
		if rule.match(in) {
			return rule.render(in)
		}
	}
	// Unreachable: the default rule matches everything.
	return "An unremarkable stretch of trading. The next one is yours to shape."
}

// narrativeRules is the ordered cascade; first match wins. Keep the default
// rule last.
var narrativeRules = []narrativeRule{
	{
		name: "consistent alpha",
		match: func(in narrativeInput) bool {
			return in.summary.TotalRealizedProfit >= strongProfitFloorUSD && in.summary.WinRate >= strongWinRatePct
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("Consistent alpha: $%.0f realized at a %.0f%% win rate. Entries are disciplined and exits are clean — this is what repeatable edge looks like.",
				in.summary.TotalRealizedProfit, in.summary.WinRate)
		},
	},
	{
		name: "early-exit syndrome",
		match: func(in narrativeInput) bool {
			return in.summary.TotalFumbled > fumbleFloorUSD &&
				in.summary.TotalFumbled > fumbleToProfitRatio*in.summary.TotalRealizedProfit
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("Early-exit syndrome: $%.0f left on the table against $%.0f realized. The picks are right — the conviction to hold them is not.",
				in.summary.TotalFumbled, in.summary.TotalRealizedProfit)
		},
	},
	{
		name: "counter-indicator",
		match: func(in narrativeInput) bool {
			return in.summary.WinRate < poorWinRatePct && in.summary.TotalRealizedProfit < 0
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("A %.0f%% win rate and $%.0f net: the market has been fading these entries. Tighten the filter before sizing up again.",
				in.summary.WinRate, in.summary.TotalRealizedProfit)
		},
	},
	{
		name: "tilt risk",
		match: func(in narrativeInput) bool {
			return in.metrics != nil && in.metrics.Streaks.MaxLossStreak >= tiltLossStreak
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("A run of %d straight losses is a tilt signal, not bad luck. Step back after two reds and the curve smooths out.",
				in.metrics.Streaks.MaxLossStreak)
		},
	},
	{
		name: "speed trading",
		match: func(in narrativeInput) bool {
			return in.metrics != nil && in.metrics.HoldTimes.ShortestMs > 0 &&
				in.metrics.HoldTimes.ShortestMs < speedTradeMaxHoldMs
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("Fastest flip: %s. Trading at this speed is paying the spread twice and the narrative once — slow down where the edge is thin.",
				in.metrics.HoldTimes.Shortest)
		},
	},
	{
		name: "asymmetric sizing",
		match: func(in narrativeInput) bool {
			return in.summary.WinRate >= strongWinRatePct && in.summary.TotalRealizedProfit < 0
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("Winning %.0f%% of trades yet down $%.0f overall: the losers are sized bigger than the winners. Fix the sizing, keep the picks.",
				in.summary.WinRate, -in.summary.TotalRealizedProfit)
		},
	},
	{
		name: "marginally profitable",
		match: func(in narrativeInput) bool {
			return in.summary.TotalRealizedProfit > 0 && in.summary.TotalRealizedProfit <= smallProfitCeilingUSD
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("Up $%.0f — green, barely. The process holds water; the position sizes are doing it a disservice.",
				in.summary.TotalRealizedProfit)
		},
	},
	{
		name:  "neutral default",
		match: func(in narrativeInput) bool { return true },
		render: func(in narrativeInput) string {
			return fmt.Sprintf("A mixed ledger: %d trades across %d tokens with no dominant pattern. The data says keep journaling — the edge hasn't declared itself yet.",
				in.summary.TotalTrades, in.summary.TotalTokensTraded)
		},
	},
}
