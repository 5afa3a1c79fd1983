package domain

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TransferRecord is one on-chain token movement touching an audited wallet.
// Records are immutable once fetched; aggregators only read them.
type TransferRecord struct {
	Token     string    `json:"token"` // symbol or contract address, whichever the indexer exposes
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    float64   `json:"amount,omitempty"` // zero when the indexer omits it
	Timestamp time.Time `json:"timestamp"`
	TxHash    string    `json:"tx_hash,omitempty"`
}

// TransferPage is one page of a cursor-paginated transfer listing.
// An empty NextCursor means the listing is exhausted.
type TransferPage struct {
	Records    []TransferRecord `json:"records"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// WalletSet is the set of addresses under audit. Membership checks are
// case-insensitive; duplicate addresses collapse to one logical wallet.
type WalletSet map[string]struct{}

// NewWalletSet builds a WalletSet from raw address strings. Hex (EVM)
// addresses are run through go-ethereum's checksum parser first so that
// mixed-case inputs land on the same key.
func NewWalletSet(addresses ...string) WalletSet {
	ws := make(WalletSet, len(addresses))
	for _, addr := range addresses {
		ws[normalizeAddress(addr)] = struct{}{}
	}
	return ws
}

// Contains reports whether addr is one of the audited wallets.
func (ws WalletSet) Contains(addr string) bool {
	_, ok := ws[normalizeAddress(addr)]
	return ok
}

// Addresses returns the normalized members in unspecified order.
func (ws WalletSet) Addresses() []string {
	out := make([]string, 0, len(ws))
	for addr := range ws {
		out = append(out, addr)
	}
	return out
}

func normalizeAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	if common.IsHexAddress(addr) {
		return strings.ToLower(common.HexToAddress(addr).Hex())
	}
	return strings.ToLower(addr)
}

// Position is a reconstructed holding of a single token by the wallet set.
// DurationMs is defined only once the position has closed.
type Position struct {
	TokenKey   string     `json:"token_key"`
	OpenedAt   time.Time  `json:"opened_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	DurationMs int64      `json:"duration_ms,omitempty"`
}

// ClosedTrade is an externally supplied closed-position record. Its
// profitability flag is ground truth; the engine never recomputes it.
type ClosedTrade struct {
	TokenSymbol       string  `json:"token_symbol"`
	IsProfitable      bool    `json:"is_profitable"`
	RealizedProfitUSD float64 `json:"realized_profit_usd"`
	TotalUSDInvested  float64 `json:"total_usd_invested"`
}

// NotableTrade is a headline trade attached to a PnL summary.
type NotableTrade struct {
	Symbol    string  `json:"symbol"`
	AmountUSD float64 `json:"amount_usd"` // profit, loss, or missed upside depending on slot
}

// PnLSummary is the externally supplied realized/unrealized aggregate for a
// wallet over the audited period.
type PnLSummary struct {
	TotalRealizedProfit   float64 `json:"total_realized_profit"`
	TotalUnrealizedProfit float64 `json:"total_unrealized_profit"`
	TotalTradingVolume    float64 `json:"total_trading_volume"`
	WinRate               float64 `json:"win_rate"` // percentage, 0-100
	TotalTokensTraded     int     `json:"total_tokens_traded"`
	TotalFumbled          float64 `json:"total_fumbled"`
	TotalTrades           int     `json:"total_trades"`

	BiggestWin    *NotableTrade `json:"biggest_win,omitempty"`
	BiggestLoss   *NotableTrade `json:"biggest_loss,omitempty"`
	BiggestFumble *NotableTrade `json:"biggest_fumble,omitempty"`
}

// PnLData bundles the summary with its closed-trade records. This is the
// pnlData argument of the public entry points.
type PnLData struct {
	Summary      PnLSummary    `json:"summary"`
	ClosedTrades []ClosedTrade `json:"closed_trades"`
}

// HoldTimeStats describes how long reconstructed positions stayed open.
// The string fields are display-formatted; sentinel "N/A" when no closed
// position could be reconstructed.
type HoldTimeStats struct {
	Shortest   string `json:"shortest"`
	Longest    string `json:"longest"`
	Average    string `json:"average"`
	ShortestMs int64  `json:"shortest_ms"`
	LongestMs  int64  `json:"longest_ms"`
	AverageMs  int64  `json:"average_ms"`
	Samples    int    `json:"samples"`
}

// StreakStats holds the longest consecutive win and loss runs.
type StreakStats struct {
	MaxWinStreak  int `json:"max_win_streak"`
	MaxLossStreak int `json:"max_loss_streak"`
}

// ActivityStats describes when the wallet trades.
type ActivityStats struct {
	PeakDay    string `json:"peak_day"`    // weekday name, "N/A" without transfers
	PeakHours  string `json:"peak_hours"`  // two-hour window, e.g. "2 PM-4 PM"
	ActiveDays int    `json:"active_days"` // distinct UTC calendar dates
}

// DailyPnLStats is the heuristic green/red day estimate. BestDayUSD and
// WorstDayUSD are nil when no trade qualifies.
type DailyPnLStats struct {
	GreenDays   int      `json:"green_days"`
	RedDays     int      `json:"red_days"`
	BestDayUSD  *float64 `json:"best_day_usd,omitempty"`
	WorstDayUSD *float64 `json:"worst_day_usd,omitempty"`
}

// PositionStats aggregates position sizing and win/loss magnitudes.
// ProfitFactor is a display string: "%.2f", "∞" (no losses, some wins) or
// "0" (no wins and no losses).
type PositionStats struct {
	AvgPositionSizeUSD float64 `json:"avg_position_size_usd"`
	AvgWinUSD          float64 `json:"avg_win_usd"`
	AvgLossUSD         float64 `json:"avg_loss_usd"`
	ProfitFactor       string  `json:"profit_factor"`
}

// TokenFrequency names the most traded token and how often it moved.
type TokenFrequency struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// AuditMetrics is the merged output of all aggregators. It is rebuilt on
// every audit request and never persisted.
type AuditMetrics struct {
	HoldTimes  HoldTimeStats  `json:"hold_times"`
	Streaks    StreakStats    `json:"streaks"`
	Activity   ActivityStats  `json:"activity"`
	DailyPnL   DailyPnLStats  `json:"daily_pnl"`
	Positions  PositionStats  `json:"positions"`
	MostTraded TokenFrequency `json:"most_traded"`

	TransferCount int  `json:"transfer_count"`
	PartialData   bool `json:"partial_data"` // at least one wallet failed ingestion
}

// Ranking is the externally supplied percentile standing for a wallet.
type Ranking struct {
	Percentile float64 `json:"percentile"` // 0-100
	Archetype  string  `json:"archetype"`
}

// ScoreResult maps a percentile to its presentation classification.
type ScoreResult struct {
	Score     float64 `json:"score"` // clamped percentile, 0-100
	Grade     string  `json:"grade"`
	Tone      string  `json:"tone"` // presentation hint only
	Archetype string  `json:"archetype"`
}

// AuditReport is the assembled output of a full audit run.
type AuditReport struct {
	ReportID    int64         `json:"report_id"`
	Wallets     []string      `json:"wallets"`
	Metrics     *AuditMetrics `json:"metrics"`
	Score       ScoreResult   `json:"score"`
	Narrative   string        `json:"narrative"`
	GeneratedAt time.Time     `json:"generated_at"`
}
