package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/basewrapped/audit-engine/internal/adapters/cache"
	"github.com/basewrapped/audit-engine/internal/core/domain"
)

// neutralRanking is used whenever the ranking collaborator is absent or
// failing; the report still renders with a middle-of-the-pack standing.
var neutralRanking = domain.Ranking{Percentile: 50, Archetype: "Trader"}

// Engine runs the audit pipeline: ingest transfers, derive behavioral
// metrics, classify the wallet's standing and compose the narrative. It
// holds no mutable state between requests; every audit is a pure function
// of its inputs plus collaborator responses.
type Engine struct {
	source   domain.TransferSource
	ranking  domain.RankingProvider
	composer *Composer
	cache    cache.AuditCache

	maxPages    int
	newReportID func() int64
}

// Option customizes an Engine.
type Option func(*Engine)

// WithCache installs a transfer cache (default: no-op).
func WithCache(c cache.AuditCache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithRankingProvider installs the percentile/archetype collaborator.
func WithRankingProvider(r domain.RankingProvider) Option {
	return func(e *Engine) { e.ranking = r }
}

// WithComposer installs the narrative composer (default: rule-based only).
func WithComposer(c *Composer) Option {
	return func(e *Engine) { e.composer = c }
}

// WithMaxPages overrides the per-wallet pagination ceiling.
func WithMaxPages(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPages = n
		}
	}
}

// WithReportIDGenerator injects the display-ID generator, letting tests pin
// report IDs to a constant.
func WithReportIDGenerator(gen func() int64) Option {
	return func(e *Engine) { e.newReportID = gen }
}

// NewEngine creates an audit engine over the given transfer source.
func NewEngine(source domain.TransferSource, opts ...Option) *Engine {
	e := &Engine{
		source:   source,
		composer: NewComposer(nil),
		cache:    cache.NoOpCache{},
		maxPages: defaultMaxPages,
		// Display-only 6-digit report IDs.
		newReportID: func() int64 { return 100000 + rand.Int63n(900000) },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeAuditMetrics derives the full behavioral metrics object for the
// wallet set. It never fails: ingestion errors degrade to the
// summary-derived metrics with sentinel values for transfer-dependent
// fields.
func (e *Engine) ComputeAuditMetrics(ctx context.Context, wallets []string, pnl *domain.PnLData) *domain.AuditMetrics {
	walletSet := domain.NewWalletSet(wallets...)

	var transfers []domain.TransferRecord
	partial := false
	if e.source != nil && len(wallets) > 0 {
		transfers, partial = e.ingestAll(ctx, wallets)
	}

	var summary domain.PnLSummary
	var trades []domain.ClosedTrade
	if pnl != nil {
		summary = pnl.Summary
		trades = pnl.ClosedTrades
	}

	metrics := &domain.AuditMetrics{
		HoldTimes:     ReconstructPositions(transfers, walletSet),
		Activity:      AggregateActivity(transfers),
		MostTraded:    MostTradedToken(transfers),
		Streaks:       ComputeStreaks(trades),
		DailyPnL:      EstimateDailyPnL(trades),
		Positions:     ComputePositionStats(summary, trades),
		TransferCount: len(transfers),
		PartialData:   partial,
	}

	log.Info().
		Int("transfers", metrics.TransferCount).
		Int("closed_trades", len(trades)).
		Bool("partial", partial).
		Msg("📊 audit metrics computed")

	return metrics
}

// RunAudit executes the whole pipeline and assembles the report: metrics,
// percentile classification and narrative. Collaborator failures never fail
// the report.
func (e *Engine) RunAudit(ctx context.Context, wallets []string, pnl *domain.PnLData, user string) *domain.AuditReport {
	metrics := e.ComputeAuditMetrics(ctx, wallets, pnl)

	ranking := neutralRanking
	if e.ranking != nil && len(wallets) > 0 && pnl != nil {
		if r, err := e.ranking.GetRanking(ctx, wallets[0], pnl.Summary); err == nil && r != nil {
			ranking = *r
		} else {
			log.Warn().Err(err).Msg("ranking provider unavailable, using neutral ranking")
		}
	}

	return &domain.AuditReport{
		ReportID:    e.newReportID(),
		Wallets:     domain.NewWalletSet(wallets...).Addresses(),
		Metrics:     metrics,
		Score:       Classify(ranking.Percentile, ranking.Archetype),
		Narrative:   e.composer.ComposeNarrative(ctx, pnl, metrics, user),
		GeneratedAt: time.Now().UTC(),
	}
}
