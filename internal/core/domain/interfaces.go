package domain

import "context"

// TransferSource lists token transfers for one wallet address, one page at a
// time. An empty cursor requests the first page; the returned NextCursor is
// opaque to the caller and empty when no further pages exist.
type TransferSource interface {
	FetchTransfers(ctx context.Context, address, cursor string) (*TransferPage, error)
}

// PnLProvider supplies the precomputed PnL summary and closed-trade list for
// a wallet over a period ("year" or "lifetime"). Opaque to the audit core.
type PnLProvider interface {
	GetPnL(ctx context.Context, address, period string) (*PnLData, error)
}

// RankingProvider supplies the percentile standing and archetype title for a
// wallet given its summary. The engine substitutes a neutral ranking when
// the provider is absent or failing.
type RankingProvider interface {
	GetRanking(ctx context.Context, address string, summary PnLSummary) (*Ranking, error)
}

// NarrativeProvider turns a prompt payload into a short analytical note.
// May be unconfigured; callers must keep a deterministic fallback ready.
type NarrativeProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
