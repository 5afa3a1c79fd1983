package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/basewrapped/audit-engine/internal/core/domain"
)

const (
	// defaultMaxPages caps pagination per wallet to keep audit latency
	// bounded. With 100-record pages that is 500 records per wallet.
	defaultMaxPages = 5
	// maxRecordsPerWallet is the hard record ceiling per wallet.
	maxRecordsPerWallet = 500

	transferCacheTTL    = 15 * time.Minute
	transferCachePrefix = "transfers:"
)

// ingestAll fetches transfers for every wallet concurrently, merges them and
// sorts the result ascending by timestamp. The second return value reports
// whether any wallet's ingestion failed; failed wallets contribute nothing
// (their partial pages are discarded) and the audit proceeds with the rest.
func (e *Engine) ingestAll(ctx context.Context, wallets []string) ([]domain.TransferRecord, bool) {
	var (
		mu      sync.Mutex
		merged  []domain.TransferRecord
		partial bool
		wg      sync.WaitGroup
	)

	for _, wallet := range wallets {
		wg.Add(1)
		go func(wallet string) {
			defer wg.Done()

			records, err := e.ingestWallet(ctx, wallet)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn().Err(err).Str("wallet", wallet).Msg("transfer ingestion failed, continuing without this wallet")
				partial = true
				return
			}
			merged = append(merged, records...)
		}(wallet)
	}
	wg.Wait()

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})

	return merged, partial
}

// ingestWallet pages through one wallet's transfer listing, stopping at the
// page ceiling, the record ceiling, an empty page, or an exhausted cursor.
// A page error aborts the whole wallet.
func (e *Engine) ingestWallet(ctx context.Context, wallet string) ([]domain.TransferRecord, error) {
	cacheKey := transferCachePrefix + wallet
	if raw, ok := e.cache.Get(ctx, cacheKey); ok {
		var cached []domain.TransferRecord
		if err := json.Unmarshal(raw, &cached); err == nil {
			log.Debug().Str("wallet", wallet).Int("records", len(cached)).Msg("transfer cache hit")
			return cached, nil
		}
	}

	var records []domain.TransferRecord
	cursor := ""

	for page := 0; page < e.maxPages; page++ {
		result, err := e.source.FetchTransfers(ctx, wallet, cursor)
		if err != nil {
			return nil, err
		}
		if len(result.Records) == 0 {
			break
		}

		records = append(records, result.Records...)
		log.Debug().Str("wallet", wallet).Int("page", page+1).Int("records", len(records)).Msg("📡 fetched transfer page")

		if result.NextCursor == "" || len(records) >= maxRecordsPerWallet {
			break
		}
		cursor = result.NextCursor
	}

	if len(records) > maxRecordsPerWallet {
		records = records[:maxRecordsPerWallet]
	}

	if raw, err := json.Marshal(records); err == nil {
		e.cache.Set(ctx, cacheKey, raw, transferCacheTTL)
	}

	return records, nil
}
