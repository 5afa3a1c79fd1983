package service

import (
	"time"

	"github.com/basewrapped/audit-engine/internal/core/domain"
)

// sentinelNA is reported for display fields that strictly require transfer
// data when none could be obtained.
const sentinelNA = "N/A"

// openPosition marks an in-progress holding during reconstruction. The map
// holding these is local to one ReconstructPositions call; nothing is shared
// across audits.
type openPosition struct {
	openedAt time.Time
}

// ReconstructPositions replays the time-ordered transfer sequence against
// the wallet set and derives hold-time statistics from the closed positions.
//
// A transfer INTO the set opens a position for its token unless one is
// already open; a second inbound while a position is open is ignored until
// that position closes. A transfer OUT of the set closes the open position
// and emits a duration sample only when strictly positive (the marker is
// cleared either way). Outbound transfers without an open position and
// positions still open at the end contribute nothing.
//
// Transfers must already be sorted ascending by timestamp.
func ReconstructPositions(transfers []domain.TransferRecord, wallets domain.WalletSet) domain.HoldTimeStats {
	open := make(map[string]openPosition)
	var samples []int64

	for _, tr := range transfers {
		inbound := wallets.Contains(tr.To)
		outbound := wallets.Contains(tr.From)

		if inbound && !outbound {
			if _, exists := open[tr.Token]; !exists {
				open[tr.Token] = openPosition{openedAt: tr.Timestamp}
			}
			continue
		}

		if outbound {
			pos, exists := open[tr.Token]
			if !exists {
				continue
			}
			durationMs := tr.Timestamp.Sub(pos.openedAt).Milliseconds()
			if durationMs > 0 {
				samples = append(samples, durationMs)
			}
			delete(open, tr.Token)
		}
	}

	return holdTimeStats(samples)
}

func holdTimeStats(samples []int64) domain.HoldTimeStats {
	if len(samples) == 0 {
		return domain.HoldTimeStats{
			Shortest: sentinelNA,
			Longest:  sentinelNA,
			Average:  sentinelNA,
		}
	}

	shortest, longest := samples[0], samples[0]
	var total int64
	for _, s := range samples {
		if s < shortest {
			shortest = s
		}
		if s > longest {
			longest = s
		}
		total += s
	}
	average := total / int64(len(samples))

	return domain.HoldTimeStats{
		Shortest:   FormatDuration(shortest),
		Longest:    FormatDuration(longest),
		Average:    FormatDuration(average),
		ShortestMs: shortest,
		LongestMs:  longest,
		AverageMs:  average,
		Samples:    len(samples),
	}
}
