package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/basewrapped/audit-engine/internal/core/domain"
)

// HeliusService fetches token transfers from the Helius Enhanced
// Transactions API. The cursor is the signature of the last transaction on
// the previous page ("before" pagination).
type HeliusService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewHeliusService creates a new Helius-backed transfer source.
func NewHeliusService(apiKey, baseURL string) *HeliusService {
	return &HeliusService{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// enhancedTransaction is the subset of the Helius enhanced transaction we
// need: token movements with their timestamp, minus failed transactions.
type enhancedTransaction struct {
	Signature        string          `json:"signature"`
	Timestamp        int64           `json:"timestamp"`
	TokenTransfers   []tokenTransfer `json:"tokenTransfers"`
	TransactionError *struct {
		Error string `json:"error"`
	} `json:"transactionError"`
}

type tokenTransfer struct {
	FromUserAccount string  `json:"fromUserAccount"`
	ToUserAccount   string  `json:"toUserAccount"`
	TokenAmount     float64 `json:"tokenAmount"`
	Mint            string  `json:"mint"`
}

// FetchTransfers retrieves one page of transfers for address, flattening
// each transaction's tokenTransfers into TransferRecords.
func (s *HeliusService) FetchTransfers(ctx context.Context, address, cursor string) (*domain.TransferPage, error) {
	endpoint := fmt.Sprintf("%s/v0/addresses/%s/transactions", s.baseURL, address)

	params := url.Values{}
	params.Set("api-key", s.apiKey)
	params.Set("limit", fmt.Sprintf("%d", pageSize))
	if cursor != "" {
		params.Set("before", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Helius API returned status %d: %s", resp.StatusCode, string(body))
	}

	var txns []enhancedTransaction
	if err := json.NewDecoder(resp.Body).Decode(&txns); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	var records []domain.TransferRecord
	for i := range txns {
		if txns[i].TransactionError != nil {
			continue
		}
		ts := time.Unix(txns[i].Timestamp, 0).UTC()
		for _, tt := range txns[i].TokenTransfers {
			if tt.Mint == "" {
				continue
			}
			records = append(records, domain.TransferRecord{
				Token:     tt.Mint,
				From:      tt.FromUserAccount,
				To:        tt.ToUserAccount,
				Amount:    tt.TokenAmount,
				Timestamp: ts,
				TxHash:    txns[i].Signature,
			})
		}
	}

	// A short page means the listing is exhausted.
	nextCursor := ""
	if len(txns) == pageSize {
		nextCursor = txns[len(txns)-1].Signature
	}

	return &domain.TransferPage{Records: records, NextCursor: nextCursor}, nil
}
