package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/basewrapped/audit-engine/internal/core/domain"
)

// pageSize is the maximum number of transfer records per explorer API call.
const pageSize = 100

// BasescanService fetches ERC-20 transfer listings from an Etherscan-family
// block explorer API (Basescan, Etherscan, Blockscout). The explorer's
// tokentx listing is page-numbered, so the opaque cursor carries the next
// page number.
type BasescanService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewBasescanService creates an explorer-backed transfer source.
func NewBasescanService(apiKey, baseURL string) *BasescanService {
	return &BasescanService{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type explorerTransfer struct {
	TokenSymbol     string `json:"tokenSymbol"`
	ContractAddress string `json:"contractAddress"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	TokenDecimal    string `json:"tokenDecimal"`
	TimeStamp       string `json:"timeStamp"`
	Hash            string `json:"hash"`
}

type explorerResponse struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	Result  []explorerTransfer `json:"result"`
}

// FetchTransfers retrieves one page of token transfers for address.
func (s *BasescanService) FetchTransfers(ctx context.Context, address, cursor string) (*domain.TransferPage, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid EVM address %q", address)
	}

	page := 1
	if cursor != "" {
		parsed, err := strconv.Atoi(cursor)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid cursor %q", cursor)
		}
		page = parsed
	}

	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "tokentx")
	params.Set("address", common.HexToAddress(address).Hex())
	params.Set("page", strconv.Itoa(page))
	params.Set("offset", strconv.Itoa(pageSize))
	params.Set("sort", "asc")
	if s.apiKey != "" {
		params.Set("apikey", s.apiKey)
	}

	fullURL := s.baseURL + "/api?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer API returned status %d", resp.StatusCode)
	}

	var body explorerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	// Explorer APIs report "No transactions found" as status 0 with an
	// empty result, which is the normal end of the listing.
	if body.Status != "1" && len(body.Result) > 0 {
		return nil, fmt.Errorf("explorer API error: %s", body.Message)
	}

	records := make([]domain.TransferRecord, 0, len(body.Result))
	for _, t := range body.Result {
		records = append(records, domain.TransferRecord{
			Token:     tokenKey(t.TokenSymbol, t.ContractAddress),
			From:      t.From,
			To:        t.To,
			Amount:    parseTokenValue(t.Value, t.TokenDecimal),
			Timestamp: parseUnixSeconds(t.TimeStamp),
			TxHash:    t.Hash,
		})
	}

	nextCursor := ""
	if len(body.Result) == pageSize {
		nextCursor = strconv.Itoa(page + 1)
	}

	return &domain.TransferPage{Records: records, NextCursor: nextCursor}, nil
}

// tokenKey prefers the symbol and falls back to the contract address.
func tokenKey(symbol, contract string) string {
	if symbol != "" {
		return symbol
	}
	return contract
}

func parseUnixSeconds(s string) time.Time {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func parseTokenValue(value, decimals string) float64 {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.Atoi(decimals)
	if err != nil || d <= 0 {
		return v
	}
	for i := 0; i < d; i++ {
		v /= 10
	}
	return v
}
