package rank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/basewrapped/audit-engine/internal/core/domain"
)

// HTTPService queries an external ranking backend for a wallet's percentile
// standing and archetype title. The backend ranks against its full peer
// population; this adapter only shuttles the summary over.
type HTTPService struct {
	baseURL string
	client  *http.Client
}

// NewHTTPService creates a ranking adapter against baseURL.
func NewHTTPService(baseURL string) *HTTPService {
	return &HTTPService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// GetRanking posts the wallet's summary and returns its percentile and
// archetype.
func (s *HTTPService) GetRanking(ctx context.Context, address string, summary domain.PnLSummary) (*domain.Ranking, error) {
	payload, err := json.Marshal(struct {
		Address string            `json:"address"`
		Summary domain.PnLSummary `json:"summary"`
	}{Address: address, Summary: summary})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/rankings", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ranking api returned status: %d", resp.StatusCode)
	}

	var result struct {
		Percentile float64 `json:"percentile"`
		Archetype  string  `json:"archetype"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &domain.Ranking{Percentile: result.Percentile, Archetype: result.Archetype}, nil
}
