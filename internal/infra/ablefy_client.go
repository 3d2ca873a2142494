package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ablefy-sync/internal/transform"
)

// AblefyClient reads historical transactions from the legacy course
// sales platform's API.
type AblefyClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type transactionsPage struct {
	Data       []transform.RawTransaction `json:"data"`
	TotalPages int                        `json:"total_pages"`
}

func NewAblefyClient(baseURL, apiKey string, timeout time.Duration) *AblefyClient {
	return &AblefyClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListTransactions fetches one page of legacy transactions and reports
// the total page count so the caller can drive pagination.
func (c *AblefyClient) ListTransactions(ctx context.Context, page int) ([]transform.RawTransaction, int, error) {
	url := c.baseURL + "/transactions?per_page=100&page=" + strconv.Itoa(page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("ablefy API returned status %d for page %d", resp.StatusCode, page)
	}

	var body transactionsPage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, 0, err
	}

	return body.Data, body.TotalPages, nil
}
