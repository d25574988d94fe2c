package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type FREDClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewFREDClient(apiKey string) *FREDClient {
	return &FREDClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *FREDClient) Name() string {
	return "FRED"
}

// Latest returns the newest observation of a series. FRED reports gaps
// as the literal value ".", so the scan walks newest-first until a
// parseable observation turns up.
func (c *FREDClient) Latest(ctx context.Context, seriesID string) (*SeriesPoint, error) {
	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")
	params.Set("sort_order", "desc")
	params.Set("limit", "5")

	endpoint := "https://api.stlouisfed.org/fred/series/observations?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fred fetch %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fred fetch %s: status %d", seriesID, resp.StatusCode)
	}

	var raw fredResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("fred decode %s: %w", seriesID, err)
	}

	for _, obs := range raw.Observations {
		value, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		return &SeriesPoint{SeriesID: seriesID, Date: obs.Date, Value: value}, nil
	}
	return nil, fmt.Errorf("fred series %s: no usable observations", seriesID)
}

type fredResponse struct {
	Observations []fredObservation `json:"observations"`
}

type fredObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}
