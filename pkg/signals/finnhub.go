package signals

import (
	"context"
	"fmt"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client}
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}

// Quotes fetches one quote per symbol. The generated client exposes
// every field as a pointer; absent values map to zero.
func (c *FinnHubClient) Quotes(ctx context.Context, symbols []string) ([]Quote, error) {
	quotes := make([]Quote, 0, len(symbols))
	for _, symbol := range symbols {
		res, _, err := c.client.Quote(ctx).Symbol(symbol).Execute()
		if err != nil {
			return nil, fmt.Errorf("finnhub quote %s: %w", symbol, err)
		}

		q := Quote{Symbol: symbol}
		if res.C != nil {
			q.Current = float64(*res.C)
		}
		if res.Dp != nil {
			q.PercentChange = float64(*res.Dp)
		}
		if res.Pc != nil {
			q.PreviousClose = float64(*res.Pc)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
