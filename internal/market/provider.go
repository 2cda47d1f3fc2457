package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"stockfolio/internal/model"
)

const requestTimeout = 10 * time.Second

// Provider fetches daily price series from the Alpha Vantage API, substituting
// deterministic mock data whenever the live source cannot deliver. GetSeries
// never fails outward: callers always receive a usable series.
type Provider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewProvider creates a market data provider against the given endpoint.
func NewProvider(baseURL, apiKey string) *Provider {
	return &Provider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// dailyResponse is the wire shape of a TIME_SERIES_DAILY response.
type dailyResponse struct {
	ErrorMessage string                       `json:"Error Message"`
	TimeSeries   map[string]map[string]string `json:"Time Series (Daily)"`
}

// GetSeries returns the daily series for ticker. It issues at most one request
// per call, with no retries and no caching. The second return value reports
// whether live provider data was returned; false means the mock fallback.
func (p *Provider) GetSeries(ctx context.Context, ticker string) (model.TimeSeries, bool) {
	addr := fmt.Sprintf("%s?function=TIME_SERIES_DAILY&symbol=%s&apikey=%s",
		p.baseURL, url.QueryEscape(ticker), url.QueryEscape(p.apiKey))

	data, err := p.fetch(ctx, addr)
	if err != nil {
		log.Printf("ERROR market: request failed for %s: %v", ticker, err)
		return MockSeries(ticker), false
	}

	if data.ErrorMessage != "" {
		log.Printf("ERROR market: provider error for %s: %s", ticker, data.ErrorMessage)
		return MockSeries(ticker), false
	}

	if len(data.TimeSeries) == 0 {
		return MockSeries(ticker), false
	}

	return flatten(data.TimeSeries), true
}

func (p *Provider) fetch(ctx context.Context, addr string) (*dailyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var data dailyResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &data, nil
}

// flatten converts the provider's date-keyed map into an ordered series,
// newest date first, which is the order the provider documents.
func flatten(raw map[string]map[string]string) model.TimeSeries {
	dates := make([]string, 0, len(raw))
	for date := range raw {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	series := make(model.TimeSeries, 0, len(dates))
	for _, date := range dates {
		fields := raw[date]
		series = append(series, model.SeriesEntry{
			Date:   date,
			Open:   fields["1. open"],
			High:   fields["2. high"],
			Low:    fields["3. low"],
			Close:  fields["4. close"],
			Volume: fields["5. volume"],
		})
	}
	return series
}
