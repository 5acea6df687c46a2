package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	SERPAPI_ENDPOINT     = "https://serpapi.com/search.json"
	TREND_POINT_WINDOW   = 12
	DEFAULT_TREND_SCORE  = 50.0
	TREND_QUERY_INTERVAL = 1 * time.Second
)

// SerpAPIClient queries Google Trends time series through SerpAPI.
// Outbound requests share a one-per-interval gate, so sequential
// keyword queries from concurrent requests never exceed the upstream
// rate limit.
type SerpAPIClient struct {
	// BaseURL is overridable for tests.
	BaseURL string

	client  *http.Client
	apiKey  string
	limiter *rate.Limiter
}

func NewSerpAPIClient(apiKey string, timeout time.Duration) *SerpAPIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SerpAPIClient{
		BaseURL: SERPAPI_ENDPOINT,
		client:  &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Every(TREND_QUERY_INTERVAL), 1),
	}
}

// InterestOverTime returns the mean of the last 12 interest values for
// one query, clamped to [0,100]. A payload with no recognizable time
// series yields the neutral default rather than an error.
func (c *SerpAPIClient) InterestOverTime(ctx context.Context, query, geo string) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("engine", "google_trends")
	params.Set("q", query)
	params.Set("geo", geo)
	params.Set("data_type", "TIMESERIES")
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("build trends request: %w", err)
	}
	req.Header.Set("User-Agent", USER_AGENT)

	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("trends request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return 0, fmt.Errorf("trends request: status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, fmt.Errorf("read trends response: %w", err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("parse trends response: %w", err)
	}

	score := extractTrendScore(payload)
	slog.Debug("[SerpAPIClient] Trend query completed",
		slog.String("query", query),
		slog.Float64("score", score),
		slog.Duration("elapsed", time.Since(start)))
	return score, nil
}

// timelineKeys are the payload shapes SerpAPI is known to return,
// tried in order.
var timelineKeys = []string{"interest_over_time", "timeline_data", "default_timeline_data"}

func extractTrendScore(payload map[string]json.RawMessage) float64 {
	for _, key := range timelineKeys {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		values := timelineValues(raw)
		if len(values) == 0 {
			continue
		}
		if len(values) > TREND_POINT_WINDOW {
			values = values[len(values)-TREND_POINT_WINDOW:]
		}
		var sum float64
		for _, v := range values {
			sum += v
		}
		avg := sum / float64(len(values))
		if avg < 0 {
			return 0
		}
		if avg > 100 {
			return 100
		}
		return avg
	}
	return DEFAULT_TREND_SCORE
}

func timelineValues(raw json.RawMessage) []float64 {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	var values []float64
	for _, item := range items {
		if v, ok := pointValue(item); ok {
			values = append(values, v)
		}
	}
	return values
}

// pointValue digs one interest value out of a timeline entry. Entries
// show up as {"value": x}, {"values": [{"value": x}, ...]}, or a bare
// array with the value first.
func pointValue(raw json.RawMessage) (float64, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		if v, ok := obj["value"]; ok {
			return scalarValue(v)
		}
		if vs, ok := obj["values"]; ok {
			var list []json.RawMessage
			if err := json.Unmarshal(vs, &list); err == nil && len(list) > 0 {
				var inner map[string]json.RawMessage
				if err := json.Unmarshal(list[0], &inner); err == nil {
					if v, ok := inner["value"]; ok {
						return scalarValue(v)
					}
					return 0, false
				}
				return scalarValue(list[0])
			}
		}
		return 0, false
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return 0, false
		}
		return scalarValue(list[0])
	}

	return scalarValue(raw)
}

func scalarValue(raw json.RawMessage) (float64, bool) {
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, true
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if f, err := strconv.ParseFloat(str, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
