package trends

import (
	"context"
	"log/slog"

	"github.com/spacesedan/prodpulse/internal/models"
)

const DEFAULT_KEYWORD_SCORE = 50.0

// TrendClient queries an external search-trends service for one
// keyword's recent interest score.
type TrendClient interface {
	InterestOverTime(ctx context.Context, query, geo string) (float64, error)
}

// Cache is an optional keyword-score lookup cache in front of the
// client.
type Cache interface {
	GetTrendScore(ctx context.Context, geo, keyword string) (float64, bool)
	SetTrendScore(ctx context.Context, geo, keyword string, score float64)
}

// Estimator turns a keyword set into a 0-100 market-interest score.
// With no client configured (or no keywords to query) it runs the
// lexical heuristic over the accompanying text instead. Scoring never
// fails: a keyword whose query errors just contributes the neutral
// default.
type Estimator struct {
	client TrendClient
	cache  Cache
	geo    string
}

func NewEstimator(client TrendClient, cache Cache, geo string) *Estimator {
	if geo == "" {
		geo = "us"
	}
	if client == nil {
		slog.Info("[TrendEstimator] No trends API configured, heuristic fallback active")
	}
	return &Estimator{client: client, cache: cache, geo: geo}
}

// Score estimates market interest for the keyword set. text is only
// read on the fallback path.
func (e *Estimator) Score(ctx context.Context, keywords []string, text string) models.TrendResult {
	if e.client == nil || len(keywords) == 0 {
		return models.TrendResult{
			Score:  estimateFromText(text, keywords),
			Source: models.SourceFallback,
		}
	}

	perKeyword := make(map[string]float64, len(keywords))
	var sum float64
	for _, keyword := range keywords {
		score := e.keywordScore(ctx, keyword)
		perKeyword[keyword] = score
		sum += score
	}

	return models.TrendResult{
		Score:      sum / float64(len(keywords)),
		PerKeyword: perKeyword,
		Source:     models.SourceAPI,
	}
}

func (e *Estimator) keywordScore(ctx context.Context, keyword string) float64 {
	if e.cache != nil {
		if score, ok := e.cache.GetTrendScore(ctx, e.geo, keyword); ok {
			return score
		}
	}

	score, err := e.client.InterestOverTime(ctx, keyword, e.geo)
	if err != nil {
		slog.Warn("[TrendEstimator] Keyword query failed, using neutral score",
			slog.String("keyword", keyword),
			slog.String("error", err.Error()))
		return DEFAULT_KEYWORD_SCORE
	}

	if e.cache != nil {
		e.cache.SetTrendScore(ctx, e.geo, keyword, score)
	}
	return score
}
