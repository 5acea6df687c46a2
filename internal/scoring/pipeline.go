package scoring

import (
	"context"
	"math"

	"github.com/spacesedan/prodpulse/internal/keywords"
	"github.com/spacesedan/prodpulse/internal/models"
	"github.com/spacesedan/prodpulse/internal/sentiment"
	"github.com/spacesedan/prodpulse/internal/textprep"
	"github.com/spacesedan/prodpulse/internal/trends"
)

// Pipeline composes the four scoring stages. Every stage degrades to a
// deterministic local default, so Score always returns a complete
// result. All fields are read-only after construction; one Pipeline
// serves concurrent requests.
type Pipeline struct {
	extractor *keywords.Extractor
	sentiment *sentiment.Scorer
	trends    *trends.Estimator
	weights   models.BlendWeights
}

// NewPipeline wires the stages together. Zero weights fall back to the
// conventional 0.6/0.4 split.
func NewPipeline(extractor *keywords.Extractor, scorer *sentiment.Scorer, estimator *trends.Estimator, weights models.BlendWeights) *Pipeline {
	if weights.Sentiment == 0 && weights.Trend == 0 {
		weights = models.BlendWeights{Sentiment: 0.6, Trend: 0.4}
	}
	return &Pipeline{
		extractor: extractor,
		sentiment: scorer,
		trends:    estimator,
		weights:   weights,
	}
}

// Result carries each stage's output alongside the blended composite.
type Result struct {
	Keywords  []string
	Sentiment models.SentimentResult
	Trend     *models.TrendResult
	Composite models.CompositeScore
}

// Score runs extraction, sentiment, trend estimation, and blending for
// one input. Keyword extraction feeds trend estimation; sentiment is
// independent of both.
func (p *Pipeline) Score(ctx context.Context, input models.TextInput) Result {
	plainText := textprep.ConvertMarkdownToText(input.Text)

	extracted := p.extractor.Extract(plainText, keywords.DEFAULT_MAX_KEYWORDS)

	sentimentResult := p.sentiment.Score(input.Text, input.StructuredFeatures)

	var trendResult *models.TrendResult
	var trendScore *float64
	if p.trends != nil {
		tr := p.trends.Score(ctx, extracted, plainText)
		trendResult = &tr
		trendScore = &tr.Score
	}

	overall := Blend(sentimentResult.Score, trendScore, p.weights)

	return Result{
		Keywords:  extracted,
		Sentiment: sentimentResult,
		Trend:     trendResult,
		Composite: models.CompositeScore{
			Sentiment: sentimentResult.Score,
			Trend:     trendScore,
			Overall:   overall,
			Weights:   p.weights,
		},
	}
}

// Response shapes a result for API consumers: scores rounded to two
// decimals and every field populated even in fully degraded runs.
func (r Result) Response() models.ScoreResponse {
	trendScore := trends.DEFAULT_KEYWORD_SCORE
	var breakdown map[string]float64
	if r.Trend != nil {
		trendScore = r.Trend.Score
		breakdown = r.Trend.PerKeyword
	}

	keywordList := r.Keywords
	if keywordList == nil {
		keywordList = []string{}
	}

	return models.ScoreResponse{
		SentimentScore: round2(r.Sentiment.Score),
		TrendScore:     round2(trendScore),
		Keywords:       keywordList,
		OverallScore:   round2(r.Composite.Overall),
		SentimentLabel: r.Sentiment.Label,
		TrendSources:   breakdown,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
