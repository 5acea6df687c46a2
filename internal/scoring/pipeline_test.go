package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/prodpulse/internal/keywords"
	"github.com/spacesedan/prodpulse/internal/models"
	"github.com/spacesedan/prodpulse/internal/sentiment"
	"github.com/spacesedan/prodpulse/internal/trends"
)

// fallbackPipeline builds a pipeline with no model and no trends API,
// the fully degraded configuration every deployment starts from.
func fallbackPipeline() *Pipeline {
	return NewPipeline(
		keywords.NewExtractor(),
		sentiment.NewScorer("", false),
		trends.NewEstimator(nil, nil, "us"),
		models.BlendWeights{},
	)
}

const sampleText = "The new analytics dashboard is great and the api integration is trending, but the export feature is broken."

func TestPipeline_AlwaysProducesCompleteResult(t *testing.T) {
	pipeline := fallbackPipeline()

	result := pipeline.Score(context.Background(), models.TextInput{Text: sampleText})
	require.NotNil(t, result.Trend)

	assert.NotEmpty(t, result.Keywords)
	assert.GreaterOrEqual(t, result.Sentiment.Score, 0.0)
	assert.LessOrEqual(t, result.Sentiment.Score, 100.0)
	assert.GreaterOrEqual(t, result.Trend.Score, 0.0)
	assert.LessOrEqual(t, result.Trend.Score, 100.0)
	assert.GreaterOrEqual(t, result.Composite.Overall, 0.0)
	assert.LessOrEqual(t, result.Composite.Overall, 100.0)
}

func TestPipeline_DefaultWeights(t *testing.T) {
	pipeline := fallbackPipeline()

	result := pipeline.Score(context.Background(), models.TextInput{Text: sampleText})
	assert.Equal(t, 0.6, result.Composite.Weights.Sentiment)
	assert.Equal(t, 0.4, result.Composite.Weights.Trend)
}

func TestPipeline_EmptyTextIsNeutral(t *testing.T) {
	pipeline := fallbackPipeline()

	result := pipeline.Score(context.Background(), models.TextInput{})
	require.NotNil(t, result.Trend)

	assert.Empty(t, result.Keywords)
	assert.Equal(t, 50.0, result.Sentiment.Score)
	assert.Equal(t, 50.0, result.Trend.Score)
	assert.Equal(t, 50.0, result.Composite.Overall)
}

func TestPipeline_Idempotent(t *testing.T) {
	pipeline := fallbackPipeline()
	input := models.TextInput{Text: sampleText}

	first := pipeline.Score(context.Background(), input)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, pipeline.Score(context.Background(), input))
	}
}

func TestPipeline_BlendMatchesStageScores(t *testing.T) {
	pipeline := fallbackPipeline()

	result := pipeline.Score(context.Background(), models.TextInput{Text: sampleText})
	require.NotNil(t, result.Trend)

	expected := result.Sentiment.Score*0.6 + result.Trend.Score*0.4
	assert.InDelta(t, expected, result.Composite.Overall, 0.001)
}

func TestPipeline_NoEstimatorPassesSentimentThrough(t *testing.T) {
	pipeline := NewPipeline(
		keywords.NewExtractor(),
		sentiment.NewScorer("", false),
		nil,
		models.BlendWeights{},
	)

	result := pipeline.Score(context.Background(), models.TextInput{Text: "this is great and helpful"})
	assert.Nil(t, result.Trend)
	assert.Nil(t, result.Composite.Trend)
	assert.Equal(t, result.Sentiment.Score, result.Composite.Overall)

	// The response still carries a populated trend field.
	response := result.Response()
	assert.Equal(t, 50.0, response.TrendScore)
	assert.Equal(t, response.SentimentScore, response.OverallScore)
}

func TestResponse_RoundsToTwoDecimals(t *testing.T) {
	result := Result{
		Keywords:  []string{"api"},
		Sentiment: models.SentimentResult{Score: 60.005, Label: "positive", Source: models.SourceFallback},
		Composite: models.CompositeScore{Sentiment: 60.005, Overall: 60.005},
	}

	response := result.Response()
	assert.Equal(t, 60.0, response.SentimentScore)
	assert.Equal(t, 60.0, response.OverallScore)
}

func TestResponse_NilKeywordsBecomeEmptySlice(t *testing.T) {
	result := Result{
		Sentiment: models.SentimentResult{Score: 50, Label: "neutral", Source: models.SourceFallback},
		Composite: models.CompositeScore{Sentiment: 50, Overall: 50},
	}

	response := result.Response()
	assert.NotNil(t, response.Keywords)
	assert.Empty(t, response.Keywords)
}
