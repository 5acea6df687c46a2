package models

// ScoreSource records which path produced a stage's value.
type ScoreSource string

const (
	SourceModel    ScoreSource = "model"
	SourceVader    ScoreSource = "vader"
	SourceAPI      ScoreSource = "api"
	SourceFallback ScoreSource = "fallback"
)

// TextInput is one scoring request. StructuredFeatures carries optional
// signals (change type, affected-user percentage, platform flags) that
// only the model-backed sentiment path consumes.
type TextInput struct {
	Text               string         `json:"text"`
	StructuredFeatures map[string]any `json:"features,omitempty"`
}

type SentimentResult struct {
	Score  float64     `json:"score"`
	Label  string      `json:"label"`
	Source ScoreSource `json:"source"`
}

type TrendResult struct {
	Score      float64            `json:"score"`
	PerKeyword map[string]float64 `json:"per_keyword,omitempty"`
	Source     ScoreSource        `json:"source"`
}

// BlendWeights are the sentiment/trend blend coefficients. They
// conventionally sum to 1 but are not required to; the blended score is
// clamped to [0,100] either way.
type BlendWeights struct {
	Sentiment float64 `json:"sentiment_weight"`
	Trend     float64 `json:"trend_weight"`
}

// CompositeScore is the full pipeline output. Trend is nil when no
// trend estimator produced a value, in which case Overall equals
// Sentiment verbatim.
type CompositeScore struct {
	Sentiment float64      `json:"sentiment"`
	Trend     *float64     `json:"trend,omitempty"`
	Overall   float64      `json:"overall"`
	Weights   BlendWeights `json:"weights"`
}

// ScoreResponse is the wire shape returned to API consumers. Every
// field is always populated, no matter how many stages fell back.
type ScoreResponse struct {
	SentimentScore float64            `json:"sentiment_score"`
	TrendScore     float64            `json:"trend_score"`
	Keywords       []string           `json:"keywords"`
	OverallScore   float64            `json:"overall_score"`
	SentimentLabel string             `json:"sentiment_label"`
	TrendSources   map[string]float64 `json:"trend_breakdown,omitempty"`
}
