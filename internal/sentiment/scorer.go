package sentiment

import (
	"log/slog"
	"strings"

	"github.com/jonreiter/govader"

	"github.com/spacesedan/prodpulse/internal/models"
	"github.com/spacesedan/prodpulse/internal/textprep"
)

// defaultFeatureTemplate fills the columns the model was trained on
// when a request does not supply them.
var defaultFeatureTemplate = map[string]any{
	"change_type":          "unknown",
	"module_area":          "unknown",
	"impact_level":         0,
	"affected_users_pct":   0,
	"competitor_mentions":  0,
	"historical_bug_rate":  0,
	"days_since_release":   0,
	"rating_avg":           0,
	"prior_issue_count":    0,
	"is_mobile":            0,
	"is_enterprise_tenant": 0,
}

// Scorer produces a 0-100 positivity score for a piece of text. The
// ladder is model -> VADER (opt-in) -> lexicon; every tier below the
// model is deterministic and dependency-free, and a failing tier
// routes silently to the next one. Both the bundle and the analyzer
// are read-only after construction, so a Scorer is safe for
// concurrent use.
type Scorer struct {
	bundle *Bundle
	vader  *govader.SentimentIntensityAnalyzer
}

func NewScorer(modelPath string, vaderEnabled bool) *Scorer {
	s := &Scorer{}

	if modelPath != "" {
		bundle, err := LoadBundle(modelPath)
		if err != nil {
			// Not an error state: the scorer simply runs on the
			// fallback ladder for the lifetime of the process.
			slog.Warn("[SentimentScorer] Model bundle unavailable, using fallback scoring",
				slog.String("path", modelPath),
				slog.String("error", err.Error()))
		} else {
			s.bundle = bundle
			slog.Info("[SentimentScorer] Model bundle loaded",
				slog.String("path", modelPath),
				slog.String("target", bundle.TargetVar),
				slog.Bool("classification", bundle.IsClassification))
		}
	}

	if vaderEnabled {
		s.vader = govader.NewSentimentIntensityAnalyzer()
		slog.Info("[SentimentScorer] VADER tier enabled")
	}

	return s
}

// Score never fails; the worst case is the lexicon's neutral 50.
func (s *Scorer) Score(text string, additionalFeatures map[string]any) models.SentimentResult {
	if s.bundle != nil {
		features := assembleFeatures(text, additionalFeatures)
		score, err := s.bundle.Predict(features)
		if err == nil {
			return models.SentimentResult{Score: score, Label: Label(score), Source: models.SourceModel}
		}
		slog.Warn("[SentimentScorer] Model prediction failed, using fallback",
			slog.String("error", err.Error()))
	}

	plainText := textprep.ConvertMarkdownToText(text)

	if s.vader != nil && plainText != "" {
		score := scoreWithVader(s.vader, plainText)
		return models.SentimentResult{Score: score, Label: Label(score), Source: models.SourceVader}
	}

	score := scoreWithLexicon(plainText)
	return models.SentimentResult{Score: score, Label: Label(score), Source: models.SourceFallback}
}

// assembleFeatures merges derived text features, caller-supplied
// features, and the default template, in that precedence order.
func assembleFeatures(text string, additional map[string]any) map[string]any {
	features := map[string]any{
		"feedback_length": len(text),
		"word_count":      len(strings.Fields(text)),
	}
	for key, value := range additional {
		features[key] = value
	}
	for key, value := range defaultFeatureTemplate {
		if _, ok := features[key]; !ok {
			features[key] = value
		}
	}
	return features
}
