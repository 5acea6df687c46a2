package scoring

import "github.com/spacesedan/prodpulse/internal/models"

// Blend combines sentiment and trend into the headline score. A nil
// trend means the trend stage never produced a value, and the
// sentiment score passes through verbatim with the weights ignored.
// Weights conventionally sum to 1 but are not required to; the result
// is clamped to [0,100] either way.
func Blend(sentiment float64, trend *float64, weights models.BlendWeights) float64 {
	if trend == nil {
		return sentiment
	}

	overall := sentiment*weights.Sentiment + *trend*weights.Trend
	if overall < 0 {
		return 0
	}
	if overall > 100 {
		return 100
	}
	return overall
}
