package sentiment

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBundle(t *testing.T, b Bundle) string {
	t.Helper()

	raw, err := json.Marshal(b)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func threeClassBundle() Bundle {
	return Bundle{
		TargetVar:        "sentiment_score",
		IsClassification: true,
		TargetLabels:     []string{"negative", "neutral", "positive"},
		Columns: []FeatureColumn{
			{Name: "impact_level", Kind: KindNumeric},
			{Name: "change_type", Kind: KindCategorical},
		},
		Encoders: map[string][]string{
			"change_type": {"unknown", "bugfix", "feature"},
		},
		Weights:    [][]float64{{0, 0}, {0, 0}, {1, 0}},
		Intercepts: []float64{0, 0.5, 0},
	}
}

func TestLoadBundle_RoundTrip(t *testing.T) {
	path := writeBundle(t, threeClassBundle())

	b, err := LoadBundle(path)
	require.NoError(t, err)
	assert.True(t, b.IsClassification)
	assert.Len(t, b.Columns, 2)
}

func TestLoadBundle_MissingFile(t *testing.T) {
	_, err := LoadBundle("/nonexistent/model.json")
	assert.Error(t, err)
}

func TestLoadBundle_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadBundle(path)
	assert.Error(t, err)
}

func TestLoadBundle_UnknownColumnKind(t *testing.T) {
	b := threeClassBundle()
	b.Columns[0].Kind = "embedding"

	_, err := LoadBundle(writeBundle(t, b))
	assert.ErrorContains(t, err, "unknown kind")
}

func TestLoadBundle_MissingEncoder(t *testing.T) {
	b := threeClassBundle()
	b.Encoders = nil

	_, err := LoadBundle(writeBundle(t, b))
	assert.ErrorContains(t, err, "no encoder")
}

func TestLoadBundle_ShapeMismatch(t *testing.T) {
	b := threeClassBundle()
	b.Weights = [][]float64{{1}}

	_, err := LoadBundle(writeBundle(t, b))
	assert.Error(t, err)
}

func TestFeatureVector_UnseenCategoryEncodesToZero(t *testing.T) {
	b := threeClassBundle()

	vector := b.FeatureVector(map[string]any{
		"impact_level": 2,
		"change_type":  "never-seen-before",
	})
	assert.Equal(t, []float64{2, 0}, vector)
}

func TestFeatureVector_KnownCategory(t *testing.T) {
	b := threeClassBundle()

	vector := b.FeatureVector(map[string]any{
		"impact_level": 1,
		"change_type":  "feature",
	})
	assert.Equal(t, []float64{1, 2}, vector)
}

func TestFeatureVector_NonNumericNumericDefaultsToZero(t *testing.T) {
	b := threeClassBundle()

	vector := b.FeatureVector(map[string]any{
		"impact_level": "not a number",
		"change_type":  "bugfix",
	})
	assert.Equal(t, []float64{0, 1}, vector)
}

func TestPredict_ThreeClassMapping(t *testing.T) {
	b := threeClassBundle()

	// impact_level 1 puts class 2 (positive) on top: 20 + 2*30 = 80.
	score, err := b.Predict(map[string]any{"impact_level": 1, "change_type": "unknown"})
	require.NoError(t, err)
	assert.Equal(t, 80.0, score)

	// impact_level 0 leaves class 1 (neutral) on top: 20 + 1*30 = 50.
	score, err = b.Predict(map[string]any{"impact_level": 0, "change_type": "unknown"})
	require.NoError(t, err)
	assert.Equal(t, 50.0, score)
}

func TestPredict_BinaryMapping(t *testing.T) {
	b := Bundle{
		IsClassification: true,
		TargetLabels:     []string{"no", "yes"},
		Columns:          []FeatureColumn{{Name: "impact_level", Kind: KindNumeric}},
		Weights:          [][]float64{{1}},
		Intercepts:       []float64{-0.5},
	}

	score, err := b.Predict(map[string]any{"impact_level": 1})
	require.NoError(t, err)
	assert.Equal(t, 70.0, score)

	score, err = b.Predict(map[string]any{"impact_level": 0})
	require.NoError(t, err)
	assert.Equal(t, 30.0, score)
}

func TestPredict_FiveClassLinearMapping(t *testing.T) {
	b := Bundle{
		IsClassification: true,
		TargetLabels:     []string{"a", "b", "c", "d", "e"},
		Columns:          []FeatureColumn{{Name: "impact_level", Kind: KindNumeric}},
		Weights:          [][]float64{{0}, {0}, {0}, {1}, {0}},
		Intercepts:       []float64{0, 0, 0, 0, 0},
	}

	// Class 3 of 5 maps linearly: 3/4 * 100 = 75.
	score, err := b.Predict(map[string]any{"impact_level": 1})
	require.NoError(t, err)
	assert.Equal(t, 75.0, score)
}

func TestPredict_RegressionClamps(t *testing.T) {
	b := Bundle{
		IsClassification: false,
		Columns:          []FeatureColumn{{Name: "impact_level", Kind: KindNumeric}},
		Weights:          [][]float64{{200}},
		Intercepts:       []float64{0},
	}

	score, err := b.Predict(map[string]any{"impact_level": 1})
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)

	score, err = b.Predict(map[string]any{"impact_level": -1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestCoerceFloat(t *testing.T) {
	assert.Equal(t, 1.5, coerceFloat(1.5))
	assert.Equal(t, 3.0, coerceFloat(3))
	assert.Equal(t, 1.0, coerceFloat(true))
	assert.Equal(t, 0.0, coerceFloat(false))
	assert.Equal(t, 2.5, coerceFloat("2.5"))
	assert.Equal(t, 0.0, coerceFloat("nope"))
	assert.Equal(t, 0.0, coerceFloat(nil))
}
