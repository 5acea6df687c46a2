package sentiment

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// FeatureColumn is one entry of the bundle's ordered feature schema.
// Categorical columns encode through the matching entry in
// Bundle.Encoders; numeric columns coerce to float64.
type FeatureColumn struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
}

// Bundle is the serialized model artifact produced by the offline
// training job: a linear model plus everything needed to rebuild the
// training-time feature vector.
type Bundle struct {
	TargetVar        string              `json:"target_var"`
	IsClassification bool                `json:"is_classification"`
	TargetLabels     []string            `json:"target_labels,omitempty"`
	Columns          []FeatureColumn     `json:"columns"`
	Encoders         map[string][]string `json:"encoders,omitempty"`
	Weights          [][]float64         `json:"weights"`
	Intercepts       []float64           `json:"intercepts"`
}

// LoadBundle reads and validates a model bundle. Loading is
// all-or-nothing: any read, parse, or shape problem returns an error
// and the caller runs without a model for the process lifetime.
func LoadBundle(path string) (*Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model bundle: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("parse model bundle: %w", err)
	}

	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("invalid model bundle: %w", err)
	}
	return &b, nil
}

func (b *Bundle) validate() error {
	if len(b.Columns) == 0 {
		return fmt.Errorf("no feature columns")
	}
	for _, col := range b.Columns {
		switch col.Kind {
		case KindNumeric:
		case KindCategorical:
			if _, ok := b.Encoders[col.Name]; !ok {
				return fmt.Errorf("categorical column %q has no encoder", col.Name)
			}
		default:
			return fmt.Errorf("column %q has unknown kind %q", col.Name, col.Kind)
		}
	}

	if len(b.Weights) == 0 {
		return fmt.Errorf("no weight rows")
	}
	for i, row := range b.Weights {
		if len(row) != len(b.Columns) {
			return fmt.Errorf("weight row %d has %d values, want %d", i, len(row), len(b.Columns))
		}
	}
	if len(b.Intercepts) != len(b.Weights) {
		return fmt.Errorf("%d intercepts for %d weight rows", len(b.Intercepts), len(b.Weights))
	}

	if b.IsClassification {
		n := len(b.TargetLabels)
		if n < 2 {
			return fmt.Errorf("classification bundle needs at least 2 target labels, got %d", n)
		}
		if len(b.Weights) != n && !(len(b.Weights) == 1 && n == 2) {
			return fmt.Errorf("%d weight rows for %d classes", len(b.Weights), n)
		}
	}
	return nil
}

// FeatureVector assembles the model input in training-time column
// order. Unseen categorical values encode to 0; missing or
// non-numeric numerics become 0.
func (b *Bundle) FeatureVector(features map[string]any) []float64 {
	vector := make([]float64, len(b.Columns))
	for i, col := range b.Columns {
		switch col.Kind {
		case KindCategorical:
			vector[i] = float64(b.encodeCategory(col.Name, features[col.Name]))
		default:
			vector[i] = coerceFloat(features[col.Name])
		}
	}
	return vector
}

func (b *Bundle) encodeCategory(column string, value any) int {
	classes := b.Encoders[column]
	label := fmt.Sprintf("%v", value)
	for i, class := range classes {
		if class == label {
			return i
		}
	}
	// Value never seen at training time.
	return 0
}

func coerceFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Predict runs the linear model over the assembled feature vector and
// maps the result onto [0,100].
func (b *Bundle) Predict(features map[string]any) (float64, error) {
	if len(b.Weights) == 0 {
		return 0, fmt.Errorf("model has no weights")
	}
	vector := b.FeatureVector(features)

	if !b.IsClassification {
		raw := dot(b.Weights[0], vector) + b.Intercepts[0]
		return clamp(raw, 0, 100), nil
	}

	numClasses := len(b.TargetLabels)
	class := 0
	if len(b.Weights) == 1 {
		// Binary model stored as a single margin row.
		if dot(b.Weights[0], vector)+b.Intercepts[0] > 0 {
			class = 1
		}
	} else {
		best := dot(b.Weights[0], vector) + b.Intercepts[0]
		for i := 1; i < len(b.Weights); i++ {
			margin := dot(b.Weights[i], vector) + b.Intercepts[i]
			if margin > best {
				best = margin
				class = i
			}
		}
	}
	return classScore(class, numClasses), nil
}

// classScore maps a predicted class index onto [0,100]. The 30/70 and
// 20+idx*30 anchors are kept for compatibility with historical scores;
// they are not derived from anything.
func classScore(class, numClasses int) float64 {
	switch numClasses {
	case 2:
		if class == 0 {
			return 30
		}
		return 70
	case 3:
		return 20 + float64(class)*30
	default:
		return float64(class) / float64(numClasses-1) * 100
	}
}

func dot(weights, vector []float64) float64 {
	var sum float64
	for i := range weights {
		sum += weights[i] * vector[i]
	}
	return sum
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
