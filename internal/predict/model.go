package predict

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"CourierReconSaas/internal/tabular"
)

// Model is an externally trained scoring function over a numeric feature
// matrix. It must be arity-preserving: one prediction per input row.
type Model interface {
	Predict(features [][]float64) ([]float64, error)
}

// LinearModel is the shipped artifact format: a plain linear scorer whose
// coefficients are trained offline and exported to YAML.
type LinearModel struct {
	Intercept    float64   `yaml:"intercept"`
	Coefficients []float64 `yaml:"coefficients"`
}

func (m *LinearModel) Predict(features [][]float64) ([]float64, error) {
	preds := make([]float64, len(features))
	for i, row := range features {
		if len(row) != len(m.Coefficients) {
			return nil, fmt.Errorf("model expects %d features, got %d", len(m.Coefficients), len(row))
		}
		y := m.Intercept
		for j, x := range row {
			y += m.Coefficients[j] * x
		}
		preds[i] = y
	}
	return preds, nil
}

// Load reads a model artifact from the well-known path. Called once at
// process startup; a missing or unreadable artifact is a normal state and the
// caller runs without predictions.
func Load(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m LinearModel
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model artifact %s: %w", path, err)
	}
	if len(m.Coefficients) == 0 {
		return nil, fmt.Errorf("model artifact %s has no coefficients", path)
	}
	return &m, nil
}

// Adapter feeds merged tables to the scoring function and renders the outcome
// as presentation text. The model may be nil ("not configured").
type Adapter struct {
	model   Model
	preview int
}

func NewAdapter(model Model, preview int) *Adapter {
	return &Adapter{model: model, preview: preview}
}

// Ready reports whether a scoring function is configured.
func (a *Adapter) Ready() bool { return a.model != nil }

// Describe scores the numeric columns of the merged table and returns one of
// the four mutually exclusive outcome texts. Scorer errors and panics are
// absorbed here; they never abort the surrounding request.
func (a *Adapter) Describe(merged *tabular.Table) (text string) {
	if a.model == nil {
		return "Model not loaded."
	}
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("Prediction failed: %v", r)
		}
	}()

	features, ok := NumericFeatures(merged)
	if !ok {
		return "Prediction skipped (no numeric features)."
	}
	preds, err := a.model.Predict(features)
	if err != nil {
		return fmt.Sprintf("Prediction failed: %v", err)
	}
	n := a.preview
	if n > len(preds) {
		n = len(preds)
	}
	return fmt.Sprintf("ML Insights: %d predictions generated. Example: %v", len(preds), preds[:n])
}

// NumericFeatures selects the table's numeric-typed columns and returns the
// row-major feature matrix. A column is numeric when it has at least one
// parseable value and no non-null unparseable ones; null cells become NaN.
// The second return is false when no column qualifies.
func NumericFeatures(t *tabular.Table) ([][]float64, bool) {
	var numericIdx []int
	for i := range t.Columns {
		parseable, nonNull := 0, 0
		for _, row := range t.Rows {
			if row[i] == "" {
				continue
			}
			nonNull++
			if _, ok := tabular.ParseDecimal(row[i]); ok {
				parseable++
			}
		}
		if nonNull > 0 && parseable == nonNull {
			numericIdx = append(numericIdx, i)
		}
	}
	if len(numericIdx) == 0 {
		return nil, false
	}

	features := make([][]float64, len(t.Rows))
	for r, row := range t.Rows {
		vec := make([]float64, len(numericIdx))
		for j, i := range numericIdx {
			if d, ok := tabular.ParseDecimal(row[i]); ok {
				vec[j], _ = d.Float64()
			} else {
				vec[j] = math.NaN()
			}
		}
		features[r] = vec
	}
	return features, true
}
