package predict

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CourierReconSaas/internal/tabular"
)

func TestLoadLinearModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	artifact := "intercept: 1.5\ncoefficients:\n  - 2.0\n  - -0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(artifact), 0644))

	m, err := Load(path)
	require.NoError(t, err)

	preds, err := m.Predict([][]float64{{1, 2}, {0, 0}})
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 1.5}, preds)
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadRejectsEmptyCoefficients(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte("intercept: 0\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDescribeModelNotLoaded(t *testing.T) {
	a := NewAdapter(nil, 3)
	assert.False(t, a.Ready())

	merged := tabular.NewTable([]string{"x"}, [][]string{{"1"}})
	assert.Equal(t, "Model not loaded.", a.Describe(merged))
}

func TestDescribeNoNumericFeatures(t *testing.T) {
	a := NewAdapter(&LinearModel{Coefficients: []float64{1}}, 3)
	assert.True(t, a.Ready())

	merged := tabular.NewTable(
		[]string{"order_id", "awb_number"},
		[][]string{{"A1", "W1"}, {"A2", "W2"}},
	)
	assert.Equal(t, "Prediction skipped (no numeric features).", a.Describe(merged))
}

func TestDescribeGeneratesPredictions(t *testing.T) {
	a := NewAdapter(&LinearModel{Intercept: 10, Coefficients: []float64{1}}, 3)

	merged := tabular.NewTable(
		[]string{"order_id", "expected_charge_as_per_x_rs"},
		[][]string{{"A1", "5"}, {"A2", "15"}},
	)
	assert.Equal(t, "ML Insights: 2 predictions generated. Example: [15 25]", a.Describe(merged))
}

func TestDescribePreviewBounded(t *testing.T) {
	a := NewAdapter(&LinearModel{Coefficients: []float64{1}}, 2)

	merged := tabular.NewTable(
		[]string{"x"},
		[][]string{{"1"}, {"2"}, {"3"}, {"4"}},
	)
	assert.Equal(t, "ML Insights: 4 predictions generated. Example: [1 2]", a.Describe(merged))
}

func TestDescribeCoefficientMismatchReported(t *testing.T) {
	a := NewAdapter(&LinearModel{Coefficients: []float64{1, 1}}, 3)

	merged := tabular.NewTable(
		[]string{"x"},
		[][]string{{"1"}},
	)
	assert.Equal(t, "Prediction failed: model expects 2 features, got 1", a.Describe(merged))
}

type panickyModel struct{}

func (panickyModel) Predict([][]float64) ([]float64, error) { panic("scorer blew up") }

func TestDescribeRecoversFromScorerPanic(t *testing.T) {
	a := NewAdapter(panickyModel{}, 3)

	merged := tabular.NewTable([]string{"x"}, [][]string{{"1"}})
	assert.Equal(t, "Prediction failed: scorer blew up", a.Describe(merged))
}

type failingModel struct{}

func (failingModel) Predict([][]float64) ([]float64, error) {
	return nil, errors.New("remote scorer unavailable")
}

func TestDescribeScorerError(t *testing.T) {
	a := NewAdapter(failingModel{}, 3)

	merged := tabular.NewTable([]string{"x"}, [][]string{{"1"}})
	assert.Equal(t, "Prediction failed: remote scorer unavailable", a.Describe(merged))
}

func TestNumericFeatures(t *testing.T) {
	table := tabular.NewTable(
		[]string{"order_id", "expected_charge_as_per_x_rs", "charges_billed_by_courier_company_rs"},
		[][]string{
			{"A1", "100", "90"},
			{"A2", "50", ""},
		},
	)

	features, ok := NumericFeatures(table)
	require.True(t, ok)
	require.Len(t, features, 2)
	assert.Equal(t, []float64{100, 90}, features[0])
	assert.Equal(t, 50.0, features[1][0])
	assert.True(t, features[1][1] != features[1][1], "null cell should become NaN")
}

func TestNumericFeaturesMixedColumnExcluded(t *testing.T) {
	// one unparseable non-null cell disqualifies the whole column
	table := tabular.NewTable(
		[]string{"charge"},
		[][]string{{"100"}, {"pending"}},
	)

	_, ok := NumericFeatures(table)
	assert.False(t, ok)
}
