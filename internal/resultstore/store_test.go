package resultstore

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"CourierReconSaas/internal/tabular"
)

func TestLatestBeforeAnyExport(t *testing.T) {
	store := NewXLSXStore(filepath.Join(t.TempDir(), "result_output.xlsx"))

	_, _, err := store.Latest()
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestSaveAndLatestRoundTrip(t *testing.T) {
	store := NewXLSXStore(filepath.Join(t.TempDir(), "result_output.xlsx"))

	table := tabular.NewTable(
		[]string{"order_id", "difference"},
		[][]string{{"A1", "10"}, {"A2", ""}},
	)
	require.NoError(t, store.Save(table))

	data, name, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, "result_output.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"order_id", "difference"}, rows[0])
	assert.Equal(t, []string{"A1", "10"}, rows[1])
	assert.Equal(t, "A2", rows[2][0])
}

func TestSaveOverwritesPreviousExport(t *testing.T) {
	store := NewXLSXStore(filepath.Join(t.TempDir(), "result_output.xlsx"))

	first := tabular.NewTable([]string{"order_id"}, [][]string{{"OLD"}})
	require.NoError(t, store.Save(first))

	second := tabular.NewTable([]string{"order_id"}, [][]string{{"NEW"}})
	require.NoError(t, store.Save(second))

	data, _, err := store.Latest()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "NEW", rows[1][0])
}

func TestSaveCreatesInstanceDir(t *testing.T) {
	store := NewXLSXStore(filepath.Join(t.TempDir(), "instance", "result_output.xlsx"))

	table := tabular.NewTable([]string{"order_id"}, [][]string{{"A1"}})
	require.NoError(t, store.Save(table))

	_, _, err := store.Latest()
	assert.NoError(t, err)
}
