package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableFromCSV(t *testing.T, name, csv string) *Table {
	t.Helper()
	table, err := ParseUpload(name, []byte(csv))
	require.NoError(t, err)
	return table
}

func TestReconcileSpecExample(t *testing.T) {
	table := tableFromCSV(t, "orders.csv",
		"order_id,expected_charge_as_per_x_rs,charges_billed_by_courier_company_rs\nA1,100,90\nA2,50,50\n")

	result, err := Reconcile([]*Table{table})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.Correct.Count)
	assert.Equal(t, 50.0, result.Summary.Correct.Amount)
	assert.Equal(t, 0, result.Summary.Over.Count)
	assert.Equal(t, 0.0, result.Summary.Over.Amount)
	assert.Equal(t, 1, result.Summary.Under.Count)
	assert.Equal(t, 10.0, result.Summary.Under.Amount)

	assert.Equal(t, []string{"Correct", "Overcharged", "Undercharged"}, result.ChartLabels)
	assert.Equal(t, []int{1, 0, 1}, result.ChartData)
}

func TestReconcileAllMatchingCharges(t *testing.T) {
	table := tableFromCSV(t, "orders.csv",
		"order_id,expected_charge_as_per_x_rs,charges_billed_by_courier_company_rs\nA1,75,75\nA2,120.50,120.50\nA3,10,10\n")

	result, err := Reconcile([]*Table{table})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Summary.Correct.Count)
	assert.Equal(t, 0, result.Summary.Over.Count)
	assert.Equal(t, 0, result.Summary.Under.Count)
	assert.Equal(t, len(result.Merged.Rows), result.Summary.Correct.Count)
}

func TestReconcileOverchargeAmountSignFlipped(t *testing.T) {
	table := tableFromCSV(t, "orders.csv",
		"order_id,expected_charge_as_per_x_rs,charges_billed_by_courier_company_rs\nA1,90,100\nA2,40,65.25\n")

	result, err := Reconcile([]*Table{table})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Summary.Over.Count)
	assert.Equal(t, 35.25, result.Summary.Over.Amount)
	assert.GreaterOrEqual(t, result.Summary.Over.Amount, 0.0)
	assert.GreaterOrEqual(t, result.Summary.Under.Amount, 0.0)
	assert.GreaterOrEqual(t, result.Summary.Correct.Amount, 0.0)
}

func TestReconcileNullDifferenceExcludedFromBuckets(t *testing.T) {
	table := tableFromCSV(t, "orders.csv",
		"order_id,expected_charge_as_per_x_rs,charges_billed_by_courier_company_rs\nA1,100,90\nA2,not-a-number,50\nA3,70,\n")

	result, err := Reconcile([]*Table{table})
	require.NoError(t, err)

	total := result.Summary.Correct.Count + result.Summary.Over.Count + result.Summary.Under.Count
	assert.Equal(t, 1, total)
	assert.Len(t, result.Merged.Rows, 3) // null-difference rows stay in the merged table

	diff := result.Merged.Column(ColDifference)
	assert.Equal(t, "10", diff[0])
	assert.Equal(t, "", diff[1])
	assert.Equal(t, "", diff[2])
}

func TestReconcileBucketCountsMatchRowsWhenNoNulls(t *testing.T) {
	table := tableFromCSV(t, "orders.csv",
		"order_id,expected_charge_as_per_x_rs,charges_billed_by_courier_company_rs\nA1,1,2\nA2,2,1\nA3,3,3\n")

	result, err := Reconcile([]*Table{table})
	require.NoError(t, err)

	total := result.Summary.Correct.Count + result.Summary.Over.Count + result.Summary.Under.Count
	assert.Equal(t, len(result.Merged.Rows), total)
}

func TestReconcileInjectsRequiredColumns(t *testing.T) {
	table := tableFromCSV(t, "orders.csv", "order_id\nA1\n")

	result, err := Reconcile([]*Table{table})
	require.NoError(t, err)

	for _, col := range RequiredColumns {
		assert.True(t, result.Merged.HasColumn(col), "missing required column %s", col)
	}
	assert.True(t, result.Merged.HasColumn(ColDifference))

	// with both charge columns injected as null, no row lands in a bucket
	assert.Equal(t, 0, result.Summary.Correct.Count+result.Summary.Over.Count+result.Summary.Under.Count)
}

func TestReconcileMergesMultipleFilesInUploadOrder(t *testing.T) {
	first := tableFromCSV(t, "a.csv",
		"order_id,expected_charge_as_per_x_rs,charges_billed_by_courier_company_rs\nA1,10,10\n")
	second := tableFromCSV(t, "b.csv",
		"order_id,awb_number\nB1,W1\nB2,W2\n")

	result, err := Reconcile([]*Table{first, second})
	require.NoError(t, err)

	orderIDs := result.Merged.Column(ColOrderID)
	assert.Equal(t, []string{"A1", "B1", "B2"}, orderIDs)

	// column set is the union; rows from the first file have null awb_number
	awb := result.Merged.Column(ColAWBNumber)
	assert.Equal(t, []string{"", "W1", "W2"}, awb)
}

func TestReconcileNoTables(t *testing.T) {
	_, err := Reconcile(nil)
	assert.ErrorIs(t, err, ErrNoValidFiles)
}

func TestMergeUnionColumnOrder(t *testing.T) {
	a := NewTable([]string{"x", "y"}, [][]string{{"1", "2"}})
	b := NewTable([]string{"y", "z"}, [][]string{{"3", "4"}})

	merged := Merge([]*Table{a, b})
	assert.Equal(t, []string{"x", "y", "z"}, merged.Columns)
	assert.Equal(t, []string{"1", "2", ""}, merged.Rows[0])
	assert.Equal(t, []string{"", "3", "4"}, merged.Rows[1])
}
