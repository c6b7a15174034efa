package tabular

import (
	"github.com/shopspring/decimal"
)

// RequiredColumns is the fixed schema every merged table must carry. Columns
// absent from all uploads are injected as all-null rather than omitted.
var RequiredColumns = []string{
	ColOrderID,
	ColAWBNumber,
	ColTotalWeight,
	ColWeightSlab,
	ColCourierWeight,
	ColCourierSlab,
	ColDeliveryZone,
	ColCourierZone,
	ColExpectedCharge,
	ColBilledCharge,
}

// ChartLabels is the fixed bucket order of the reconciliation chart series.
var ChartLabels = []string{"Correct", "Overcharged", "Undercharged"}

// Bucket is one classification of reconciled rows with its row count and
// aggregate amount. Amounts are non-negative in every bucket.
type Bucket struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// Summary groups reconciled rows by the sign of the per-row difference.
type Summary struct {
	Correct Bucket `json:"correct"`
	Over    Bucket `json:"over"`
	Under   Bucket `json:"under"`
}

// Result is the output of one reconciliation run over all successfully
// ingested uploads.
type Result struct {
	Merged      *Table
	Summary     Summary
	ChartLabels []string
	ChartData   []int
}

// Merge row-concatenates the tables in upload order. The merged column set is
// the union of all input columns, first-seen order; cells a table lacks are
// null.
func Merge(tables []*Table) *Table {
	var cols []string
	seen := make(map[string]bool)
	for _, t := range tables {
		for _, c := range t.Columns {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}

	var rows [][]string
	for _, t := range tables {
		idx := make([]int, len(cols))
		for i, c := range cols {
			idx[i] = t.ColumnIndex(c)
		}
		for _, src := range t.Rows {
			row := make([]string, len(cols))
			for i, j := range idx {
				if j >= 0 {
					row[i] = src[j]
				}
			}
			rows = append(rows, row)
		}
	}
	return &Table{Columns: cols, Rows: rows}
}

// Reconcile merges the given tables, injects the required schema, computes the
// per-row difference column and classifies every row into the summary buckets.
// Rows whose difference is null (either charge column unparseable or missing)
// stay in the merged table but are excluded from all three buckets.
//
// Column alignment is by normalized name only; files reporting weights or
// charges in different units merge without validation. Known gap, kept for
// parity with the upstream behavior.
func Reconcile(tables []*Table) (*Result, error) {
	if len(tables) == 0 {
		return nil, ErrNoValidFiles
	}

	merged := Merge(tables)
	for _, col := range RequiredColumns {
		if !merged.HasColumn(col) {
			merged.AddColumn(col, nil)
		}
	}

	expIdx := merged.ColumnIndex(ColExpectedCharge)
	billIdx := merged.ColumnIndex(ColBilledCharge)

	var summary Summary
	correctAmt, overAmt, underAmt := decimal.Zero, decimal.Zero, decimal.Zero
	diffCol := make([]string, len(merged.Rows))

	for i, row := range merged.Rows {
		expected, okE := ParseDecimal(row[expIdx])
		billed, okB := ParseDecimal(row[billIdx])
		if !okE || !okB {
			continue // null difference, excluded from buckets
		}
		diff := expected.Sub(billed)
		diffCol[i] = diff.String()
		switch diff.Sign() {
		case 0:
			summary.Correct.Count++
			correctAmt = correctAmt.Add(billed)
		case -1:
			summary.Over.Count++
			overAmt = overAmt.Add(diff.Neg())
		case 1:
			summary.Under.Count++
			underAmt = underAmt.Add(diff)
		}
	}
	merged.AddColumn(ColDifference, diffCol)

	summary.Correct.Amount, _ = correctAmt.Float64()
	summary.Over.Amount, _ = overAmt.Float64()
	summary.Under.Amount, _ = underAmt.Float64()

	return &Result{
		Merged:      merged,
		Summary:     summary,
		ChartLabels: ChartLabels,
		ChartData:   []int{summary.Correct.Count, summary.Over.Count, summary.Under.Count},
	}, nil
}
