package tabular

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Column names the summarizer and reconciler key on.
const (
	ColOrderID         = "order_id"
	ColAWBNumber       = "awb_number"
	ColTotalWeight     = "total_weight_as_per_x_kg"
	ColWeightSlab      = "weight_slab_as_per_x_kg"
	ColCourierWeight   = "total_weight_as_per_courier_company_kg"
	ColCourierSlab     = "weight_slab_charged_by_courier_company_kg"
	ColDeliveryZone    = "delivery_zone_as_per_x"
	ColCourierZone     = "delivery_zone_charged_by_courier_company"
	ColExpectedCharge  = "expected_charge_as_per_x_rs"
	ColBilledCharge    = "charges_billed_by_courier_company_rs"
	ColDifference      = "difference"
)

// NotAvailable is the display sentinel for stats whose source column is
// absent from the file.
const NotAvailable = "N/A"

// FileSummary carries the per-upload quick stats and preview handed to the
// presentation layer. AvgWeight and TotalCost are either a float64 or the
// "N/A" string.
type FileSummary struct {
	Filename    string                   `json:"filename"`
	TotalOrders int                      `json:"total_orders"`
	AvgWeight   interface{}              `json:"avg_weight"`
	TotalCost   interface{}              `json:"total_cost"`
	ChartLabels []string                 `json:"chart_labels"`
	ChartData   []int                    `json:"chart_data"`
	Preview     []map[string]interface{} `json:"preview"`
}

// Summarize computes the quick stats for one normalized upload. Everything is
// best-effort: a missing column yields "N/A" (or empty chart series) and
// unparseable numeric cells are simply excluded, never an error.
func Summarize(t *Table, filename string, previewRows, topZones int) *FileSummary {
	s := &FileSummary{
		Filename:    filename,
		TotalOrders: len(t.Rows),
		AvgWeight:   NotAvailable,
		TotalCost:   NotAvailable,
		ChartLabels: []string{},
		ChartData:   []int{},
		Preview:     t.Records(previewRows),
	}

	if t.HasColumn(ColTotalWeight) {
		if mean, ok := columnMean(t.Column(ColTotalWeight)); ok {
			s.AvgWeight, _ = mean.Round(3).Float64()
		}
	}
	if t.HasColumn(ColBilledCharge) {
		sum := columnSum(t.Column(ColBilledCharge))
		s.TotalCost, _ = sum.Round(2).Float64()
	}
	if t.HasColumn(ColDeliveryZone) {
		s.ChartLabels, s.ChartData = topValueCounts(t.Column(ColDeliveryZone), topZones)
	}
	return s
}

func columnMean(values []string) (decimal.Decimal, bool) {
	sum := decimal.Zero
	n := 0
	for _, v := range values {
		if d, ok := ParseDecimal(v); ok {
			sum = sum.Add(d)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, false
	}
	return sum.DivRound(decimal.NewFromInt(int64(n)), 6), true
}

func columnSum(values []string) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		if d, ok := ParseDecimal(v); ok {
			sum = sum.Add(d)
		}
	}
	return sum
}

// topValueCounts returns up to limit (label, count) pairs ordered by
// descending frequency, label ascending on ties. Null cells are skipped.
func topValueCounts(values []string, limit int) ([]string, []int) {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	if len(labels) > limit {
		labels = labels[:limit]
	}
	data := make([]int, len(labels))
	for i, label := range labels {
		data[i] = counts[label]
	}
	return labels, data
}
