package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation and units", " Total Weight (kg)! ", "total_weight_kg"},
		{"already normalized", "order_id", "order_id"},
		{"mixed case", "AWB Number", "awb_number"},
		{"currency suffix", "Expected Charge as per X (Rs.)", "expected_charge_as_per_x_rs"},
		{"inner punctuation", "Delivery-Zone: as/per X", "deliveryzone_asper_x"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeColumn(tt.in))
		})
	}
}

func TestNormalizeColumnsPreservesOrderAndLength(t *testing.T) {
	in := []string{"Order ID", " AWB Number ", "Charges Billed by Courier Company (Rs.)"}
	got := NormalizeColumns(in)
	assert.Equal(t, []string{"order_id", "awb_number", "charges_billed_by_courier_company_rs"}, got)
}

func TestNormalizeColumnIdempotent(t *testing.T) {
	once := NormalizeColumn(" Weight Slab (kg) ")
	assert.Equal(t, once, NormalizeColumn(once))
}
