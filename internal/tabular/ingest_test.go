package tabular

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseUploadCSV(t *testing.T) {
	data := []byte("Order ID,Expected Charge as per X (Rs.),Charges Billed by Courier Company (Rs.)\nA1,100,90\nA2,50,50\n")
	table, err := ParseUpload("orders.csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"order_id", "expected_charge_as_per_x_rs", "charges_billed_by_courier_company_rs"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"A1", "100", "90"}, table.Rows[0])
	assert.Equal(t, []string{"A2", "50", "50"}, table.Rows[1])
}

func TestParseUploadCSVWithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("order_id,awb_number\nA1,X9\n")...)
	table, err := ParseUpload("orders.CSV", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"order_id", "awb_number"}, table.Columns)
	require.Len(t, table.Rows, 1)
}

func TestParseUploadCSVSkipsEmptyRows(t *testing.T) {
	data := []byte("order_id,awb_number\nA1,X9\n,\nA2,X8\n")
	table, err := ParseUpload("orders.csv", data)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "A2", table.Rows[1][0])
}

func TestParseUploadRaggedRows(t *testing.T) {
	data := []byte("order_id,awb_number,delivery_zone_as_per_x\nA1,X9\nA2,X8,Z-A,extra\n")
	table, err := ParseUpload("orders.csv", data)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"A1", "X9", ""}, table.Rows[0])
	assert.Equal(t, []string{"A2", "X8", "Z-A"}, table.Rows[1])
}

func TestParseUploadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Order ID", "Total Weight (kg)"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"A1", 1.25}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"A2", 2.5}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	table, err := ParseUpload("orders.xlsx", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"order_id", "total_weight_kg"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "A1", table.Rows[0][0])
	assert.Equal(t, "1.25", table.Rows[0][1])
}

func TestParseUploadUnsupportedExtension(t *testing.T) {
	_, err := ParseUpload("orders.txt", []byte("order_id\nA1\n"))
	var unsupported *UnsupportedFormatError
	assert.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "orders.txt", unsupported.Filename)
}

func TestParseUploadMalformedXLSX(t *testing.T) {
	_, err := ParseUpload("orders.xlsx", []byte("this is not a workbook"))
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "orders.xlsx", parseErr.Filename)
}

func TestParseUploadEmptyPayload(t *testing.T) {
	_, err := ParseUpload("orders.csv", nil)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseUploadDuplicateHeadersLastWins(t *testing.T) {
	data := []byte("Order ID,order_id\nfirst,second\n")
	table, err := ParseUpload("orders.csv", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"order_id"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "second", table.Rows[0][0])
}
