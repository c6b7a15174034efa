package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// ParseUpload turns one uploaded payload into a table with normalized column
// names. The format is picked from the filename extension (case-insensitive):
// .csv, .xlsx or .xls. Anything else yields UnsupportedFormatError, malformed
// content yields ParseError; both are file-scoped. The payload is never
// written to persistent storage and the caller keeps ownership of the buffer.
func ParseUpload(filename string, data []byte) (*Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = parseCSV(data)
	case ".xlsx":
		rows, err = parseXLSX(data)
	case ".xls":
		rows, err = parseXLS(data)
	default:
		return nil, &UnsupportedFormatError{Filename: filename}
	}
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Filename: filename, Err: errors.New("file has no header row")}
	}
	return NewTable(NormalizeColumns(rows[0]), rows[1:]), nil
}

func parseCSV(data []byte) ([][]string, error) {
	br := bufio.NewReader(bytes.NewReader(data))
	peek, _ := br.Peek(1024)

	delimiter := ','
	if bytes.Contains(peek, []byte(";")) && !bytes.Contains(peek, []byte(",")) {
		delimiter = ';'
	} else if bytes.Contains(peek, []byte("\t")) && !bytes.Contains(peek, []byte(",")) {
		delimiter = '\t'
	}

	// strip UTF-8 BOM
	if len(peek) >= 3 && peek[0] == 0xEF && peek[1] == 0xBB && peek[2] == 0xBF {
		br.Discard(3)
	}

	r := csv.NewReader(br)
	r.Comma = delimiter
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	clean := make([][]string, 0, len(records))
	for _, row := range records {
		if len(strings.TrimSpace(strings.Join(row, ""))) == 0 {
			continue
		}
		clean = append(clean, row)
	}
	return clean, nil
}

func parseXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	return f.GetRows(sheet)
}

// parseXLS reads a legacy Excel workbook. xlsReader wants a file path, so the
// payload goes through a throwaway temp file that is removed before return.
func parseXLS(data []byte) ([][]string, error) {
	tmp, err := os.CreateTemp("", "upload-*.xls")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	book, err := xls.OpenFile(tmp.Name())
	if err != nil {
		return nil, err
	}
	sheet, err := book.GetSheet(0)
	if err != nil || sheet == nil {
		return nil, errors.New("workbook has no readable sheet")
	}
	var rows [][]string
	for _, xlsRow := range sheet.GetRows() {
		var vals []string
		for _, col := range xlsRow.GetCols() {
			vals = append(vals, col.GetString())
		}
		rows = append(rows, vals)
	}
	return rows, nil
}
