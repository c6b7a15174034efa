// Package resultstore owns the single-slot reconciliation export: one xlsx
// artifact at a fixed path, overwritten by every successful run. Writes go to
// a temp file in the same directory and are published by rename, so a reader
// never observes a half-written workbook.
package resultstore

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"CourierReconSaas/internal/tabular"
)

// ErrNoResult signals a download attempt before any successful export.
var ErrNoResult = errors.New("no result file available")

// Store is the set/get-latest contract for the export slot. Kept small so the
// single global slot can later be swapped for a per-user store without
// touching the reconciliation logic.
type Store interface {
	Save(t *tabular.Table) error
	Latest() (data []byte, filename string, err error)
}

// XLSXStore publishes merged tables as a spreadsheet at a fixed path.
type XLSXStore struct {
	mu   sync.Mutex
	path string
}

func NewXLSXStore(path string) *XLSXStore {
	return &XLSXStore{path: path}
}

// Save serializes the table and atomically replaces the published artifact.
// Last successful reconciliation wins globally.
func (s *XLSXStore) Save(t *tabular.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for r, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			if v != "" {
				cells[i] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".result-*.xlsx")
	if err != nil {
		return err
	}
	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Latest returns the current artifact. ErrNoResult when nothing has been
// exported yet in this slot.
func (s *XLSXStore) Latest() ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrNoResult
		}
		return nil, "", err
	}
	return data, filepath.Base(s.path), nil
}
