package tabular

import (
	"errors"
	"fmt"
)

// ErrNoValidFiles is returned when every uploaded file was rejected or failed
// to parse, leaving nothing to merge.
var ErrNoValidFiles = errors.New("no valid files processed")

// UnsupportedFormatError marks a file whose extension is not csv/xlsx/xls.
// It is file-scoped: the caller skips the file and continues the batch.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Filename)
}

// ParseError marks a file whose content could not be parsed in its declared
// format. File-scoped, skip-and-continue like UnsupportedFormatError.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error in %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
