// Package excel extracts flattened row lines from OOXML workbooks.
// Sheets are read in workbook order and each non-empty row becomes one
// line of the form "Sheet | C1:value | C3:value", tagging every
// non-empty cell with its 1-based column number.
package excel

import (
	"archive/zip"
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor streams one text unit per non-empty workbook row.
// Tabular units carry no page number.
type Extractor struct{}

// New creates a new workbook extractor.
func New() *Extractor {
	return &Extractor{}
}

// FileType returns the record file type this extractor yields.
func (e *Extractor) FileType() domain.FileType {
	return domain.FileTypeExcel
}

// Extensions returns the file extensions this extractor handles.
// Legacy .xls files are accepted by extension; ones that are not
// actually OOXML containers fail at open and become an isolated
// file-level failure.
func (e *Extractor) Extensions() []string {
	return []string{".xlsx", ".xls", ".xlsm"}
}

// Extract streams the workbook's flattened row lines.
// The stream is lazy, finite and single-pass; both channels are
// closed when the last sheet has been read. Decode failures at the
// container level are sent on the error channel.
func (e *Extractor) Extract(ctx context.Context, path string) (<-chan domain.TextUnit, <-chan error) {
	units := make(chan domain.TextUnit)
	errs := make(chan error, 1)

	go func() {
		defer close(units)
		defer close(errs)

		zr, err := zip.OpenReader(path)
		if err != nil {
			errs <- fmt.Errorf("opening workbook: %w", err)
			return
		}
		defer zr.Close()

		wb, err := parseWorkbook(&zr.Reader)
		if err != nil {
			errs <- fmt.Errorf("parsing workbook: %w", err)
			return
		}

		for _, sheet := range wb.sheets {
			rows, err := parseSheetRows(&zr.Reader, sheet.target, wb.shared)
			if err != nil {
				errs <- fmt.Errorf("parsing sheet %s: %w", sheet.name, err)
				return
			}

			for _, row := range rows {
				line := flattenRow(sheet.name, row)
				if line == "" {
					continue
				}
				select {
				case units <- domain.TextUnit{Text: line}:
				case <-ctx.Done():
					errs <- ctx.Err()
					return
				}
			}
		}
	}()

	return units, errs
}

// flattenRow renders one row as "Sheet | C<n>:value | ...", skipping
// cells that are empty after trimming. Returns "" for empty rows.
func flattenRow(sheet string, row []cellValue) string {
	pieces := make([]string, 0, len(row))
	for _, cell := range row {
		value := strings.TrimSpace(cell.value)
		if value == "" {
			continue
		}
		pieces = append(pieces, fmt.Sprintf("C%d:%s", cell.column, value))
	}
	if len(pieces) == 0 {
		return ""
	}
	return sheet + " | " + strings.Join(pieces, " | ")
}
