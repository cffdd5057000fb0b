package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/veil-cli/internal/core/domain"
	"github.com/custodia-labs/veil-cli/internal/extractors/excel"
	"github.com/custodia-labs/veil-cli/internal/extractors/pdf"
)

// stubExtractor satisfies driven.Extractor for dispatch tests.
type stubExtractor struct {
	fileType domain.FileType
	exts     []string
}

func (s *stubExtractor) FileType() domain.FileType { return s.fileType }
func (s *stubExtractor) Extensions() []string      { return s.exts }

func (s *stubExtractor) Extract(context.Context, string) (<-chan domain.TextUnit, <-chan error) {
	units := make(chan domain.TextUnit)
	errs := make(chan error)
	close(units)
	close(errs)
	return units, errs
}

func TestRegistry_ForPath(t *testing.T) {
	pdfStub := &stubExtractor{fileType: domain.FileTypePDF, exts: []string{".pdf"}}
	excelStub := &stubExtractor{fileType: domain.FileTypeExcel, exts: []string{".xlsx", ".xls"}}
	registry := NewRegistry(pdfStub, excelStub)

	tests := []struct {
		name string
		path string
		want domain.FileType
		ok   bool
	}{
		{"pdf", "/data/report.pdf", domain.FileTypePDF, true},
		{"pdf uppercase extension", "/data/REPORT.PDF", domain.FileTypePDF, true},
		{"xlsx", "/data/book.xlsx", domain.FileTypeExcel, true},
		{"xls", "book.xls", domain.FileTypeExcel, true},
		{"unknown extension", "notes.txt", "", false},
		{"no extension", "README", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := registry.ForPath(tt.path)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.NotNil(t, e)
				assert.Equal(t, tt.want, e.FileType())
			}
		})
	}
}

func TestRegistry_Extensions_Sorted(t *testing.T) {
	registry := NewRegistry(
		&stubExtractor{fileType: domain.FileTypeExcel, exts: []string{".xlsx", ".xls"}},
		&stubExtractor{fileType: domain.FileTypePDF, exts: []string{".pdf"}},
	)

	assert.Equal(t, []string{".pdf", ".xls", ".xlsx"}, registry.Extensions())
}

func TestRegistry_LaterExtractorWinsCollision(t *testing.T) {
	first := &stubExtractor{fileType: domain.FileTypePDF, exts: []string{".pdf"}}
	second := &stubExtractor{fileType: domain.FileTypeExcel, exts: []string{".pdf"}}
	registry := NewRegistry(first, second)

	e, ok := registry.ForPath("file.pdf")

	require.True(t, ok)
	assert.Equal(t, domain.FileTypeExcel, e.FileType())
}

func TestRegistry_WithRealExtractors(t *testing.T) {
	registry := NewRegistry(pdf.New(), excel.New())

	assert.Equal(t, []string{".pdf", ".xls", ".xlsm", ".xlsx"}, registry.Extensions())

	e, ok := registry.ForPath("scan.pdf")
	require.True(t, ok)
	assert.Equal(t, domain.FileTypePDF, e.FileType())

	e, ok = registry.ForPath("sheet.xlsm")
	require.True(t, ok)
	assert.Equal(t, domain.FileTypeExcel, e.FileType())
}
