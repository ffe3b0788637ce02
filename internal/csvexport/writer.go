package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tributo/internal/domain"
	"tributo/internal/f29"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// leading identification columns; code and totals columns follow.
var identColumns = []string{
	"RUT",
	"Periodo",
	"Folio",
	"Razón Social",
}

var trailingColumns = []string{
	"Total Créditos",
	"Compras Netas",
	"IVA Determinado",
	"Total a Pagar",
	"Margen Bruto",
	"Confidence",
	"Method",
	"Original File",
	"Archived At",
}

// Columns returns the header row: identification, one column per catalogue
// code in scan order, then derived totals and archive metadata.
func Columns() []string {
	cols := make([]string, 0, len(identColumns)+f29.CatalogueSize()+len(trailingColumns))
	cols = append(cols, identColumns...)
	for _, f := range f29.Catalogue() {
		cols = append(cols, "Código "+f.Code)
	}
	return append(cols, trailingColumns...)
}

// Writer wraps csv.Writer for exporting declarations as CSV.
type Writer struct {
	csv     *csv.Writer
	columns []string
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w), columns: Columns()}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(w.columns)
}

// WriteDeclarations converts a batch of declarations to CSV rows and writes them.
func (w *Writer) WriteDeclarations(decls []domain.Declaration) error {
	for i := range decls {
		if err := w.csv.Write(declarationToRow(&decls[i], len(w.columns))); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// declarationToRow converts a single declaration to a row. Code columns stay
// empty when the archived codes cannot be decoded.
func declarationToRow(d *domain.Declaration, width int) []string {
	row := make([]string, 0, width)
	row = append(row, d.TaxpayerID, d.Period, d.FilingNumber, d.LegalName)

	values, err := d.CodeValues()
	for _, f := range f29.Catalogue() {
		if err != nil {
			row = append(row, "")
			continue
		}
		row = append(row, strconv.FormatInt(values[f.Code], 10))
	}

	return append(row,
		strconv.FormatInt(d.NetCredit, 10),
		strconv.FormatInt(d.NetPurchases, 10),
		strconv.FormatInt(d.DeterminedTax, 10),
		strconv.FormatInt(d.TotalPayable, 10),
		strconv.FormatInt(d.GrossMargin, 10),
		strconv.Itoa(d.Confidence),
		d.Method,
		d.OriginalName,
		d.CreatedAt.Format(time.RFC3339),
	)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition.
// Format: f29_{sanitized_scope}_{YYYY-MM-DD}.{ext}, scope omitted when empty.
func BuildFilename(scope, ext string) string {
	date := time.Now().Format("2006-01-02")
	if s := SanitizeFilename(scope); s != "" {
		return fmt.Sprintf("f29_%s_%s.%s", s, date, ext)
	}
	return fmt.Sprintf("f29_%s.%s", date, ext)
}
