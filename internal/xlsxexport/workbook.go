// Package xlsxexport renders an archived declaration as an XLSX workbook.
package xlsxexport

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"tributo/internal/domain"
	"tributo/internal/f29"
)

// SheetName is the single sheet of the workbook.
const SheetName = "F29"

// Workbook returns the XLSX bytes for one declaration: identification block,
// code table in catalogue order, then derived totals.
func Workbook(d *domain.Declaration) ([]byte, error) {
	values, err := d.CodeValues()
	if err != nil {
		return nil, fmt.Errorf("xlsxexport: decoding codes: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsxexport: rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsxexport: style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, fmt.Errorf("xlsxexport: style: %w", err)
	}

	row := 1
	write := func(col int, v any, style int) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(SheetName, cell, v)
		if style != 0 {
			_ = f.SetCellStyle(SheetName, cell, cell, style)
		}
	}

	ident := [][2]string{
		{"RUT", d.TaxpayerID},
		{"Período", d.Period},
		{"Folio", d.FilingNumber},
		{"Razón Social", d.LegalName},
		{"Método", d.Method},
		{"Archivado", d.CreatedAt.UTC().Format(time.RFC3339)},
	}
	for _, kv := range ident {
		write(1, kv[0], bold)
		write(2, kv[1], 0)
		row++
	}
	write(1, "Confianza", bold)
	write(2, d.Confidence, 0)
	row += 2

	write(1, "Código", bold)
	write(2, "Descripción", bold)
	write(3, "Monto", bold)
	row++
	for _, field := range f29.Catalogue() {
		write(1, field.Code, 0)
		write(2, field.Label, 0)
		write(3, values[field.Code], amount)
		row++
	}
	row++

	totals := []struct {
		label string
		value int64
	}{
		{"Total Créditos", d.NetCredit},
		{"Compras Netas", d.NetPurchases},
		{"IVA Determinado", d.DeterminedTax},
		{"Total a Pagar", d.TotalPayable},
		{"Margen Bruto", d.GrossMargin},
	}
	for _, t := range totals {
		write(2, t.label, bold)
		write(3, t.value, amount)
		row++
	}

	_ = f.SetColWidth(SheetName, "A", "A", 16)
	_ = f.SetColWidth(SheetName, "B", "B", 44)
	_ = f.SetColWidth(SheetName, "C", "C", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsxexport: write: %w", err)
	}
	return buf.Bytes(), nil
}
