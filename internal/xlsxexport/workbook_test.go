package xlsxexport_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tributo/internal/domain"
	"tributo/internal/xlsxexport"
)

func TestWorkbook(t *testing.T) {
	decl := &domain.Declaration{
		TaxpayerID:    "76.123.456-7",
		Period:        "202403",
		FilingNumber:  "987654321",
		LegalName:     "COMERCIAL ANDES LIMITADA",
		Codes:         json.RawMessage(`{"538":1000000,"511":400000}`),
		DeterminedTax: 600000,
		TotalPayable:  600000,
		Confidence:    20,
		Method:        "pdf-text",
		CreatedAt:     time.Date(2024, 4, 12, 10, 30, 0, 0, time.UTC),
	}

	data, err := xlsxexport.Workbook(decl)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxexport.SheetName}, f.GetSheetList())

	cell := func(ref string) string {
		v, err := f.GetCellValue(xlsxexport.SheetName, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "RUT", cell("A1"))
	assert.Equal(t, "76.123.456-7", cell("B1"))
	assert.Equal(t, "202403", cell("B2"))
	assert.Equal(t, "Confianza", cell("A7"))
	assert.Equal(t, "20", cell("B7"))

	// code table header on row 9, first code on row 10
	assert.Equal(t, "Código", cell("A9"))
	assert.Equal(t, "538", cell("A10"))

	rows, err := f.GetRows(xlsxexport.SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1000000", rows[9][2])
	assert.Equal(t, "091", rows[19][0])

	// totals start after a blank row
	assert.Equal(t, "Total Créditos", rows[21][1])
	assert.Equal(t, "IVA Determinado", rows[23][1])
	assert.Equal(t, "600000", rows[23][2])
}

func TestWorkbook_BadCodes(t *testing.T) {
	_, err := xlsxexport.Workbook(&domain.Declaration{Codes: json.RawMessage(`"x"`)})
	assert.Error(t, err)
}
