package csvexport

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tributo/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	assert.Len(t, row, 24)
	assert.Equal(t, "RUT", row[0])
	assert.Equal(t, "Código 538", row[4])
	assert.Equal(t, "Código 091", row[14])
	assert.Equal(t, "Total Créditos", row[15])
	assert.Equal(t, "Archived At", row[23])
}

func TestWriteDeclarations(t *testing.T) {
	created := time.Date(2024, 4, 12, 10, 30, 0, 0, time.UTC)
	decl := domain.Declaration{
		ID:            uuid.New(),
		TaxpayerID:    "76.123.456-7",
		Period:        "202403",
		FilingNumber:  "987654321",
		LegalName:     "COMERCIAL ANDES LIMITADA",
		Codes:         json.RawMessage(`{"538":1000000,"511":400000}`),
		NetCredit:     400000,
		NetPurchases:  2105263,
		DeterminedTax: 600000,
		TotalPayable:  600000,
		GrossMargin:   3157894,
		Confidence:    20,
		Method:        "pdf-text",
		OriginalName:  "f29_marzo.pdf",
		CreatedAt:     created,
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteDeclarations([]domain.Declaration{decl}))
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	require.Len(t, row, 24)
	assert.Equal(t, "76.123.456-7", row[0])
	assert.Equal(t, "1000000", row[4])
	assert.Equal(t, "0", row[5])
	assert.Equal(t, "400000", row[8])
	assert.Equal(t, "600000", row[17])
	assert.Equal(t, "20", row[20])
	assert.Equal(t, "pdf-text", row[21])
	assert.Equal(t, "2024-04-12T10:30:00Z", row[23])
}

func TestWriteDeclarations_BadCodesLeavesCodeColumnsEmpty(t *testing.T) {
	decl := domain.Declaration{TaxpayerID: "1-9", Codes: json.RawMessage(`[1,2]`)}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteDeclarations([]domain.Declaration{decl}))
	w.Flush()

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)
	assert.Equal(t, "1-9", row[0])
	for i := 4; i < 15; i++ {
		assert.Empty(t, row[i])
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"76.123.456-7", "76_123_456-7"},
		{"  spaces  ", "spaces"},
		{"a//b\\c", "a_b_c"},
		{strings.Repeat("x", 150), strings.Repeat("x", 100)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in))
	}
}

func TestBuildFilename(t *testing.T) {
	date := time.Now().Format("2006-01-02")
	assert.Equal(t, "f29_76_123_456-7_"+date+".csv", BuildFilename("76.123.456-7", "csv"))
	assert.Equal(t, "f29_"+date+".xlsx", BuildFilename("", "xlsx"))
}
