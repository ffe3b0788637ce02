package f29_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tributo/internal/domain"
	"tributo/internal/extractor"
	"tributo/internal/extractor/pdftext"
	"tributo/internal/extractor/pdftext/pdftest"
	"tributo/internal/f29"
)

func newDirectPipeline() *f29.Pipeline {
	direct := pdftext.New()
	selector := extractor.NewSelector(direct, direct, nil, zerolog.Nop())
	return f29.NewPipeline(f29.NewLoader(0), selector, zerolog.Nop())
}

func TestPipeline_TextLayerPDF(t *testing.T) {
	raw := pdftest.TextPage(strings.Split(fullForm, "\n")...)

	out := newDirectPipeline().Run(context.Background(), raw, "application/pdf", int64(len(raw)))

	require.True(t, out.Success, out.Error)
	assert.Equal(t, domain.MethodDirectText, out.Method)
	assert.Equal(t, 100, out.Confidence)
	assert.Equal(t, "76.123.456-7", out.Snapshot.TaxpayerID)
	assert.Equal(t, "202403", out.Snapshot.Period)
	assert.Equal(t, "987654321", out.Snapshot.FilingNumber)
	assert.Equal(t, int64(1000000), out.Snapshot.Codes.Value("538"))
	assert.Equal(t, int64(645000), out.Snapshot.Codes.Value("091"))
	assert.Equal(t, int64(600000), out.Snapshot.Totals.DeterminedTax)
}

func TestPipeline_PartialTextLayerPDF(t *testing.T) {
	raw := pdftest.TextPage(
		"PERIODO TRIBUTARIO 202311",
		"RUT CONTRIBUYENTE 9.876.543-K",
		"538 TOTAL DEBITOS 1.000.000",
		"511 CRED. IVA 400.000",
		"504 REMANENTE 20.000",
		"062 P.P.M. 15.000",
		"048 IMP. UNICO 30.000",
	)

	out := newDirectPipeline().Run(context.Background(), raw, "application/pdf", int64(len(raw)))

	require.True(t, out.Success, out.Error)
	assert.Equal(t, 50, out.Confidence)
	assert.Equal(t, "9.876.543-K", out.Snapshot.TaxpayerID)
	assert.Equal(t, domain.NotAvailable, out.Snapshot.FilingNumber)
	assert.Equal(t, int64(0), out.Snapshot.Codes.Value("091"))
	assert.Equal(t, int64(645000), out.Snapshot.Totals.TotalPayable)
}

func TestPipeline_PDFWithoutCatalogueCodes(t *testing.T) {
	raw := pdftest.TextPage(strings.Split(noCodesForm, "\n")...)

	out := newDirectPipeline().Run(context.Background(), raw, "application/pdf", int64(len(raw)))

	assert.False(t, out.Success)
	assert.Equal(t, domain.FailureNoCodesRecognized, out.Error)
	assert.Equal(t, domain.MethodDirectText, out.Method)
}
