package f29_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tributo/internal/domain"
	"tributo/internal/f29"
	"tributo/mocks"
)

var pdfBytes = []byte("%PDF-1.4 form")

func newPipeline(text string, method domain.ExtractionMethod) (*f29.Pipeline, *mocks.MockTextExtractor) {
	ex := new(mocks.MockTextExtractor)
	ex.On("Extract", mock.Anything, mock.Anything).
		Return(&domain.ExtractedText{Text: text, Pages: 1, Method: method}, nil)
	return f29.NewPipeline(f29.NewLoader(0), ex, zerolog.Nop()), ex
}

func TestPipeline_WellFormedDeclaration(t *testing.T) {
	p, _ := newPipeline(fullForm, domain.MethodDirectText)

	out := p.Run(context.Background(), pdfBytes, "application/pdf", int64(len(pdfBytes)))

	require.True(t, out.Success)
	require.NotNil(t, out.Snapshot)
	assert.Empty(t, out.Error)
	assert.Equal(t, domain.StateScoredSuccess, out.State)
	assert.Equal(t, 100, out.Confidence)
	assert.Equal(t, domain.MethodDirectText, out.Method)
	assert.Equal(t, "76.123.456-7", out.Snapshot.TaxpayerID)
	assert.Equal(t, int64(600000), out.Snapshot.Totals.DeterminedTax)
	assert.Equal(t, int64(420000), out.Snapshot.Totals.NetCredit)
	assert.Equal(t, int64(645000), out.Snapshot.Totals.TotalPayable)
}

func TestPipeline_NoCodesRecognized(t *testing.T) {
	p, _ := newPipeline(noCodesForm, domain.MethodDirectText)

	out := p.Run(context.Background(), pdfBytes, "application/pdf", int64(len(pdfBytes)))

	assert.False(t, out.Success)
	assert.Nil(t, out.Snapshot)
	assert.Equal(t, domain.FailureNoCodesRecognized, out.Error)
	assert.Equal(t, domain.StateFailed, out.State)
	assert.Equal(t, 0, out.Confidence)
}

func TestPipeline_InvalidMediaTypeSkipsExtraction(t *testing.T) {
	p, ex := newPipeline(fullForm, domain.MethodDirectText)

	out := p.Run(context.Background(), []byte("PNG"), "image/png", 3)

	assert.False(t, out.Success)
	assert.Equal(t, domain.FailureInvalidMediaType, out.Error)
	ex.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestPipeline_PayloadTooLarge(t *testing.T) {
	ex := new(mocks.MockTextExtractor)
	p := f29.NewPipeline(f29.NewLoader(4), ex, zerolog.Nop())

	out := p.Run(context.Background(), pdfBytes, "application/pdf", int64(len(pdfBytes)))

	assert.False(t, out.Success)
	assert.Equal(t, domain.FailurePayloadTooLarge, out.Error)
	ex.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestPipeline_ExtractionFailure(t *testing.T) {
	ex := new(mocks.MockTextExtractor)
	ex.On("Extract", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: encrypted", domain.ErrExtractionFailed))
	p := f29.NewPipeline(f29.NewLoader(0), ex, zerolog.Nop())

	out := p.Run(context.Background(), pdfBytes, "application/pdf", int64(len(pdfBytes)))

	assert.False(t, out.Success)
	assert.Equal(t, domain.FailureExtractionFailed, out.Error)
	assert.Equal(t, domain.StateFailed, out.State)
}

func TestPipeline_UnexpectedExtractorErrorReportsExtractionFailed(t *testing.T) {
	ex := new(mocks.MockTextExtractor)
	ex.On("Extract", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)
	p := f29.NewPipeline(f29.NewLoader(0), ex, zerolog.Nop())

	out := p.Run(context.Background(), pdfBytes, "application/pdf", int64(len(pdfBytes)))

	assert.Equal(t, domain.FailureExtractionFailed, out.Error)
}

func TestPipeline_PartialDeclaration(t *testing.T) {
	p, _ := newPipeline(partialForm, domain.MethodOptical)

	out := p.Run(context.Background(), pdfBytes, "application/pdf", int64(len(pdfBytes)))

	require.True(t, out.Success)
	assert.Equal(t, 50, out.Confidence)
	assert.Equal(t, domain.MethodOptical, out.Method)
	assert.Equal(t, f29.CatalogueSize(), out.Snapshot.Codes.Len())

	zeros := 0
	for _, e := range out.Snapshot.Codes.Entries() {
		if e.Value == 0 {
			zeros++
		}
	}
	assert.Equal(t, 6, zeros)
	assert.Equal(t, int64(600000), out.Snapshot.Totals.DeterminedTax)
	assert.Equal(t, int64(645000), out.Snapshot.Totals.TotalPayable)
}

func TestPipeline_Deterministic(t *testing.T) {
	p, _ := newPipeline(fullForm, domain.MethodDirectText)

	first, err := json.Marshal(p.Run(context.Background(), pdfBytes, "application/pdf", 13))
	require.NoError(t, err)
	second, err := json.Marshal(p.Run(context.Background(), pdfBytes, "application/pdf", 13))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestPipeline_TotalsAreClosedOverCodes(t *testing.T) {
	for _, text := range []string{fullForm, partialForm} {
		p, _ := newPipeline(text, domain.MethodDirectText)
		out := p.Run(context.Background(), pdfBytes, "application/pdf", 13)
		require.True(t, out.Success)

		assert.Equal(t, f29.ComputeTotals(out.Snapshot.Codes), out.Snapshot.Totals)
	}
}

func TestPipeline_AddingACodeNeverLowersConfidence(t *testing.T) {
	lines := []string{
		"538 TOTAL DEBITOS 1.000.000",
		"511 CREDITO IVA 400.000",
		"504 REMANENTE 20.000",
		"062 PPM 15.000",
		"048 IMPUESTO UNICO 30.000",
		"091 TOTAL A PAGAR 645.000",
	}
	prev := 0
	text := ""
	for _, l := range lines {
		text += l + "\n"
		p, _ := newPipeline(text, domain.MethodDirectText)
		out := p.Run(context.Background(), pdfBytes, "application/pdf", 13)
		require.True(t, out.Success)
		assert.GreaterOrEqual(t, out.Confidence, prev)
		prev = out.Confidence
	}
	assert.Equal(t, 60, prev)
}

func TestPipeline_ConcurrentRuns(t *testing.T) {
	p, _ := newPipeline(fullForm, domain.MethodDirectText)

	done := make(chan int, 8)
	for i := 0; i < 8; i++ {
		go func() {
			out := p.Run(context.Background(), pdfBytes, "application/pdf", 13)
			done <- out.Confidence
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, 100, <-done)
	}
}
