package f29

import (
	"context"

	"github.com/rs/zerolog"

	"tributo/internal/domain"
	"tributo/internal/port"
)

// Pipeline runs one declaration through load, extract, recognize, calculate and score.
// It holds no per-run state and can serve concurrent requests.
type Pipeline struct {
	loader     *Loader
	extractor  port.TextExtractor
	recognizer *Recognizer
	log        zerolog.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(loader *Loader, extractor port.TextExtractor, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		loader:     loader,
		extractor:  extractor,
		recognizer: NewRecognizer(),
		log:        log,
	}
}

// MaxBytes exposes the loader ceiling so callers can bound their reads.
func (p *Pipeline) MaxBytes() int64 {
	return p.loader.MaxBytes()
}

// Run parses one upload. Failures are reported on the outcome, never returned.
func (p *Pipeline) Run(ctx context.Context, content []byte, mediaType string, size int64) *domain.ParseOutcome {
	doc, err := p.loader.Load(content, mediaType, size)
	if err != nil {
		p.log.Info().Err(err).Str("media_type", mediaType).Int64("size", size).
			Msg("f29.Pipeline: upload rejected")
		return Fail(err, "")
	}
	return p.Process(ctx, doc)
}

// Process runs the stages after loading.
func (p *Pipeline) Process(ctx context.Context, doc *domain.TaxDocument) *domain.ParseOutcome {
	p.log.Debug().Str("state", string(domain.StateLoaded)).Int64("size", doc.Size).Msg("f29.Pipeline: document loaded")

	text, err := p.extractor.Extract(ctx, doc.RawBytes)
	if err != nil {
		p.log.Info().Err(err).Msg("f29.Pipeline: extraction failed")
		return Fail(domain.ErrExtractionFailed, "")
	}
	p.log.Debug().Str("state", string(domain.StateExtracted)).Int("pages", text.Pages).
		Str("method", string(text.Method)).Msg("f29.Pipeline: text extracted")

	rec := p.recognizer.Recognize(text.Text)
	found := rec.Found()
	p.log.Debug().Str("state", string(domain.StateRecognized)).Int("codes_found", found).
		Msg("f29.Pipeline: codes recognized")

	if found == 0 {
		return Fail(domain.ErrNoCodesRecognized, text.Method)
	}

	out := Assemble(rec, ComputeTotals(rec.Codes), Score(found), text.Method)
	p.log.Info().Str("rut", out.Snapshot.TaxpayerID).Str("period", out.Snapshot.Period).
		Int("confidence", out.Confidence).Msg("f29.Pipeline: declaration parsed")
	return out
}

// Assemble packages upstream results into a successful outcome.
func Assemble(rec Recognition, totals domain.DerivedTotals, confidence int, method domain.ExtractionMethod) *domain.ParseOutcome {
	return &domain.ParseOutcome{
		Success: true,
		Snapshot: &domain.FiscalSnapshot{
			TaxpayerID:   rec.TaxpayerID,
			Period:       rec.Period,
			FilingNumber: rec.FilingNumber,
			LegalName:    rec.LegalName,
			Codes:        rec.Codes,
			Totals:       totals,
		},
		Confidence: confidence,
		Method:     method,
		State:      domain.StateScoredSuccess,
	}
}

// Fail builds an unsuccessful outcome carrying the failure code of err.
func Fail(err error, method domain.ExtractionMethod) *domain.ParseOutcome {
	return &domain.ParseOutcome{
		Success: false,
		Method:  method,
		Error:   domain.FailureCode(err),
		State:   domain.StateFailed,
	}
}
