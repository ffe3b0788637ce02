// Package extractor chooses how text is pulled out of a declaration PDF.
package extractor

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"tributo/internal/domain"
	"tributo/internal/port"
)

// Selector inspects each document and dispatches to the direct or optical
// strategy. It implements port.TextExtractor.
type Selector struct {
	inspector port.DocumentInspector
	direct    port.TextExtractor
	optical   port.TextExtractor
	log       zerolog.Logger
}

// NewSelector creates a Selector. optical may be nil when OCR is disabled.
func NewSelector(inspector port.DocumentInspector, direct, optical port.TextExtractor, log zerolog.Logger) *Selector {
	return &Selector{
		inspector: inspector,
		direct:    direct,
		optical:   optical,
		log:       log,
	}
}

// Extract runs the strategy chosen by Choose. When the direct strategy fails on
// a document that also carries images, the optical strategy gets one attempt.
func (s *Selector) Extract(ctx context.Context, raw []byte) (*domain.ExtractedText, error) {
	profile, err := s.inspector.Inspect(raw)
	if err != nil {
		return nil, fmt.Errorf("extractor.Selector: inspect: %w", err)
	}

	method := s.Choose(profile)
	s.log.Debug().Int("pages", profile.Pages).Bool("text_layer", profile.HasTextLayer).
		Bool("images", profile.HasImages).Str("method", string(method)).
		Msg("extractor.Selector: strategy chosen")

	if method == domain.MethodOptical {
		return s.optical.Extract(ctx, raw)
	}

	out, err := s.direct.Extract(ctx, raw)
	if err == nil {
		return out, nil
	}
	if s.optical == nil || !profile.HasImages || !errors.Is(err, domain.ErrExtractionFailed) {
		return nil, err
	}

	s.log.Info().Err(err).Msg("extractor.Selector: direct extraction failed, trying optical")
	return s.optical.Extract(ctx, raw)
}

// Choose picks the strategy for a profile: direct when a text layer exists,
// optical for image-only documents when OCR is available, direct otherwise.
func (s *Selector) Choose(profile *domain.DocumentProfile) domain.ExtractionMethod {
	switch {
	case profile.HasTextLayer:
		return domain.MethodDirectText
	case profile.HasImages && s.optical != nil:
		return domain.MethodOptical
	default:
		return domain.MethodDirectText
	}
}
