// Package pdftext extracts the embedded text layer of a PDF using pdfcpu.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"tributo/internal/domain"
)

func init() {
	// Extraction must not touch the filesystem; pdfcpu otherwise creates a config dir.
	api.DisableConfigDir()
}

// headerWindow is how far into the file the %PDF- marker may appear.
const headerWindow = 1024

// Extractor reads the text layer of a PDF. It implements port.TextExtractor and
// port.DocumentInspector.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the text of every page joined in page order.
func (e *Extractor) Extract(_ context.Context, raw []byte) (*domain.ExtractedText, error) {
	ctx, err := read(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		text := pageText(ctx, pageNr)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}
	if sb.Len() == 0 {
		return nil, fmt.Errorf("%w: no text content found in %d page(s)", domain.ErrExtractionFailed, ctx.PageCount)
	}

	return &domain.ExtractedText{
		Text:   sb.String(),
		Pages:  ctx.PageCount,
		Method: domain.MethodDirectText,
	}, nil
}

// Inspect reports page count, text layer presence and image presence.
func (e *Extractor) Inspect(raw []byte) (*domain.DocumentProfile, error) {
	ctx, err := read(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	profile := &domain.DocumentProfile{
		Pages:     ctx.PageCount,
		HasImages: hasImageStreams(ctx),
	}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if pageText(ctx, pageNr) != "" {
			profile.HasTextLayer = true
			break
		}
	}
	return profile, nil
}

// read parses and validates raw. pdfcpu can panic on corrupt cross-reference
// data, so panics are turned into errors.
func read(raw []byte) (ctx *model.Context, err error) {
	window := raw
	if len(window) > headerWindow {
		window = window[:headerWindow]
	}
	if !bytes.Contains(window, []byte("%PDF-")) {
		return nil, fmt.Errorf("missing %%PDF- header")
	}

	defer func() {
		if r := recover(); r != nil {
			ctx, err = nil, fmt.Errorf("pdfcpu read: %v", r)
		}
	}()

	ctx, err = api.ReadValidateAndOptimize(bytes.NewReader(raw), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx, nil
}

func pageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return decodeContent(data)
}

func hasImageStreams(ctx *model.Context) bool {
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				return true
			}
		}
	}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}
