package extractor

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"tributo/internal/config"
	"tributo/internal/extractor/ocr"
	"tributo/internal/extractor/pdftext"
	"tributo/internal/port"
)

// Strategy names accepted in extractor.strategy.
const (
	StrategyAuto    = "auto"
	StrategyDirect  = "direct"
	StrategyOptical = "optical"
)

// StrategyFactory creates a TextExtractor from extractor config.
type StrategyFactory func(cfg *config.ExtractorConfig, log zerolog.Logger) (port.TextExtractor, error)

// registry of extraction strategies, populated in init or via RegisterStrategy.
var strategies = map[string]StrategyFactory{}

func init() {
	RegisterStrategy(StrategyDirect, func(_ *config.ExtractorConfig, _ zerolog.Logger) (port.TextExtractor, error) {
		return pdftext.New(), nil
	})
	RegisterStrategy(StrategyOptical, func(cfg *config.ExtractorConfig, log zerolog.Logger) (port.TextExtractor, error) {
		return ocr.New(OCRConfig(cfg), nil, log), nil
	})
	RegisterStrategy(StrategyAuto, newAuto)
}

// RegisterStrategy registers an extraction strategy factory by name.
func RegisterStrategy(name string, factory StrategyFactory) {
	strategies[name] = factory
}

// Strategies returns the registered strategy names, sorted.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the TextExtractor named by cfg.Strategy.
func New(cfg *config.ExtractorConfig, log zerolog.Logger) (port.TextExtractor, error) {
	name := cfg.Strategy
	if name == "" {
		name = StrategyAuto
	}
	factory, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown extraction strategy: %s", name)
	}
	return factory(cfg, log)
}

// OCRConfig maps extractor config onto the optical strategy settings.
func OCRConfig(cfg *config.ExtractorConfig) ocr.Config {
	return ocr.Config{
		Pdftoppm:    cfg.Pdftoppm,
		Tesseract:   cfg.Tesseract,
		Lang:        cfg.Lang,
		TessdataDir: cfg.TessdataDir,
		DPI:         cfg.DPI,
		MaxPages:    cfg.MaxPages,
		Timeout:     cfg.Timeout(),
	}
}

func newAuto(cfg *config.ExtractorConfig, log zerolog.Logger) (port.TextExtractor, error) {
	direct := pdftext.New()
	var optical port.TextExtractor
	if cfg.OCREnabled {
		optical = ocr.New(OCRConfig(cfg), nil, log)
	}
	return NewSelector(direct, direct, optical, log), nil
}
