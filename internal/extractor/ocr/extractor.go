// Package ocr recognizes text in scanned declarations by rasterizing pages with
// pdftoppm and reading them with tesseract.
package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tributo/internal/domain"
)

// Config tunes the external tools.
type Config struct {
	Pdftoppm    string
	Tesseract   string
	Lang        string
	TessdataDir string
	DPI         int
	MaxPages    int
	Timeout     time.Duration
}

func (c *Config) withDefaults() {
	if c.Pdftoppm == "" {
		c.Pdftoppm = "pdftoppm"
	}
	if c.Tesseract == "" {
		c.Tesseract = "tesseract"
	}
	if c.Lang == "" {
		c.Lang = "spa"
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
}

// pageNumRe pulls the page number out of pdftoppm's "<prefix>-<n>.png" names.
var pageNumRe = regexp.MustCompile(`-(\d+)\.png$`)

// Extractor implements port.TextExtractor over rendered page images.
type Extractor struct {
	cfg    Config
	runner Runner
	log    zerolog.Logger
}

// New creates an Extractor. A nil runner runs the real binaries.
func New(cfg Config, runner Runner, log zerolog.Logger) *Extractor {
	cfg.withDefaults()
	if runner == nil {
		runner = NewExecRunner(log)
	}
	return &Extractor{cfg: cfg, runner: runner, log: log}
}

// Extract renders raw to PNG pages and recognizes each page in order.
func (e *Extractor) Extract(ctx context.Context, raw []byte) (*domain.ExtractedText, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	tmpDir, err := os.MkdirTemp("", "tributo-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("%w: temp dir: %v", domain.ErrExtractionFailed, err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.log.Warn().Err(rmErr).Str("dir", tmpDir).Msg("ocr.Extractor: failed to remove temp dir")
		}
	}()

	in := filepath.Join(tmpDir, "declaration.pdf")
	if err := os.WriteFile(in, raw, 0o600); err != nil {
		return nil, fmt.Errorf("%w: write input: %v", domain.ErrExtractionFailed, err)
	}

	images, err := e.render(ctx, in, filepath.Join(tmpDir, "page"))
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	recognized := 0
	for _, img := range images {
		txt, err := e.recognize(ctx, img)
		if err != nil {
			e.log.Warn().Err(err).Str("image", filepath.Base(img)).Msg("ocr.Extractor: page skipped")
			continue
		}
		txt = strings.TrimSpace(txt)
		if txt == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(txt)
		recognized++
	}
	if recognized == 0 {
		return nil, fmt.Errorf("%w: no text recognized in %d page(s)", domain.ErrExtractionFailed, len(images))
	}

	e.log.Debug().Int("pages", len(images)).Int("recognized", recognized).Msg("ocr.Extractor: text recognized")
	return &domain.ExtractedText{
		Text:   b.String(),
		Pages:  len(images),
		Method: domain.MethodOptical,
	}, nil
}

// render runs pdftoppm -r DPI -png and returns the page images in page order.
func (e *Extractor) render(ctx context.Context, in, prefix string) ([]string, error) {
	args := []string{"-r", strconv.Itoa(e.cfg.DPI), "-png"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(e.cfg.MaxPages))
	}
	args = append(args, in, prefix)

	if _, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, args...); err != nil {
		return nil, fmt.Errorf("%w: pdftoppm: %v: %s", domain.ErrOCRUnavailable, err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: pdftoppm produced no images", domain.ErrExtractionFailed)
	}
	sort.Slice(matches, func(i, j int) bool {
		return pageNumber(matches[i]) < pageNumber(matches[j])
	})
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	return matches, nil
}

// recognize runs tesseract <img> stdout -l <lang>.
func (e *Extractor) recognize(ctx context.Context, img string) (string, error) {
	args := []string{img, "stdout", "-l", e.cfg.Lang}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 512))
	}
	return string(out), nil
}

func pageNumber(path string) int {
	m := pageNumRe.FindStringSubmatch(path)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
