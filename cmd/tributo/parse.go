package main

import (
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"tributo/internal/config"
	"tributo/internal/extractor"
	"tributo/internal/f29"
)

type parseOptions struct {
	ocr      bool
	strategy string
	maxBytes int64
}

func newParseCmd(root *rootOptions) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <file.pdf>",
		Short: "Parse a declaration and print the outcome as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, root, opts, args[0])
		},
	}
	cmd.Flags().BoolVar(&opts.ocr, "ocr", false, "fall back to pdftoppm + tesseract for scanned declarations")
	cmd.Flags().StringVar(&opts.strategy, "strategy", extractor.StrategyAuto, "extraction strategy (auto, direct, optical)")
	cmd.Flags().Int64Var(&opts.maxBytes, "max-bytes", f29.DefaultMaxBytes, "upload size ceiling")
	return cmd
}

func runParse(cmd *cobra.Command, root *rootOptions, opts *parseOptions, path string) error {
	log := root.logger(cmd)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	extCfg := &config.ExtractorConfig{
		Strategy:   opts.strategy,
		OCREnabled: opts.ocr,
		Pdftoppm:   "pdftoppm",
		Tesseract:  "tesseract",
		Lang:       "spa",
	}
	ext, err := extractor.New(extCfg, log)
	if err != nil {
		return err
	}

	pipeline := f29.NewPipeline(f29.NewLoader(opts.maxBytes), ext, log)
	outcome := pipeline.Run(cmd.Context(), content, mimetype.Detect(content).String(), info.Size())

	if err := root.writeJSON(cmd.OutOrStdout(), outcome); err != nil {
		return err
	}
	if !outcome.Success {
		return fmt.Errorf("parse failed: %s", outcome.Error)
	}
	return nil
}
