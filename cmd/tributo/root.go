package main

import (
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tributo/internal/config"
	"tributo/internal/logger"
)

type rootOptions struct {
	verbose bool
	pretty  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "tributo",
		Short:        "Formulario 29 parser and payroll reconciler",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")
	cmd.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "indent JSON output")

	cmd.AddCommand(newParseCmd(opts))
	cmd.AddCommand(newCatalogueCmd(opts))
	cmd.AddCommand(newReconcileCmd(opts))
	return cmd
}

// logger returns a console logger on the command's stderr. Without --verbose
// only errors are shown so stdout stays machine readable.
func (o *rootOptions) logger(cmd *cobra.Command) zerolog.Logger {
	level := "error"
	if o.verbose {
		level = "debug"
	}
	return logger.New(config.LogConfig{Level: level, Format: "console", ServiceName: "tributo-cli"}, cmd.ErrOrStderr())
}

func (o *rootOptions) writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	if o.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
