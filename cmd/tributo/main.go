// Command tributo parses Formulario 29 declarations and reconciles payslips
// from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
